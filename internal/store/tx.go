package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/finance-flow/internal/logger"
)

// DBTX is the subset of database/sql used by repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	txMaxAttempts = 3
	txRetryDelay  = 50 * time.Millisecond
)

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// When fn fails with an error the dialect classifies as [Retryable], the
// whole transaction is replayed up to three times.
//
// Typical use:
//
//	err := db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
//	    _, err := tx.ExecContext(ctx, "DELETE FROM clients")
//	    return err
//	})
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		err = db.runTx(ctx, fn)
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		log.Warn().Err(err).Str("func", "*DB.WithTx").Int("attempt", attempt).Msg("retrying transaction")

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(txRetryDelay * time.Duration(attempt)):
		}
	}

	return err
}

func (db *DB) runTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
		}
	}()

	err = fn(ctx, tx)
	return err
}
