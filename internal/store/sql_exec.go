package store

import (
	"context"
	"fmt"
)

// execAffecting runs a DML statement and reports [ErrNotFound] when it
// touched no rows.
func execAffecting(ctx context.Context, db *DB, q DBTX, query string, args ...any) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, db.classify(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (db *DB) execAffecting(ctx context.Context, query string, args ...any) error {
	return execAffecting(ctx, db, db.DB, query, args...)
}

// count runs a COUNT(*) query.
func count(ctx context.Context, q DBTX, query string, args ...any) (int64, error) {
	var n int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

func (db *DB) exists(ctx context.Context, query string, args ...any) (bool, error) {
	n, err := count(ctx, db.DB, query, args...)
	return n > 0, err
}

// insertReturningID runs an INSERT ... RETURNING id statement.
func insertReturningID(ctx context.Context, db *DB, q DBTX, query string, args ...any) (int64, error) {
	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, db.classify(err))
	}
	return id, nil
}
