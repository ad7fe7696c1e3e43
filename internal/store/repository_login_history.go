package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/models"
)

// loginHistoryRepository keeps the append-only device-trust ledger. A row
// for (user, user agent) marks that device as known for later logins.
type loginHistoryRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewLoginHistoryRepository(db *DB, logger *logger.Logger) LoginHistoryRepository {
	logger.Debug().Msg("creating login history repository")
	return &loginHistoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *loginHistoryRepository) RecordLogin(ctx context.Context, entry models.LoginHistory) error {
	log := logger.FromContext(ctx)

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = clock()
	}

	query, args, err := buildRecordLoginQuery(r.db.builder(), entry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*loginHistoryRepository.RecordLogin").Int64("user_id", entry.UserID).Msg("error recording login")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	return nil
}

// IsKnownDevice matches the user agent string exactly.
func (r *loginHistoryRepository) IsKnownDevice(ctx context.Context, userID int64, userAgent string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildKnownDeviceQuery(r.db.builder(), userID, userAgent)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	known, err := r.db.exists(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*loginHistoryRepository.IsKnownDevice").Int64("user_id", userID).Msg("error checking device")
		return false, err
	}

	return known, nil
}
