package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/Masterminds/squirrel"
)

// entryRepository stores income and expense entries in "finance_entries".
type entryRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewEntryRepository(db *DB, logger *logger.Logger) EntryRepository {
	logger.Debug().Msg("creating entry repository")
	return &entryRepository{
		db:     db,
		logger: logger,
	}
}

// ListEntries returns the entries matching filter, newest date first.
func (r *entryRepository) ListEntries(ctx context.Context, filter models.EntryFilter) ([]models.FinanceEntry, error) {
	query, args, err := buildListEntriesQuery(r.db.builder(), filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entries, err := queryEntries(ctx, r.db.DB, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*entryRepository.ListEntries").Msg("error listing entries")
		return nil, err
	}

	return entries, nil
}

func (r *entryRepository) GetEntry(ctx context.Context, id int64) (models.FinanceEntry, error) {
	query, args, err := buildGetEntryQuery(r.db.builder(), id)
	if err != nil {
		return models.FinanceEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.FinanceEntry{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*entryRepository.GetEntry").Int64("id", id).Msg("error getting entry")
		return models.FinanceEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}

func (r *entryRepository) CreateEntry(ctx context.Context, entry models.FinanceEntry) (models.FinanceEntry, error) {
	ts := clock()
	entry.CreatedAt, entry.UpdatedAt = ts, ts

	query, args, err := buildCreateEntryQuery(r.db.builder(), entry)
	if err != nil {
		return models.FinanceEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if entry.ID, err = insertReturningID(ctx, r.db, r.db.DB, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*entryRepository.CreateEntry").Msg("error creating entry")
		return models.FinanceEntry{}, err
	}

	return entry, nil
}

func (r *entryRepository) UpdateEntry(ctx context.Context, id int64, update models.EntryUpdate) (models.FinanceEntry, error) {
	query, args, err := buildUpdateEntryQuery(r.db.builder(), id, update, clock())
	if err != nil {
		return models.FinanceEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffecting(ctx, query, args...); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*entryRepository.UpdateEntry").Int64("id", id).Msg("error updating entry")
		}
		return models.FinanceEntry{}, err
	}

	return r.GetEntry(ctx, id)
}

func (r *entryRepository) DeleteEntry(ctx context.Context, id int64) error {
	query, args, err := buildDeleteQuery(r.db.builder(), tableEntries, squirrel.Eq{"id": id})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffecting(ctx, query, args...); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*entryRepository.DeleteEntry").Int64("id", id).Msg("error deleting entry")
		}
		return err
	}

	return nil
}

func queryEntries(ctx context.Context, q DBTX, query string, args ...any) ([]models.FinanceEntry, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.FinanceEntry, 0)
	for rows.Next() {
		e, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func scanEntry(row rowScanner) (models.FinanceEntry, error) {
	var e models.FinanceEntry
	err := row.Scan(
		&e.ID,
		&e.Date,
		&e.ClientName,
		&e.Description,
		&e.Amount,
		&e.Type,
		&e.Status,
		&e.PaymentMode,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}
