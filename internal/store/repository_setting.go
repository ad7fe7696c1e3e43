package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/Masterminds/squirrel"
)

// settingRepository stores opaque key/value settings. Values are kept as
// text; decoding happens on the way out through [models.DecodeSettingValue].
type settingRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewSettingRepository(db *DB, logger *logger.Logger) SettingRepository {
	logger.Debug().Msg("creating setting repository")
	return &settingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *settingRepository) GetAllSettings(ctx context.Context) ([]models.Setting, error) {
	query, args, err := buildListSettingsQuery(r.db.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	settings, err := querySettings(ctx, r.db.DB, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*settingRepository.GetAllSettings").Msg("error listing settings")
		return nil, err
	}

	return settings, nil
}

func (r *settingRepository) GetSetting(ctx context.Context, key string) (models.Setting, error) {
	query, args, err := buildGetSettingQuery(r.db.builder(), key)
	if err != nil {
		return models.Setting{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	setting, err := scanSetting(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Setting{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*settingRepository.GetSetting").Str("key", key).Msg("error getting setting")
		return models.Setting{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return setting, nil
}

// UpsertSetting inserts the key or overwrites its value.
func (r *settingRepository) UpsertSetting(ctx context.Context, key string, value string) (models.Setting, error) {
	ts := clock()

	if err := upsertSetting(ctx, r.db, r.db.DB, key, value, ts); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*settingRepository.UpsertSetting").Str("key", key).Msg("error saving setting")
		return models.Setting{}, err
	}

	return models.Setting{Key: key, Value: models.DecodeSettingValue(value), UpdatedAt: ts}, nil
}

func (r *settingRepository) DeleteSetting(ctx context.Context, key string) error {
	query, args, err := buildDeleteQuery(r.db.builder(), tableSettings, squirrel.Eq{"key": key})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffecting(ctx, query, args...); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*settingRepository.DeleteSetting").Str("key", key).Msg("error deleting setting")
		}
		return err
	}

	return nil
}

func upsertSetting(ctx context.Context, db *DB, q DBTX, key, value string, ts time.Time) error {
	query, args, err := buildUpsertSettingQuery(db.builder(), key, value, ts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, db.classify(err))
	}

	return nil
}

func querySettings(ctx context.Context, q DBTX, query string, args ...any) ([]models.Setting, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	settings := make([]models.Setting, 0)
	for rows.Next() {
		s, scanErr := scanSetting(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		settings = append(settings, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return settings, nil
}

func scanSetting(row rowScanner) (models.Setting, error) {
	var (
		s   models.Setting
		raw string
	)
	if err := row.Scan(&s.Key, &raw, &s.UpdatedAt); err != nil {
		return models.Setting{}, err
	}
	s.Value = models.DecodeSettingValue(raw)
	return s, nil
}
