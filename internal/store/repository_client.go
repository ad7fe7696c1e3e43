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

type clientRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewClientRepository(db *DB, logger *logger.Logger) ClientRepository {
	logger.Debug().Msg("creating client repository")
	return &clientRepository{
		db:     db,
		logger: logger,
	}
}

// ListClients returns all clients ordered by name.
func (r *clientRepository) ListClients(ctx context.Context) ([]models.Client, error) {
	query, args, err := buildListClientsQuery(r.db.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	clients, err := queryClients(ctx, r.db.DB, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*clientRepository.ListClients").Msg("error listing clients")
		return nil, err
	}

	return clients, nil
}

func (r *clientRepository) GetClient(ctx context.Context, id int64) (models.Client, error) {
	query, args, err := buildGetClientQuery(r.db.builder(), id)
	if err != nil {
		return models.Client{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	client, err := scanClient(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*clientRepository.GetClient").Int64("id", id).Msg("error getting client")
		return models.Client{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return client, nil
}

func (r *clientRepository) CreateClient(ctx context.Context, client models.Client) (models.Client, error) {
	log := logger.FromContext(ctx)

	ts := clock()
	client.CreatedAt, client.UpdatedAt = ts, ts

	query, args, err := buildCreateClientQuery(r.db.builder(), client)
	if err != nil {
		return models.Client{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if client.ID, err = insertReturningID(ctx, r.db, r.db.DB, query, args...); err != nil {
		log.Err(err).Str("func", "*clientRepository.CreateClient").Msg("error creating client")
		return models.Client{}, err
	}

	return client, nil
}

// UpdateClient changes only the fields set in update.
func (r *clientRepository) UpdateClient(ctx context.Context, id int64, update models.ClientUpdate) (models.Client, error) {
	query, args, err := buildUpdateClientQuery(r.db.builder(), id, update, clock())
	if err != nil {
		return models.Client{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffecting(ctx, query, args...); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*clientRepository.UpdateClient").Int64("id", id).Msg("error updating client")
		}
		return models.Client{}, err
	}

	return r.GetClient(ctx, id)
}

func (r *clientRepository) DeleteClient(ctx context.Context, id int64) error {
	query, args, err := buildDeleteQuery(r.db.builder(), tableClients, squirrel.Eq{"id": id})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execAffecting(ctx, query, args...); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*clientRepository.DeleteClient").Int64("id", id).Msg("error deleting client")
		}
		return err
	}

	return nil
}

func queryClients(ctx context.Context, q DBTX, query string, args ...any) ([]models.Client, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		c, scanErr := scanClient(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		clients = append(clients, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return clients, nil
}

func scanClient(row rowScanner) (models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
