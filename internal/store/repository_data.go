// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/models"
)

// dataRepository implements the whole-dataset operations behind export,
// import and clear. Ledger tables are deleted child-first so the
// invoice_services foreign key is never violated mid-transaction.
type dataRepository struct {
	db     *DB
	logger *logger.Logger
}

// ledgerTables lists the tables wiped by import and clear, children first.
// Settings and user tables are deliberately absent.
var ledgerTables = []string{tableInvoiceServices, tableInvoices, tableEntries, tableClients}

func NewDataRepository(db *DB, logger *logger.Logger) DataRepository {
	logger.Debug().Msg("creating data repository")
	return &dataRepository{
		db:     db,
		logger: logger,
	}
}

// ExportAll reads every ledger table plus settings into one document.
// Entries are ordered by date, invoices by invoice date (both newest first)
// and clients by name.
func (r *dataRepository) ExportAll(ctx context.Context) (models.DataDocument, error) {
	log := logger.FromContext(ctx)
	sb := r.db.builder()

	doc := models.DataDocument{
		Version:    models.DataDocumentVersion,
		ExportDate: clock(),
		Settings:   make(map[string]models.SettingValue),
	}

	query, args, err := buildListEntriesQuery(sb, models.EntryFilter{})
	if err != nil {
		return models.DataDocument{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if doc.Entries, err = queryEntries(ctx, r.db.DB, query, args...); err != nil {
		log.Err(err).Str("func", "*dataRepository.ExportAll").Msg("error exporting entries")
		return models.DataDocument{}, err
	}

	if query, args, err = buildListInvoicesQuery(sb); err != nil {
		return models.DataDocument{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if doc.Invoices, err = queryInvoices(ctx, r.db, r.db.DB, query, args...); err != nil {
		log.Err(err).Str("func", "*dataRepository.ExportAll").Msg("error exporting invoices")
		return models.DataDocument{}, err
	}

	if query, args, err = buildListClientsQuery(sb); err != nil {
		return models.DataDocument{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if doc.Clients, err = queryClients(ctx, r.db.DB, query, args...); err != nil {
		log.Err(err).Str("func", "*dataRepository.ExportAll").Msg("error exporting clients")
		return models.DataDocument{}, err
	}

	if query, args, err = buildListSettingsQuery(sb); err != nil {
		return models.DataDocument{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	settings, err := querySettings(ctx, r.db.DB, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*dataRepository.ExportAll").Msg("error exporting settings")
		return models.DataDocument{}, err
	}
	for _, s := range settings {
		doc.Settings[s.Key] = s.Value
	}

	return doc, nil
}

// ReplaceAll wipes the ledger tables and loads doc in a single transaction.
// Settings from doc are upserted; settings absent from doc are kept.
// Zero timestamps in doc are replaced by the current time.
func (r *dataRepository) ReplaceAll(ctx context.Context, doc models.DataDocument) error {
	log := logger.FromContext(ctx)

	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		if err := r.wipeLedger(ctx, tx); err != nil {
			return err
		}

		ts := clock()
		sb := r.db.builder()

		for _, c := range doc.Clients {
			c.CreatedAt, c.UpdatedAt = orNow(c.CreatedAt, ts), orNow(c.UpdatedAt, ts)
			query, args, err := buildCreateClientQuery(sb, c)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = insertReturningID(ctx, r.db, tx, query, args...); err != nil {
				return fmt.Errorf("importing client %q: %w", c.Name, err)
			}
		}

		for _, e := range doc.Entries {
			e.CreatedAt, e.UpdatedAt = orNow(e.CreatedAt, ts), orNow(e.UpdatedAt, ts)
			query, args, err := buildCreateEntryQuery(sb, e)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = insertReturningID(ctx, r.db, tx, query, args...); err != nil {
				return fmt.Errorf("importing entry of %s: %w", e.Date, err)
			}
		}

		for _, inv := range doc.Invoices {
			inv.CreatedAt, inv.UpdatedAt = orNow(inv.CreatedAt, ts), orNow(inv.UpdatedAt, ts)
			if _, err := insertInvoice(ctx, r.db, tx, inv); err != nil {
				return fmt.Errorf("importing invoice %q: %w", inv.InvoiceNumber, err)
			}
		}

		for key, value := range doc.Settings {
			if err := upsertSetting(ctx, r.db, tx, key, value.Raw, ts); err != nil {
				return fmt.Errorf("importing setting %q: %w", key, err)
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*dataRepository.ReplaceAll").Msg("import rolled back")
		return err
	}

	log.Info().
		Int("clients", len(doc.Clients)).
		Int("entries", len(doc.Entries)).
		Int("invoices", len(doc.Invoices)).
		Int("settings", len(doc.Settings)).
		Msg("data imported")

	return nil
}

// ClearAll deletes every ledger row in one transaction. Settings and users
// are kept.
func (r *dataRepository) ClearAll(ctx context.Context) error {
	err := r.db.WithTx(ctx, r.wipeLedger)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*dataRepository.ClearAll").Msg("clear rolled back")
	}
	return err
}

func (r *dataRepository) wipeLedger(ctx context.Context, tx DBTX) error {
	for _, table := range ledgerTables {
		query, args, err := buildDeleteQuery(r.db.builder(), table, nil)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: clearing %s: %w", ErrExecutingQuery, table, err)
		}
	}
	return nil
}

// Stats counts the rows of every table.
func (r *dataRepository) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats

	targets := []struct {
		table string
		dst   *int64
	}{
		{tableUsers, &stats.Users},
		{tableClients, &stats.Clients},
		{tableEntries, &stats.Entries},
		{tableInvoices, &stats.Invoices},
		{tableSettings, &stats.Settings},
	}

	for _, t := range targets {
		query, args, err := buildCountQuery(r.db.builder(), t.table)
		if err != nil {
			return models.Stats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if *t.dst, err = count(ctx, r.db.DB, query, args...); err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*dataRepository.Stats").Str("table", t.table).Msg("error counting rows")
			return models.Stats{}, err
		}
	}

	return stats, nil
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t.UTC()
}
