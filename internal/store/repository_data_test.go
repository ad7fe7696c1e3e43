// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importDocument() models.DataDocument {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	return models.DataDocument{
		Version: models.DataDocumentVersion,
		Clients: []models.Client{{Name: "Acme", Phone: "1", CreatedAt: created}},
		Entries: []models.FinanceEntry{{
			Date: "2025-01-01", ClientName: "Acme", Amount: 100,
			Type: models.EntryIncome, Status: models.EntryReceived, PaymentMode: models.PaymentUPI,
		}},
		Invoices: []models.Invoice{newInvoice("INV-0001", "2025-01-01",
			models.InvoiceService{Name: "A", Quantity: 1, Rate: 100, Amount: 100},
			models.InvoiceService{Name: "B", Quantity: 2, Rate: 100, Amount: 200},
		)},
		Settings: map[string]models.SettingValue{
			"agency": models.DecodeSettingValue(`{"name":"Acme"}`),
		},
	}
}

func TestDataRepository_ReplaceAllThenExport(t *testing.T) {
	db := newSQLiteTestDB(t)
	repos := NewRepositories(db, logger.Nop())
	ctx := context.Background()

	_, err := repos.SettingRepository.UpsertSetting(ctx, "theme", "dark")
	require.NoError(t, err)
	_, err = repos.ClientRepository.CreateClient(ctx, models.Client{Name: "Stale", Phone: "0"})
	require.NoError(t, err)

	require.NoError(t, repos.DataRepository.ReplaceAll(ctx, importDocument()))

	doc, err := repos.DataRepository.ExportAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.DataDocumentVersion, doc.Version)
	require.Len(t, doc.Clients, 1)
	assert.Equal(t, "Acme", doc.Clients[0].Name, "previous ledger rows are replaced")
	assert.True(t, doc.Clients[0].CreatedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)), "document timestamps are kept")
	assert.Len(t, doc.Entries, 1)
	require.Len(t, doc.Invoices, 1)
	assert.Len(t, doc.Invoices[0].Services, 2)

	require.Contains(t, doc.Settings, "theme", "settings absent from the document survive")
	assert.Equal(t, "dark", doc.Settings["theme"].Raw)
	require.Contains(t, doc.Settings, "agency")
	assert.True(t, doc.Settings["agency"].IsJSON)
}

func TestDataRepository_ReplaceAll_RollsBackOnFailure(t *testing.T) {
	db := newSQLiteTestDB(t)
	repos := NewRepositories(db, logger.Nop())
	ctx := context.Background()

	_, err := repos.ClientRepository.CreateClient(ctx, models.Client{Name: "Keep", Phone: "0"})
	require.NoError(t, err)

	doc := importDocument()
	doc.Invoices = append(doc.Invoices, newInvoice("INV-0001", "2025-02-01"))

	err = repos.DataRepository.ReplaceAll(ctx, doc)
	require.ErrorIs(t, err, ErrDuplicate)

	clients, err := repos.ClientRepository.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Keep", clients[0].Name)
	assert.Equal(t, 0, countRows(t, db.DB, tableInvoices))
	assert.Equal(t, 0, countRows(t, db.DB, tableSettings))
}

func TestDataRepository_ClearAllKeepsSettingsAndUsers(t *testing.T) {
	db := newSQLiteTestDB(t)
	repos := NewRepositories(db, logger.Nop())
	ctx := context.Background()

	require.NoError(t, repos.DataRepository.ReplaceAll(ctx, importDocument()))
	_, err := repos.UserRepository.CreateUser(ctx, newUser("a@example.com"))
	require.NoError(t, err)

	require.NoError(t, repos.DataRepository.ClearAll(ctx))

	for _, table := range ledgerTables {
		assert.Equal(t, 0, countRows(t, db.DB, table), table)
	}

	setting, err := repos.SettingRepository.GetSetting(ctx, "agency")
	require.NoError(t, err)
	assert.True(t, setting.Value.IsJSON)

	stats, err := repos.DataRepository.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Users: 1, Settings: 1}, stats)
}

func TestDataRepository_ClearAll_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDataRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM invoice_services").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM invoices").WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := repo.ClearAll(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDataRepository_ClearAll_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDataRepository(db, logger.Nop())

	mock.ExpectBegin()
	for _, table := range ledgerTables {
		mock.ExpectExec("DELETE FROM " + table + "$").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.ClearAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
