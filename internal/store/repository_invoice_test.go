package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoice(number, date string, services ...models.InvoiceService) models.Invoice {
	return models.Invoice{
		InvoiceNumber: number,
		ClientName:    "Acme",
		InvoiceDate:   date,
		DueDate:       date,
		Subtotal:      300,
		GrandTotal:    300,
		Services:      services,
	}
}

func TestInvoiceRepository_CreateAndGet(t *testing.T) {
	db := newSQLiteTestDB(t)
	repo := NewInvoiceRepository(db, logger.Nop())
	ctx := context.Background()

	created, err := repo.CreateInvoice(ctx, newInvoice("INV-0001", "2025-01-01",
		models.InvoiceService{Name: "Design", Quantity: 1, Rate: 100, Amount: 100},
		models.InvoiceService{Name: "Build", Quantity: 2, Rate: 100, Amount: 200},
	))
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, models.InvoicePending, created.PaymentStatus, "status defaults to pending")
	require.Len(t, created.Services, 2)
	assert.Equal(t, "Design", created.Services[0].Name)
	assert.Equal(t, created.ID, created.Services[1].InvoiceID)

	_, err = repo.GetInvoice(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := repo.InvoiceNumberExists(ctx, "INV-0001")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInvoiceRepository_DuplicateNumberLeavesNothingBehind(t *testing.T) {
	db := newSQLiteTestDB(t)
	repo := NewInvoiceRepository(db, logger.Nop())
	ctx := context.Background()

	_, err := repo.CreateInvoice(ctx, newInvoice("INV-0001", "2025-01-01", models.InvoiceService{Name: "A", Quantity: 1}))
	require.NoError(t, err)

	_, err = repo.CreateInvoice(ctx, newInvoice("INV-0001", "2025-01-02", models.InvoiceService{Name: "B", Quantity: 1}))
	assert.ErrorIs(t, err, ErrDuplicate)

	assert.Equal(t, 1, countRows(t, db.DB, tableInvoices))
	assert.Equal(t, 1, countRows(t, db.DB, tableInvoiceServices))
}

func TestInvoiceRepository_ListOrderAndServices(t *testing.T) {
	db := newSQLiteTestDB(t)
	repo := NewInvoiceRepository(db, logger.Nop())
	ctx := context.Background()

	_, err := repo.CreateInvoice(ctx, newInvoice("INV-0001", "2025-01-01", models.InvoiceService{Name: "Old", Quantity: 1}))
	require.NoError(t, err)
	_, err = repo.CreateInvoice(ctx, newInvoice("INV-0002", "2025-03-01"))
	require.NoError(t, err)

	list, err := repo.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "INV-0002", list[0].InvoiceNumber)
	assert.Empty(t, list[0].Services)
	assert.NotNil(t, list[0].Services, "services serialise as an empty array")
	require.Len(t, list[1].Services, 1)
	assert.Equal(t, "Old", list[1].Services[0].Name)

	last, err := repo.LastInvoiceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", last)
}

func TestInvoiceRepository_LastInvoiceNumber_Empty(t *testing.T) {
	db := newSQLiteTestDB(t)
	repo := NewInvoiceRepository(db, logger.Nop())

	last, err := repo.LastInvoiceNumber(context.Background())
	require.NoError(t, err)
	assert.Empty(t, last)
}

func TestInvoiceRepository_Update(t *testing.T) {
	db := newSQLiteTestDB(t)
	repo := NewInvoiceRepository(db, logger.Nop())
	ctx := context.Background()

	inv, err := repo.CreateInvoice(ctx, newInvoice("INV-0001", "2025-01-01",
		models.InvoiceService{Name: "A", Quantity: 1, Rate: 10, Amount: 10},
		models.InvoiceService{Name: "B", Quantity: 1, Rate: 20, Amount: 20},
	))
	require.NoError(t, err)

	paid := models.InvoicePaid
	updated, err := repo.UpdateInvoice(ctx, inv.ID, models.InvoiceUpdate{PaymentStatus: &paid})
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, updated.PaymentStatus)
	assert.Len(t, updated.Services, 2, "services are untouched when not supplied")

	replacement := []models.InvoiceService{{Name: "C", Quantity: 3, Rate: 5, Amount: 15}}
	updated, err = repo.UpdateInvoice(ctx, inv.ID, models.InvoiceUpdate{GrandTotal: ptr(15.0), Services: &replacement})
	require.NoError(t, err)
	require.Len(t, updated.Services, 1)
	assert.Equal(t, "C", updated.Services[0].Name)
	assert.Equal(t, 15.0, updated.GrandTotal)
	assert.Equal(t, "Acme", updated.ClientName)

	empty := []models.InvoiceService{}
	updated, err = repo.UpdateInvoice(ctx, inv.ID, models.InvoiceUpdate{Services: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Services)

	_, err = repo.UpdateInvoice(ctx, 999, models.InvoiceUpdate{Services: &replacement})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, countRows(t, db.DB, tableInvoiceServices), "a failed update writes no services")
}

func TestInvoiceRepository_DeleteCascadesServices(t *testing.T) {
	db := newSQLiteTestDB(t)
	repo := NewInvoiceRepository(db, logger.Nop())
	ctx := context.Background()

	inv, err := repo.CreateInvoice(ctx, newInvoice("INV-0001", "2025-01-01",
		models.InvoiceService{Name: "A", Quantity: 1},
		models.InvoiceService{Name: "B", Quantity: 1},
	))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteInvoice(ctx, inv.ID))
	assert.Equal(t, 0, countRows(t, db.DB, tableInvoiceServices))
	assert.ErrorIs(t, repo.DeleteInvoice(ctx, inv.ID), ErrNotFound)
}

func TestInvoiceRepository_Create_RollsBackOnServiceFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO invoices").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec("INSERT INTO invoice_services").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.CreateInvoice(context.Background(), newInvoice("INV-0001", "2025-01-01", models.InvoiceService{Name: "A", Quantity: 1}))
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}
