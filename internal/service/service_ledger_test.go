package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/validators"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerServices(t *testing.T) *Services {
	t.Helper()
	repos := newTestRepositories(t)
	v := validators.NewRequestValidator()
	log := logger.Nop()

	return &Services{
		ClientService:    NewClientService(repos.ClientRepository, v, log),
		EntryService:     NewEntryService(repos.EntryRepository, v, log),
		InvoiceService:   NewInvoiceService(repos.InvoiceRepository, v, log),
		SettingService:   NewSettingService(repos.SettingRepository, v, log),
		DataService:      NewDataService(repos.DataRepository, v, log),
		AnalyticsService: NewAnalyticsService(repos.EntryRepository, v, log),
	}
}

func entryInput(date string, amount float64, typ models.EntryType, status models.EntryStatus, mode models.PaymentMode) models.EntryUpdate {
	return models.EntryUpdate{
		Date:        &date,
		ClientName:  ptr("Mehta Traders"),
		Amount:      &amount,
		Type:        &typ,
		Status:      &status,
		PaymentMode: &mode,
	}
}

func TestClientService_PartialUpdateKeepsOtherFields(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	created, err := svcs.ClientService.CreateClient(ctx, models.ClientUpdate{
		Name:    ptr("  Mehta Traders "),
		Phone:   ptr("9876543210"),
		Address: ptr("MG Road"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mehta Traders", created.Name)

	updated, err := svcs.ClientService.UpdateClient(ctx, created.ID, models.ClientUpdate{Phone: ptr("9000000000")})
	require.NoError(t, err)
	assert.Equal(t, "Mehta Traders", updated.Name)
	assert.Equal(t, "9000000000", updated.Phone)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "MG Road", *updated.Address)
}

func TestClientService_Errors(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	_, err := svcs.ClientService.CreateClient(ctx, models.ClientUpdate{Name: ptr("Only name")})
	assert.ErrorIs(t, err, validators.ErrMissingClientFields)

	_, err = svcs.ClientService.GetClient(ctx, 404)
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = svcs.ClientService.UpdateClient(ctx, 404, models.ClientUpdate{Phone: ptr("1")})
	assert.ErrorIs(t, err, ErrClientNotFound)

	assert.ErrorIs(t, svcs.ClientService.DeleteClient(ctx, 404), ErrClientNotFound)
}

func TestEntryService_CreateRequiresAmount(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	in := entryInput("2024-03-05", 0, models.EntryIncome, models.EntryPending, models.PaymentUPI)
	in.Amount = nil
	_, err := svcs.EntryService.CreateEntry(ctx, in)
	assert.ErrorIs(t, err, validators.ErrMissingRequiredFields)

	// a zero amount is still an amount
	created, err := svcs.EntryService.CreateEntry(ctx, entryInput("2024-03-05", 0, models.EntryIncome, models.EntryPending, models.PaymentUPI))
	require.NoError(t, err)
	assert.Zero(t, created.Amount)

	_, err = svcs.EntryService.CreateEntry(ctx, entryInput("05/03/2024", 1, models.EntryIncome, models.EntryPending, models.PaymentUPI))
	assert.ErrorIs(t, err, validators.ErrInvalidDate)
}

func TestEntryService_UpdateAndDelete(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	created, err := svcs.EntryService.CreateEntry(ctx, entryInput("2024-03-05", 1500, models.EntryIncome, models.EntryPending, models.PaymentUPI))
	require.NoError(t, err)

	received := models.EntryReceived
	updated, err := svcs.EntryService.UpdateEntry(ctx, created.ID, models.EntryUpdate{Status: &received})
	require.NoError(t, err)
	assert.Equal(t, models.EntryReceived, updated.Status)
	assert.Equal(t, 1500.0, updated.Amount)
	assert.Equal(t, "2024-03-05", updated.Date)

	require.NoError(t, svcs.EntryService.DeleteEntry(ctx, created.ID))
	_, err = svcs.EntryService.GetEntry(ctx, created.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestInvoiceService_NextNumber(t *testing.T) {
	tests := []struct {
		last string
		want string
	}{
		{"", "INV-0001"},
		{"INV-0001", "INV-0002"},
		{"INV-0099", "INV-0100"},
		{"INV-12345", "INV-12346"},
		{"2024/INV-0007", "INV-0008"},
		{"custom-7", "INV-0001"},
	}

	for _, tt := range tests {
		t.Run(tt.last, func(t *testing.T) {
			assert.Equal(t, tt.want, nextInvoiceNumber(tt.last))
		})
	}
}

func TestInvoiceService_NextNumberFollowsLastCreated(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	next, err := svcs.InvoiceService.NextInvoiceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", next)

	_, err = svcs.InvoiceService.CreateInvoice(ctx, models.Invoice{
		InvoiceNumber: "INV-0041",
		ClientName:    "Mehta Traders",
		InvoiceDate:   "2024-03-01",
		DueDate:       "2024-03-15",
	})
	require.NoError(t, err)

	next, err = svcs.InvoiceService.NextInvoiceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-0042", next)
}

func TestInvoiceService_CreateNormalizesServices(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	created, err := svcs.InvoiceService.CreateInvoice(ctx, models.Invoice{
		InvoiceNumber: "INV-0001",
		ClientName:    "Mehta Traders",
		InvoiceDate:   "2024-03-01",
		DueDate:       "2024-03-15",
		Services: []models.InvoiceService{
			{Name: "", Quantity: 0, Rate: 500, Amount: 500},
			{Name: "Design", Quantity: 2, Rate: 250, Amount: 500},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePending, created.PaymentStatus)

	got, err := svcs.InvoiceService.GetInvoice(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Services, 2)
	assert.Equal(t, models.DefaultServiceName, got.Services[0].Name)
	assert.Equal(t, 1, got.Services[0].Quantity)
	assert.Equal(t, "Design", got.Services[1].Name)

	_, err = svcs.InvoiceService.CreateInvoice(ctx, models.Invoice{
		InvoiceNumber: "INV-0002",
		ClientName:    "Mehta Traders",
		InvoiceDate:   "2024-03-01",
		DueDate:       "2024-03-15",
		Services:      []models.InvoiceService{{Name: "Refund", Quantity: -1}},
	})
	assert.ErrorIs(t, err, validators.ErrInvalidQuantity)
}

func TestInvoiceService_UpdateReplacesServicesAndDeleteCascades(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	created, err := svcs.InvoiceService.CreateInvoice(ctx, models.Invoice{
		InvoiceNumber: "INV-0001",
		ClientName:    "Mehta Traders",
		InvoiceDate:   "2024-03-01",
		DueDate:       "2024-03-15",
		Services:      []models.InvoiceService{{Name: "A", Quantity: 1}, {Name: "B", Quantity: 1}},
	})
	require.NoError(t, err)

	paid := models.InvoicePaid
	services := []models.InvoiceService{{Name: "C", Quantity: 3, Rate: 10, Amount: 30}}
	updated, err := svcs.InvoiceService.UpdateInvoice(ctx, created.ID, models.InvoiceUpdate{PaymentStatus: &paid, Services: &services})
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, updated.PaymentStatus)
	require.Len(t, updated.Services, 1)
	assert.Equal(t, "C", updated.Services[0].Name)

	require.NoError(t, svcs.InvoiceService.DeleteInvoice(ctx, created.ID))
	_, err = svcs.InvoiceService.GetInvoice(ctx, created.ID)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	doc, err := svcs.DataService.ExportAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Invoices)

	assert.ErrorIs(t, svcs.InvoiceService.DeleteInvoice(ctx, created.ID), ErrInvoiceNotFound)
}

func TestInvoiceService_BulkImport(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	result, err := svcs.InvoiceService.BulkImportInvoices(ctx, models.BulkImportRequest{
		Invoices: []models.Invoice{
			{InvoiceNumber: "INV-0001", ClientName: "Mehta Traders"},
			{InvoiceNumber: "INV-0001", ClientName: "Mehta Traders"},
			{InvoiceNumber: "INV-0002", ClientName: "Kapoor & Sons"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, models.BulkImportError{Invoice: "INV-0001", Error: "Invoice INV-0001 already exists"}, result.Errors[0])

	list, err := svcs.InvoiceService.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	today := time.Now().UTC().Format(time.DateOnly)
	for _, inv := range list {
		assert.Equal(t, models.InvoicePending, inv.PaymentStatus)
		assert.Equal(t, today, inv.InvoiceDate)
		assert.Equal(t, today, inv.DueDate)
	}
}

func TestInvoiceService_BulkImportCollectsRecordErrors(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	_, err := svcs.InvoiceService.BulkImportInvoices(ctx, models.BulkImportRequest{})
	assert.ErrorIs(t, err, validators.ErrInvalidBulkFormat)

	result, err := svcs.InvoiceService.BulkImportInvoices(ctx, models.BulkImportRequest{
		Invoices: []models.Invoice{
			{ClientName: "No number"},
			{InvoiceNumber: "INV-0003", ClientName: "Bad status", PaymentStatus: "overdue"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, "Missing clientName or invoiceNumber", result.Errors[0].Error)
	assert.Equal(t, validators.ErrInvalidPaymentStatus.Error(), result.Errors[1].Error)
}

func TestSettingService(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	missing, err := svcs.SettingService.GetSetting(ctx, "agency")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = svcs.SettingService.UpdateSetting(ctx, "agency", models.SettingUpdate{})
	assert.ErrorIs(t, err, validators.ErrMissingSettingValue)

	_, err = svcs.SettingService.UpdateSetting(ctx, " ", models.SettingUpdate{Value: ptr(models.StringSetting("x"))})
	assert.ErrorIs(t, err, validators.ErrEmptySettingKey)

	value := models.DecodeSettingValue(`{"name":"Acme","gst":18}`)
	_, err = svcs.SettingService.UpdateSetting(ctx, "agency", models.SettingUpdate{Value: &value})
	require.NoError(t, err)
	_, err = svcs.SettingService.UpdateSetting(ctx, "theme", models.SettingUpdate{Value: ptr(models.StringSetting("dark"))})
	require.NoError(t, err)

	got, err := svcs.SettingService.GetSetting(ctx, "agency")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsJSON)
	assert.Equal(t, map[string]any{"name": "Acme", "gst": float64(18)}, got.Parsed)

	all, err := svcs.SettingService.GetAllSettings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "dark", all["theme"].Raw)
	assert.False(t, all["theme"].IsJSON)

	require.NoError(t, svcs.SettingService.DeleteSetting(ctx, "theme"))
	assert.ErrorIs(t, svcs.SettingService.DeleteSetting(ctx, "theme"), ErrSettingNotFound)
}

func TestDataService_ExportImportRoundTrip(t *testing.T) {
	src := newLedgerServices(t)
	ctx := context.Background()

	_, err := src.ClientService.CreateClient(ctx, models.ClientUpdate{Name: ptr("Mehta Traders"), Phone: ptr("98")})
	require.NoError(t, err)
	_, err = src.EntryService.CreateEntry(ctx, entryInput("2024-03-05", 1500, models.EntryIncome, models.EntryReceived, models.PaymentCash))
	require.NoError(t, err)
	_, err = src.InvoiceService.CreateInvoice(ctx, models.Invoice{
		InvoiceNumber: "INV-0001",
		ClientName:    "Mehta Traders",
		InvoiceDate:   "2024-03-01",
		DueDate:       "2024-03-15",
		Services:      []models.InvoiceService{{Name: "Audit", Quantity: 1, Rate: 1500, Amount: 1500}},
	})
	require.NoError(t, err)
	_, err = src.SettingService.UpdateSetting(ctx, "theme", models.SettingUpdate{Value: ptr(models.StringSetting("dark"))})
	require.NoError(t, err)

	doc, err := src.DataService.ExportAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DataDocumentVersion, doc.Version)

	dst := newLedgerServices(t)
	require.NoError(t, dst.DataService.ImportAll(ctx, doc))

	again, err := dst.DataService.ExportAll(ctx)
	require.NoError(t, err)
	require.Len(t, again.Clients, 1)
	require.Len(t, again.Entries, 1)
	require.Len(t, again.Invoices, 1)
	assert.Equal(t, "Mehta Traders", again.Clients[0].Name)
	assert.Equal(t, 1500.0, again.Entries[0].Amount)
	assert.Equal(t, "INV-0001", again.Invoices[0].InvoiceNumber)
	require.Len(t, again.Invoices[0].Services, 1)
	assert.Equal(t, "Audit", again.Invoices[0].Services[0].Name)
	assert.Equal(t, "dark", again.Settings["theme"].Raw)
}

func TestDataService_ImportKeepsLegacyTimestamps(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	body := `{
		"version": 1,
		"exportDate": "2024-02-01T08:00:00.000Z",
		"clients": [{"name": "Mehta Traders", "phone": "98", "createdAt": "2024-01-10 09:00:00", "updatedAt": "2024-01-11 09:00:00"}],
		"entries": [{"date": "2024-01-15", "clientName": "Mehta Traders", "amount": 1500, "type": "income",
			"status": "received", "paymentMode": "cash", "createdAt": "2024-01-15 10:30:00", "updatedAt": null}],
		"invoices": [{"invoiceNumber": "INV-0001", "clientName": "Mehta Traders", "invoiceDate": "2024-01-20",
			"dueDate": "2024-02-05", "createdAt": "2024-01-20 12:00:00", "updatedAt": "",
			"services": [{"name": "Audit", "quantity": 1, "rate": 1500, "amount": 1500}]}],
		"settings": {"currency": "INR"}
	}`

	var doc models.DataDocument
	require.NoError(t, json.Unmarshal([]byte(body), &doc))
	require.NoError(t, svcs.DataService.ImportAll(ctx, doc))

	out, err := svcs.DataService.ExportAll(ctx)
	require.NoError(t, err)

	require.Len(t, out.Clients, 1)
	assert.True(t, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC).Equal(out.Clients[0].CreatedAt), "client createdAt %s", out.Clients[0].CreatedAt)
	assert.True(t, time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC).Equal(out.Clients[0].UpdatedAt), "client updatedAt %s", out.Clients[0].UpdatedAt)

	require.Len(t, out.Entries, 1)
	assert.True(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC).Equal(out.Entries[0].CreatedAt), "entry createdAt %s", out.Entries[0].CreatedAt)
	assert.False(t, out.Entries[0].UpdatedAt.IsZero())

	require.Len(t, out.Invoices, 1)
	assert.True(t, time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC).Equal(out.Invoices[0].CreatedAt), "invoice createdAt %s", out.Invoices[0].CreatedAt)
	assert.False(t, out.Invoices[0].UpdatedAt.IsZero())
	require.Len(t, out.Invoices[0].Services, 1)

	assert.Equal(t, "INR", out.Settings["currency"].Raw)
}

func TestDataService_ImportRejectsMissingArrays(t *testing.T) {
	svcs := newLedgerServices(t)

	err := svcs.DataService.ImportAll(context.Background(), models.DataDocument{Entries: []models.FinanceEntry{}})
	assert.ErrorIs(t, err, validators.ErrInvalidDataFormat)
}

func TestDataService_ClearKeepsSettings(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	_, err := svcs.EntryService.CreateEntry(ctx, entryInput("2024-03-05", 10, models.EntryExpense, models.EntryReceived, models.PaymentCard))
	require.NoError(t, err)
	_, err = svcs.SettingService.UpdateSetting(ctx, "theme", models.SettingUpdate{Value: ptr(models.StringSetting("dark"))})
	require.NoError(t, err)

	require.NoError(t, svcs.DataService.ClearAll(ctx))

	stats, err := svcs.DataService.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Entries)
	assert.Equal(t, int64(1), stats.Settings)
}

func TestAnalyticsService(t *testing.T) {
	svcs := newLedgerServices(t)
	ctx := context.Background()

	for _, in := range []models.EntryUpdate{
		entryInput("2024-01-10", 1000, models.EntryIncome, models.EntryReceived, models.PaymentUPI),
		entryInput("2024-01-20", 400, models.EntryIncome, models.EntryPending, models.PaymentCash),
		entryInput("2024-03-02", 300, models.EntryExpense, models.EntryPending, models.PaymentCash),
		entryInput("2023-12-31", 50, models.EntryExpense, models.EntryReceived, models.PaymentCard),
	} {
		_, err := svcs.EntryService.CreateEntry(ctx, in)
		require.NoError(t, err)
	}

	summary, err := svcs.AnalyticsService.FinancialSummary(ctx, models.EntryFilter{})
	require.NoError(t, err)
	assert.Equal(t, models.FinancialSummary{
		TotalIncome:    1400,
		TotalExpense:   350,
		PendingAmount:  400,
		ReceivedAmount: 1000,
		NetBalance:     1050,
	}, summary)

	months, err := svcs.AnalyticsService.Monthly(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, months, 12)
	assert.Equal(t, models.IncomeExpense{Income: 1400}, months[0])
	assert.Equal(t, models.IncomeExpense{Expense: 300}, months[2])
	assert.Equal(t, models.IncomeExpense{}, months[11])

	modes, err := svcs.AnalyticsService.PaymentModes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 700.0, modes[models.PaymentCash])
	assert.Equal(t, 1000.0, modes[models.PaymentUPI])

	dist, err := svcs.AnalyticsService.StatusDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDistribution{Pending: 700, Received: 1050}, dist)

	yearly, err := svcs.AnalyticsService.YearlyRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.IncomeExpense{Income: 1400, Expense: 300}, yearly["2024"])
	assert.Equal(t, models.IncomeExpense{Expense: 50}, yearly["2023"])

	_, err = svcs.AnalyticsService.FinancialSummary(ctx, models.EntryFilter{Month: ptr(12)})
	assert.ErrorIs(t, err, validators.ErrInvalidMonth)
}
