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

// invoiceRepository stores invoices together with their owned service
// lines. Every write that touches both tables runs in one transaction so a
// header never survives without the services it was written with.
type invoiceRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *DB, logger *logger.Logger) InvoiceRepository {
	logger.Debug().Msg("creating invoice repository")
	return &invoiceRepository{
		db:     db,
		logger: logger,
	}
}

// ListInvoices returns all invoices, newest invoice date first, each with its
// services.
func (r *invoiceRepository) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListInvoicesQuery(r.db.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	invoices, err := queryInvoices(ctx, r.db, r.db.DB, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*invoiceRepository.ListInvoices").Msg("error listing invoices")
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) GetInvoice(ctx context.Context, id int64) (models.Invoice, error) {
	return getInvoice(ctx, r.db, r.db.DB, id)
}

// LastInvoiceNumber returns the number of the most recently inserted invoice,
// or "" when there are none.
func (r *invoiceRepository) LastInvoiceNumber(ctx context.Context) (string, error) {
	query, args, err := buildLastInvoiceNumberQuery(r.db.builder())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var number string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&number)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*invoiceRepository.LastInvoiceNumber").Msg("error reading last invoice number")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return number, nil
}

func (r *invoiceRepository) InvoiceNumberExists(ctx context.Context, number string) (bool, error) {
	query, args, err := buildInvoiceNumberExistsQuery(r.db.builder(), number)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.db.exists(ctx, query, args...)
}

// CreateInvoice inserts the header and its services atomically.
func (r *invoiceRepository) CreateInvoice(ctx context.Context, invoice models.Invoice) (models.Invoice, error) {
	log := logger.FromContext(ctx)

	ts := clock()
	invoice.CreatedAt, invoice.UpdatedAt = ts, ts

	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		id, err := insertInvoice(ctx, r.db, tx, invoice)
		if err != nil {
			return err
		}
		invoice.ID = id
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*invoiceRepository.CreateInvoice").Str("invoice_number", invoice.InvoiceNumber).Msg("error creating invoice")
		return models.Invoice{}, err
	}

	return r.GetInvoice(ctx, invoice.ID)
}

// UpdateInvoice applies the header fields set in update. When update carries
// services, the existing service rows are replaced by them in the same
// transaction.
func (r *invoiceRepository) UpdateInvoice(ctx context.Context, id int64, update models.InvoiceUpdate) (models.Invoice, error) {
	log := logger.FromContext(ctx)
	sb := r.db.builder()

	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		query, args, err := buildUpdateInvoiceQuery(sb, id, update, clock())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if err = execAffecting(ctx, r.db, tx, query, args...); err != nil {
			return err
		}

		if update.Services == nil {
			return nil
		}

		if err = deleteServices(ctx, r.db, tx, squirrel.Eq{"invoice_id": id}); err != nil {
			return err
		}
		return insertServices(ctx, r.db, tx, id, *update.Services)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", "*invoiceRepository.UpdateInvoice").Int64("id", id).Msg("error updating invoice")
		}
		return models.Invoice{}, err
	}

	return r.GetInvoice(ctx, id)
}

// DeleteInvoice removes the invoice and its services.
func (r *invoiceRepository) DeleteInvoice(ctx context.Context, id int64) error {
	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		if err := deleteServices(ctx, r.db, tx, squirrel.Eq{"invoice_id": id}); err != nil {
			return err
		}

		query, args, err := buildDeleteQuery(r.db.builder(), tableInvoices, squirrel.Eq{"id": id})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		return execAffecting(ctx, r.db, tx, query, args...)
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		logger.FromContext(ctx).Err(err).Str("func", "*invoiceRepository.DeleteInvoice").Int64("id", id).Msg("error deleting invoice")
	}

	return err
}

// insertInvoice writes one invoice header followed by its services using q,
// which is expected to be a transaction.
func insertInvoice(ctx context.Context, db *DB, q DBTX, invoice models.Invoice) (int64, error) {
	query, args, err := buildCreateInvoiceQuery(db.builder(), invoice)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	id, err := insertReturningID(ctx, db, q, query, args...)
	if err != nil {
		return 0, err
	}

	if err = insertServices(ctx, db, q, id, invoice.Services); err != nil {
		return 0, err
	}

	return id, nil
}

func insertServices(ctx context.Context, db *DB, q DBTX, invoiceID int64, services []models.InvoiceService) error {
	if len(services) == 0 {
		return nil
	}

	query, args, err := buildInsertServicesQuery(db.builder(), invoiceID, services)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, db.classify(err))
	}

	return nil
}

func deleteServices(ctx context.Context, db *DB, q DBTX, where squirrel.Sqlizer) error {
	query, args, err := buildDeleteQuery(db.builder(), tableInvoiceServices, where)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, db.classify(err))
	}

	return nil
}

func getInvoice(ctx context.Context, db *DB, q DBTX, id int64) (models.Invoice, error) {
	query, args, err := buildGetInvoiceQuery(db.builder(), id)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	invoices, err := queryInvoices(ctx, db, q, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "getInvoice").Int64("id", id).Msg("error getting invoice")
		return models.Invoice{}, err
	}
	if len(invoices) == 0 {
		return models.Invoice{}, ErrNotFound
	}

	return invoices[0], nil
}

// queryInvoices reads invoice headers and then attaches their services. The
// header rows are closed before services are read, so a single-connection
// pool never waits on itself.
func queryInvoices(ctx context.Context, db *DB, q DBTX, query string, args ...any) ([]models.Invoice, error) {
	invoices, err := queryInvoiceHeaders(ctx, q, query, args...)
	if err != nil || len(invoices) == 0 {
		return invoices, err
	}

	ids := make([]int64, len(invoices))
	byID := make(map[int64]int, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
		byID[inv.ID] = i
	}

	services, err := queryServices(ctx, db, q, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range services {
		i := byID[s.InvoiceID]
		invoices[i].Services = append(invoices[i].Services, s)
	}

	return invoices, nil
}

func queryInvoiceHeaders(ctx context.Context, q DBTX, query string, args ...any) ([]models.Invoice, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	invoices := make([]models.Invoice, 0)
	for rows.Next() {
		inv, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		inv.Services = make([]models.InvoiceService, 0)
		invoices = append(invoices, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return invoices, nil
}

func queryServices(ctx context.Context, db *DB, q DBTX, invoiceIDs []int64) ([]models.InvoiceService, error) {
	query, args, err := buildSelectServicesQuery(db.builder(), invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	services := make([]models.InvoiceService, 0)
	for rows.Next() {
		var s models.InvoiceService
		if err = rows.Scan(&s.ID, &s.InvoiceID, &s.Name, &s.Quantity, &s.Rate, &s.Amount); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		services = append(services, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return services, nil
}

func scanInvoice(row rowScanner) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&inv.AgencyName,
		&inv.AgencyContact,
		&inv.AgencyAddress,
		&inv.AgencyLogo,
		&inv.ClientName,
		&inv.ClientPhone,
		&inv.ClientAddress,
		&inv.InvoiceDate,
		&inv.DueDate,
		&inv.Subtotal,
		&inv.TaxPercent,
		&inv.TaxAmount,
		&inv.DiscountPercent,
		&inv.DiscountAmount,
		&inv.GrandTotal,
		&inv.PaymentStatus,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	return inv, err
}
