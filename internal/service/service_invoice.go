// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/validators"
	"github.com/MKhiriev/finance-flow/models"
)

const (
	invoiceNumberPrefix = "INV-"
	firstInvoiceNumber  = "INV-0001"

	bulkMissingFields = "Missing clientName or invoiceNumber"
	bulkSaveFailed    = "Failed to save invoice"
)

var invoiceNumberPattern = regexp.MustCompile(`INV-(\d+)`)

type invoiceService struct {
	invoiceRepository store.InvoiceRepository
	validator         validators.Validator

	now    func() time.Time
	logger *logger.Logger
}

func NewInvoiceService(invoiceRepository store.InvoiceRepository, validator validators.Validator, logger *logger.Logger) InvoiceService {
	return &invoiceService{
		invoiceRepository: invoiceRepository,
		validator:         validator,
		now:               func() time.Time { return time.Now().UTC() },
		logger:            logger,
	}
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	return s.invoiceRepository.ListInvoices(ctx)
}

func (s *invoiceService) GetInvoice(ctx context.Context, id int64) (models.Invoice, error) {
	invoice, err := s.invoiceRepository.GetInvoice(ctx, id)
	return invoice, notFoundAs(err, ErrInvoiceNotFound)
}

// NextInvoiceNumber derives the next number from the most recently created
// invoice. Numbers that do not follow the INV-<digits> pattern restart the
// sequence at INV-0001.
func (s *invoiceService) NextInvoiceNumber(ctx context.Context) (string, error) {
	last, err := s.invoiceRepository.LastInvoiceNumber(ctx)
	if err != nil {
		return "", err
	}
	return nextInvoiceNumber(last), nil
}

func nextInvoiceNumber(last string) string {
	m := invoiceNumberPattern.FindStringSubmatch(last)
	if m == nil {
		return firstInvoiceNumber
	}

	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return firstInvoiceNumber
	}
	return fmt.Sprintf("%s%04d", invoiceNumberPrefix, n+1)
}

func (s *invoiceService) CreateInvoice(ctx context.Context, invoice models.Invoice) (models.Invoice, error) {
	if err := s.validator.Validate(ctx, invoice); err != nil {
		return models.Invoice{}, err
	}

	return s.invoiceRepository.CreateInvoice(ctx, normalizeInvoice(invoice, s.today()))
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id int64, update models.InvoiceUpdate) (models.Invoice, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Invoice{}, err
	}

	if update.Services != nil {
		services := normalizeServices(*update.Services)
		update.Services = &services
	}

	invoice, err := s.invoiceRepository.UpdateInvoice(ctx, id, update)
	return invoice, notFoundAs(err, ErrInvoiceNotFound)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id int64) error {
	return notFoundAs(s.invoiceRepository.DeleteInvoice(ctx, id), ErrInvoiceNotFound)
}

// BulkImportInvoices processes the invoices in order. Each one is checked and
// written in its own transaction; failures are collected, never returned.
// Only a malformed request fails as a whole.
func (s *invoiceService) BulkImportInvoices(ctx context.Context, req models.BulkImportRequest) (models.BulkImportResult, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.BulkImportResult{}, err
	}

	result := models.BulkImportResult{
		Total:  len(req.Invoices),
		Errors: make([]models.BulkImportError, 0),
	}
	today := s.today()

	for _, inv := range req.Invoices {
		if msg := s.importOne(ctx, inv, today); msg != "" {
			result.Failed++
			result.Errors = append(result.Errors, models.BulkImportError{Invoice: inv.InvoiceNumber, Error: msg})
			continue
		}
		result.Success++
	}

	log.Info().
		Int("total", result.Total).
		Int("success", result.Success).
		Int("failed", result.Failed).
		Msg("invoices imported")

	return result, nil
}

// importOne stores a single invoice and returns the client facing reason
// when it could not.
func (s *invoiceService) importOne(ctx context.Context, inv models.Invoice, today string) string {
	if strings.TrimSpace(inv.ClientName) == "" || strings.TrimSpace(inv.InvoiceNumber) == "" {
		return bulkMissingFields
	}
	if inv.PaymentStatus != "" && !inv.PaymentStatus.Valid() {
		return validators.ErrInvalidPaymentStatus.Error()
	}

	duplicate := fmt.Sprintf("Invoice %s already exists", inv.InvoiceNumber)

	exists, err := s.invoiceRepository.InvoiceNumberExists(ctx, inv.InvoiceNumber)
	if err != nil {
		return bulkSaveFailed
	}
	if exists {
		return duplicate
	}

	_, err = s.invoiceRepository.CreateInvoice(ctx, normalizeInvoice(inv, today))
	if errors.Is(err, store.ErrDuplicate) {
		return duplicate
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*invoiceService.importOne").
			Str("invoice_number", inv.InvoiceNumber).
			Msg("error importing invoice")
		return bulkSaveFailed
	}

	return ""
}

func (s *invoiceService) today() string {
	return s.now().Format(time.DateOnly)
}

// normalizeInvoice fills the defaults of a new invoice: pending status,
// dates of today, and the service defaults of normalizeServices.
func normalizeInvoice(inv models.Invoice, today string) models.Invoice {
	inv.InvoiceNumber = strings.TrimSpace(inv.InvoiceNumber)
	inv.ClientName = strings.TrimSpace(inv.ClientName)
	if inv.PaymentStatus == "" {
		inv.PaymentStatus = models.InvoicePending
	}
	if inv.InvoiceDate == "" {
		inv.InvoiceDate = today
	}
	if inv.DueDate == "" {
		inv.DueDate = today
	}
	inv.Services = normalizeServices(inv.Services)
	return inv
}

// normalizeServices names unnamed services and counts a zero quantity as one.
func normalizeServices(services []models.InvoiceService) []models.InvoiceService {
	out := make([]models.InvoiceService, len(services))
	for i, svc := range services {
		if strings.TrimSpace(svc.Name) == "" {
			svc.Name = models.DefaultServiceName
		}
		if svc.Quantity == 0 {
			svc.Quantity = 1
		}
		out[i] = svc
	}
	return out
}
