// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"strings"

	"github.com/MKhiriev/finance-flow/models"
)

// ClientCreateFields are the fields a new client must carry.
var ClientCreateFields = []string{FieldName, FieldPhone}

// EntryCreateFields are the fields a new finance entry must carry.
var EntryCreateFields = []string{FieldDate, FieldClientName, FieldAmount, FieldType, FieldStatus, FieldPaymentMode}

// validateClientUpdate requires the named fields to be present and non-blank.
// Without fields it only rejects a name that is supplied but blank.
func (v *RequestValidator) validateClientUpdate(upd models.ClientUpdate, fields ...string) error {
	for _, f := range fields {
		switch f {
		case FieldName:
			if upd.Name == nil || blank(*upd.Name) {
				return ErrMissingClientFields
			}
		case FieldPhone:
			if upd.Phone == nil || blank(*upd.Phone) {
				return ErrMissingClientFields
			}
		default:
			return ErrUnknownField
		}
	}

	if upd.Name != nil && blank(*upd.Name) {
		return ErrEmptyName
	}
	return nil
}

// validateEntryUpdate requires the named fields to be present, then checks
// the format of every supplied field.
func (v *RequestValidator) validateEntryUpdate(upd models.EntryUpdate, fields ...string) error {
	for _, f := range fields {
		var missing bool
		switch f {
		case FieldDate:
			missing = upd.Date == nil || blank(*upd.Date)
		case FieldClientName:
			missing = upd.ClientName == nil || blank(*upd.ClientName)
		case FieldAmount:
			missing = upd.Amount == nil
		case FieldType:
			missing = upd.Type == nil || *upd.Type == ""
		case FieldStatus:
			missing = upd.Status == nil || *upd.Status == ""
		case FieldPaymentMode:
			missing = upd.PaymentMode == nil || *upd.PaymentMode == ""
		default:
			return ErrUnknownField
		}
		if missing {
			return ErrMissingRequiredFields
		}
	}

	if upd.Date != nil && !isDate(*upd.Date) {
		return ErrInvalidDate
	}
	if upd.Type != nil && !upd.Type.Valid() {
		return ErrInvalidEntryType
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return ErrInvalidEntryStatus
	}
	if upd.PaymentMode != nil && !upd.PaymentMode.Valid() {
		return ErrInvalidPaymentMode
	}
	return nil
}

func (v *RequestValidator) validateEntryFilter(f models.EntryFilter) error {
	if f.StartDate != "" && !isDate(f.StartDate) {
		return ErrInvalidDate
	}
	if f.EndDate != "" && !isDate(f.EndDate) {
		return ErrInvalidDate
	}
	if f.Month != nil && (*f.Month < 0 || *f.Month > 11) {
		return ErrInvalidMonth
	}
	if f.Year != nil && (*f.Year < 1 || *f.Year > 9999) {
		return ErrInvalidYear
	}
	if f.Type != "" && !f.Type.Valid() {
		return ErrInvalidEntryType
	}
	if f.Status != "" && !f.Status.Valid() {
		return ErrInvalidEntryStatus
	}
	if f.PaymentMode != "" && !f.PaymentMode.Valid() {
		return ErrInvalidPaymentMode
	}
	return nil
}

func (v *RequestValidator) validateInvoice(inv models.Invoice) error {
	if blank(inv.InvoiceNumber) || blank(inv.ClientName) || blank(inv.InvoiceDate) || blank(inv.DueDate) {
		return ErrMissingRequiredFields
	}
	if inv.PaymentStatus != "" && !inv.PaymentStatus.Valid() {
		return ErrInvalidPaymentStatus
	}
	return validateServices(inv.Services)
}

func (v *RequestValidator) validateInvoiceUpdate(upd models.InvoiceUpdate) error {
	if upd.ClientName != nil && blank(*upd.ClientName) {
		return ErrMissingRequiredFields
	}
	if upd.PaymentStatus != nil && !upd.PaymentStatus.Valid() {
		return ErrInvalidPaymentStatus
	}
	if upd.Services != nil {
		return validateServices(*upd.Services)
	}
	return nil
}

func validateServices(services []models.InvoiceService) error {
	for _, s := range services {
		if s.Quantity < 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

func (v *RequestValidator) validateSettingUpdate(upd models.SettingUpdate) error {
	if upd.Value == nil {
		return ErrMissingSettingValue
	}
	return nil
}

// ValidateSettingKey rejects blank keys. Keys arrive as path segments, so
// they are never part of a request model.
func ValidateSettingKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptySettingKey
	}
	return nil
}

// validateDataDocument requires both ledger arrays to be present. An empty
// array is valid and means "import nothing of this kind".
func (v *RequestValidator) validateDataDocument(doc models.DataDocument) error {
	if doc.Entries == nil || doc.Invoices == nil {
		return ErrInvalidDataFormat
	}
	return nil
}

func (v *RequestValidator) validateBulkImport(req models.BulkImportRequest) error {
	if len(req.Invoices) == 0 {
		return ErrInvalidBulkFormat
	}
	return nil
}
