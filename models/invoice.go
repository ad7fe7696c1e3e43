package models

import "time"

// PaymentStatus is the settlement state of an invoice.
type PaymentStatus string

const (
	InvoicePending PaymentStatus = "pending"
	InvoicePaid    PaymentStatus = "paid"
)

// Valid reports whether s is one of the known invoice payment statuses.
func (s PaymentStatus) Valid() bool {
	return s == InvoicePending || s == InvoicePaid
}

// DefaultServiceName is used for imported line items without a name.
const DefaultServiceName = "Service"

// InvoiceService is a line item owned by an invoice.
type InvoiceService struct {
	ID        int64   `json:"id,omitempty"`
	InvoiceID int64   `json:"-"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Rate      float64 `json:"rate"`
	Amount    float64 `json:"amount"`
}

// Invoice is the invoice aggregate: header fields plus the owned line items.
// The two are always written together.
type Invoice struct {
	ID              int64            `json:"id"`
	InvoiceNumber   string           `json:"invoiceNumber"`
	AgencyName      *string          `json:"agencyName"`
	AgencyContact   *string          `json:"agencyContact"`
	AgencyAddress   *string          `json:"agencyAddress"`
	AgencyLogo      *string          `json:"agencyLogo"`
	ClientName      string           `json:"clientName"`
	ClientPhone     *string          `json:"clientPhone"`
	ClientAddress   *string          `json:"clientAddress"`
	InvoiceDate     string           `json:"invoiceDate"`
	DueDate         string           `json:"dueDate"`
	Subtotal        float64          `json:"subtotal"`
	TaxPercent      float64          `json:"taxPercent"`
	TaxAmount       float64          `json:"taxAmount"`
	DiscountPercent float64          `json:"discountPercent"`
	DiscountAmount  float64          `json:"discountAmount"`
	GrandTotal      float64          `json:"grandTotal"`
	PaymentStatus   PaymentStatus    `json:"paymentStatus"`
	Services        []InvoiceService `json:"services"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// InvoiceUpdate is a partial invoice update. A non-nil Services replaces the
// whole line-item set; nil leaves the items alone.
type InvoiceUpdate struct {
	AgencyName      *string           `json:"agencyName,omitempty"`
	AgencyContact   *string           `json:"agencyContact,omitempty"`
	AgencyAddress   *string           `json:"agencyAddress,omitempty"`
	AgencyLogo      *string           `json:"agencyLogo,omitempty"`
	ClientName      *string           `json:"clientName,omitempty"`
	ClientPhone     *string           `json:"clientPhone,omitempty"`
	ClientAddress   *string           `json:"clientAddress,omitempty"`
	InvoiceDate     *string           `json:"invoiceDate,omitempty"`
	DueDate         *string           `json:"dueDate,omitempty"`
	Subtotal        *float64          `json:"subtotal,omitempty"`
	TaxPercent      *float64          `json:"taxPercent,omitempty"`
	TaxAmount       *float64          `json:"taxAmount,omitempty"`
	DiscountPercent *float64          `json:"discountPercent,omitempty"`
	DiscountAmount  *float64          `json:"discountAmount,omitempty"`
	GrandTotal      *float64          `json:"grandTotal,omitempty"`
	PaymentStatus   *PaymentStatus    `json:"paymentStatus,omitempty"`
	Services        *[]InvoiceService `json:"services,omitempty"`
}

// NextInvoiceNumber is the response of GET /api/invoices/next-number.
type NextInvoiceNumber struct {
	InvoiceNumber string `json:"invoiceNumber"`
}
