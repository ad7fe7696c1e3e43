package models

import "time"

// EntryType tells income from expense.
type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

// EntryStatus tracks whether the money has actually moved.
type EntryStatus string

const (
	EntryPending  EntryStatus = "pending"
	EntryReceived EntryStatus = "received"
)

// PaymentMode is the channel an entry was paid through.
type PaymentMode string

const (
	PaymentCash         PaymentMode = "cash"
	PaymentUPI          PaymentMode = "upi"
	PaymentBankTransfer PaymentMode = "bank_transfer"
	PaymentCard         PaymentMode = "card"
	PaymentCheque       PaymentMode = "cheque"
)

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	return t == EntryIncome || t == EntryExpense
}

// Valid reports whether s is one of the known entry statuses.
func (s EntryStatus) Valid() bool {
	return s == EntryPending || s == EntryReceived
}

// Valid reports whether m is one of the known payment modes.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentBankTransfer, PaymentCard, PaymentCheque:
		return true
	}
	return false
}

// FinanceEntry is a single income or expense line. Date is kept as the
// calendar string YYYY-MM-DD.
type FinanceEntry struct {
	ID          int64       `json:"id"`
	Date        string      `json:"date"`
	ClientName  string      `json:"clientName"`
	Description *string     `json:"description"`
	Amount      float64     `json:"amount"`
	Type        EntryType   `json:"type"`
	Status      EntryStatus `json:"status"`
	PaymentMode PaymentMode `json:"paymentMode"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// EntryUpdate is a partial entry update; nil fields keep their value.
type EntryUpdate struct {
	Date        *string      `json:"date,omitempty"`
	ClientName  *string      `json:"clientName,omitempty"`
	Description *string      `json:"description,omitempty"`
	Amount      *float64     `json:"amount,omitempty"`
	Type        *EntryType   `json:"type,omitempty"`
	Status      *EntryStatus `json:"status,omitempty"`
	PaymentMode *PaymentMode `json:"paymentMode,omitempty"`
}

// EntryFilter narrows entry listings and the financial summary.
// Month is zero-based (January = 0) to match the web client.
type EntryFilter struct {
	StartDate   string
	EndDate     string
	Month       *int
	Year        *int
	Type        EntryType
	Status      EntryStatus
	PaymentMode PaymentMode
	Search      string
}
