package models

import "time"

// DataDocumentVersion is the version stamped on every exported document.
const DataDocumentVersion = 2

// DataDocument is the portable form of the whole dataset: the shape written
// by export and read by import. Entries and Invoices are required on import;
// a nil slice means the field was absent from the JSON body.
type DataDocument struct {
	Version    int                     `json:"version"`
	ExportDate time.Time               `json:"exportDate"`
	Entries    []FinanceEntry          `json:"entries"`
	Invoices   []Invoice               `json:"invoices"`
	Clients    []Client                `json:"clients"`
	Settings   map[string]SettingValue `json:"settings"`
}

// BulkImportRequest is the body of POST /api/invoices/import.
type BulkImportRequest struct {
	Invoices []Invoice `json:"invoices"`
}

// BulkImportError names the invoice that failed and why.
type BulkImportError struct {
	Invoice string `json:"invoice"`
	Error   string `json:"error"`
}

// BulkImportResult summarizes a best-effort invoice import.
type BulkImportResult struct {
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
	Errors  []BulkImportError `json:"errors"`
}

// Stats is a row count per ledger table, shown by the admin CLI.
type Stats struct {
	Users    int64 `json:"users"`
	Clients  int64 `json:"clients"`
	Entries  int64 `json:"entries"`
	Invoices int64 `json:"invoices"`
	Settings int64 `json:"settings"`
}
