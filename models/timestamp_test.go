package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", `"2024-01-15T10:30:00Z"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), false},
		{"rfc3339 with millis", `"2024-01-15T10:30:00.250Z"`, time.Date(2024, 1, 15, 10, 30, 0, 250e6, time.UTC), false},
		{"rfc3339 with offset", `"2024-01-15T16:00:00+05:30"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), false},
		{"sqlite datetime", `"2024-01-15 10:30:00"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), false},
		{"no zone", `"2024-01-15T10:30:00"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"garbage", `"yesterday"`, time.Time{}, true},
		{"number", `1705314600`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time()), "got %s", ts.Time())
		})
	}
}

func TestDataDocument_UnmarshalLegacyTimestamps(t *testing.T) {
	body := `{
		"version": 1,
		"exportDate": "2024-02-01T08:00:00.000Z",
		"clients": [{"id": 3, "name": "Mehta Traders", "phone": "98", "createdAt": "2024-01-10 09:00:00", "updatedAt": null}],
		"entries": [{"id": 7, "date": "2024-01-15", "clientName": "Mehta Traders", "amount": 1500, "type": "income",
			"status": "received", "paymentMode": "cash", "createdAt": "2024-01-15 10:30:00", "updatedAt": "2024-01-16 11:00:00"}],
		"invoices": [{"invoiceNumber": "INV-0001", "clientName": "Mehta Traders", "invoiceDate": "2024-01-20",
			"dueDate": "2024-02-05", "createdAt": "2024-01-20 12:00:00", "services": [{"name": "Audit", "quantity": 1, "rate": 1500, "amount": 1500}]}],
		"settings": {"currency": "INR"}
	}`

	var doc DataDocument
	require.NoError(t, json.Unmarshal([]byte(body), &doc))

	assert.True(t, time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC).Equal(doc.ExportDate))

	require.Len(t, doc.Clients, 1)
	assert.Equal(t, "Mehta Traders", doc.Clients[0].Name)
	assert.True(t, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC).Equal(doc.Clients[0].CreatedAt))
	assert.True(t, doc.Clients[0].UpdatedAt.IsZero())

	require.Len(t, doc.Entries, 1)
	assert.Equal(t, int64(7), doc.Entries[0].ID)
	assert.Equal(t, EntryIncome, doc.Entries[0].Type)
	assert.True(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC).Equal(doc.Entries[0].CreatedAt))
	assert.True(t, time.Date(2024, 1, 16, 11, 0, 0, 0, time.UTC).Equal(doc.Entries[0].UpdatedAt))

	require.Len(t, doc.Invoices, 1)
	assert.Equal(t, "INV-0001", doc.Invoices[0].InvoiceNumber)
	require.Len(t, doc.Invoices[0].Services, 1)
	assert.True(t, time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC).Equal(doc.Invoices[0].CreatedAt))
	assert.True(t, doc.Invoices[0].UpdatedAt.IsZero())
}

func TestDataDocument_UnmarshalRejectsBadTimestamp(t *testing.T) {
	var doc DataDocument
	err := json.Unmarshal([]byte(`{"entries": [{"createdAt": "last week"}], "invoices": []}`), &doc)
	assert.Error(t, err)
}
