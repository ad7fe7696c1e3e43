package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are tried in order when decoding. The space separated
// form is what SQLite's datetime('now') produces and what older backups
// carry.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02T15:04:05",
}

// Timestamp decodes record times from JSON documents written by either
// this service or older exports. null and "" decode to the zero time.
type Timestamp time.Time

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*t = Timestamp(parsed)
			return nil
		}
	}

	return fmt.Errorf("unsupported timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t))
}

// Time returns t as a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

func (c *Client) UnmarshalJSON(b []byte) error {
	type plain Client
	aux := struct {
		*plain
		CreatedAt Timestamp `json:"createdAt"`
		UpdatedAt Timestamp `json:"updatedAt"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.CreatedAt, c.UpdatedAt = aux.CreatedAt.Time(), aux.UpdatedAt.Time()
	return nil
}

func (e *FinanceEntry) UnmarshalJSON(b []byte) error {
	type plain FinanceEntry
	aux := struct {
		*plain
		CreatedAt Timestamp `json:"createdAt"`
		UpdatedAt Timestamp `json:"updatedAt"`
	}{plain: (*plain)(e)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.CreatedAt, e.UpdatedAt = aux.CreatedAt.Time(), aux.UpdatedAt.Time()
	return nil
}

func (i *Invoice) UnmarshalJSON(b []byte) error {
	type plain Invoice
	aux := struct {
		*plain
		CreatedAt Timestamp `json:"createdAt"`
		UpdatedAt Timestamp `json:"updatedAt"`
	}{plain: (*plain)(i)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	i.CreatedAt, i.UpdatedAt = aux.CreatedAt.Time(), aux.UpdatedAt.Time()
	return nil
}

func (d *DataDocument) UnmarshalJSON(b []byte) error {
	type plain DataDocument
	aux := struct {
		*plain
		ExportDate Timestamp `json:"exportDate"`
	}{plain: (*plain)(d)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	d.ExportDate = aux.ExportDate.Time()
	return nil
}
