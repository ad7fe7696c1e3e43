package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// nullTime scans timestamps produced by expressions. SQLite drops the
// column type for aggregates such as MAX(created_at), so the driver hands
// back text instead of a time.Time.
type nullTime struct {
	Time  time.Time
	Valid bool
}

func (n *nullTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*n = nullTime{}
		return nil
	case time.Time:
		*n = nullTime{Time: v, Valid: true}
		return nil
	case []byte:
		return n.parse(string(v))
	case string:
		return n.parse(v)
	}

	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (n *nullTime) parse(s string) error {
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*n = nullTime{Time: t, Valid: true}
			return nil
		}
	}

	return fmt.Errorf("unparsable timestamp %q", s)
}

func (n nullTime) ptr() *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

// clock is the clock used for created_at and updated_at columns.
var clock = func() time.Time {
	return time.Now().UTC()
}
