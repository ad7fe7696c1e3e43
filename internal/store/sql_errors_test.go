package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name       string
		err        error
		retry      ErrorClassification
		constraint error
	}{
		{"nil", nil, NonRetryable, nil},
		{"plain error", errors.New("boom"), NonRetryable, nil},
		{"unique", pgError(pgerrcode.UniqueViolation), NonRetryable, ErrDuplicate},
		{"wrapped unique", fmt.Errorf("insert: %w", pgError(pgerrcode.UniqueViolation)), NonRetryable, ErrDuplicate},
		{"check", pgError(pgerrcode.CheckViolation), NonRetryable, ErrConstraintViolation},
		{"foreign key", pgError(pgerrcode.ForeignKeyViolation), NonRetryable, ErrConstraintViolation},
		{"serialization", pgError(pgerrcode.SerializationFailure), Retryable, nil},
		{"deadlock", pgError(pgerrcode.DeadlockDetected), Retryable, nil},
		{"connection", pgError(pgerrcode.ConnectionFailure), Retryable, nil},
		{"syntax", pgError(pgerrcode.SyntaxError), NonRetryable, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retry, c.Classify(tt.err))
			assert.Equal(t, tt.constraint, c.Constraint(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	tests := []struct {
		name       string
		err        error
		retry      ErrorClassification
		constraint error
	}{
		{"plain error", errors.New("boom"), NonRetryable, nil},
		{"busy", sqlite3.Error{Code: sqlite3.ErrBusy}, Retryable, nil},
		{"locked", sqlite3.Error{Code: sqlite3.ErrLocked}, Retryable, nil},
		{"unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, NonRetryable, ErrDuplicate},
		{"primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, NonRetryable, ErrDuplicate},
		{"check", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}, NonRetryable, ErrConstraintViolation},
		{"not null", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, NonRetryable, ErrConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retry, c.Classify(tt.err))
			assert.Equal(t, tt.constraint, c.Constraint(tt.err))
		})
	}
}

func TestNewConnect_UnsupportedDriver(t *testing.T) {
	_, err := NewConnect(context.Background(), configDB("mysql", "x"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "app.db?_foreign_keys=on", sqliteDSN("app.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "app.db?_fk=1", sqliteDSN("app.db?_fk=1"))
}
