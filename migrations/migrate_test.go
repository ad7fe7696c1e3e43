// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_ = mock // goose talks to the db itself; every call fails with no expectations

	err = Migrate(context.Background(), db, DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(context.Background(), db, DialectPostgres)
	require.ErrorIs(t, err, ErrNilDB)
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(context.Background(), db, "oracle")
	require.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", "file::memory:?cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, DialectSQLite))

	// second run is a no-op
	require.NoError(t, Migrate(ctx, db, DialectSQLite))

	for _, table := range []string{"clients", "finance_entries", "invoices", "invoice_services", "settings", "users", "login_history"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}

	var role string
	_, err = db.ExecContext(ctx, "INSERT INTO users (name, email, password) VALUES ('a', 'a@b.co', 'x')")
	require.NoError(t, err)
	require.NoError(t, db.QueryRowContext(ctx, "SELECT role FROM users WHERE email = 'a@b.co'").Scan(&role))
	assert.Equal(t, "user", role)
}
