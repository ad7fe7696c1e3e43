// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/migrations"
)

// DB wraps a *sql.DB together with the SQL dialect it speaks and the
// classifier that understands that dialect's driver errors.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Dialect returns the migrations dialect name of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies every pending migration for the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

// builder returns a squirrel statement builder using the placeholder format
// of the connection's dialect.
func (db *DB) builder() squirrel.StatementBuilderType {
	return newStatementBuilder(db.dialect)
}

func newStatementBuilder(dialect string) squirrel.StatementBuilderType {
	if dialect == migrations.DialectPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// classify maps a driver error onto the package sentinels. Errors the
// classificator does not recognise are returned unchanged.
func (db *DB) classify(err error) error {
	if err == nil || db.errorClassificator == nil {
		return err
	}

	if sentinel := db.errorClassificator.Constraint(err); sentinel != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}

	return err
}
