// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the goose SQL migrations for every schema the
// project uses: the server schema in a PostgreSQL and a SQLite flavor, and
// the client's local session schema.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql session/*.sql
var embedMigrations embed.FS

// Schema names a migration directory together with the goose dialect it is
// written for.
type Schema struct {
	Dir     string
	Dialect string
}

var (
	// ServerPostgres is the server schema for PostgreSQL.
	ServerPostgres = Schema{Dir: "postgres", Dialect: "postgres"}
	// ServerSQLite is the server schema for SQLite.
	ServerSQLite = Schema{Dir: "sqlite", Dialect: "sqlite3"}
	// ClientSession is the client's local session schema.
	ClientSession = Schema{Dir: "session", Dialect: "sqlite3"}
)

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending migration of schema to db.
func Migrate(ctx context.Context, db *sql.DB, schema Schema) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(schema.Dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.UpContext(ctx, db, schema.Dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
