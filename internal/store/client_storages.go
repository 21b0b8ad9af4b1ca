package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/migrations"
)

// ClientStorages groups the client-side repositories. Only the login session
// is kept locally; vault records live on the server.
type ClientStorages struct {
	SessionRepository SessionRepository

	db *DB
}

// NewClientStorages opens the local SQLite file at dsn, creating it and its
// directory when missing, and applies the session schema.
func NewClientStorages(ctx context.Context, dsn string, logger *logger.Logger) (*ClientStorages, error) {
	db, err := NewConnectSQLite(ctx, dsn, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := migrations.Migrate(ctx, db.DB, migrations.ClientSession); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionRepository: NewSessionRepository(db, logger),
		db:                db,
	}, nil
}

// Close releases the database handle.
func (c *ClientStorages) Close() error {
	return c.db.Close()
}
