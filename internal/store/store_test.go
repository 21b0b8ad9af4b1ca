package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
)

// newSQLiteTestDB opens a migrated server database in a temp directory.
func newSQLiteTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "data", "vault.db")
	db, err := NewDB(context.Background(), dsn, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	return db
}

// newMockDB wraps sqlmock in a postgres-dialect DB.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &DB{
		DB:                 conn,
		dialect:            DialectPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

func testUser(login string) models.User {
	return models.User{
		Login:          login,
		AuthHash:       "stored-hash-" + login,
		EncryptionSalt: "c2FsdHNhbHRzYWx0c2FsdA==",
		KDF: models.KDFParams{
			Algorithm: models.KDFArgon2id,
			Time:      1,
			MemoryKiB: 64 * 1024,
			Threads:   4,
		},
	}
}
