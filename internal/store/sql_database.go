package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/migrations"
)

// Dialect identifies the SQL backend behind a [DB].
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// maxTxAttempts bounds retries of a transaction that failed with a
// [Retryable] error.
const maxTxAttempts = 3

// DB is a database handle bound to one dialect. Repositories build their
// queries with Builder so placeholders match the backend.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the backend named by dsn: a postgres:// or postgresql:// URL
// uses PostgreSQL via pgx, anything else is a SQLite path or file: URI.
func NewDB(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	switch {
	case dsn == "":
		return nil, fmt.Errorf("%w: empty DSN", ErrUnsupportedDSN)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewConnectPostgres(ctx, dsn, log)
	default:
		return NewConnectSQLite(ctx, dsn, log)
	}
}

// Dialect reports the backend of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Builder returns a squirrel statement builder using the dialect's
// placeholder format.
func (db *DB) Builder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Migrate applies the server schema for the dialect.
func (db *DB) Migrate(ctx context.Context) error {
	schema := migrations.ServerSQLite
	if db.dialect == DialectPostgres {
		schema = migrations.ServerPostgres
	}
	return migrations.Migrate(ctx, db.DB, schema)
}

// isUniqueViolation reports whether err is a unique or primary key
// violation in the current dialect.
func (db *DB) isUniqueViolation(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.IsUniqueViolation(err)
}

// txOptions returns the isolation used for multi-statement writes.
// PostgreSQL runs them read committed behind an explicit row lock (see
// [DB.lockOwner]) so each statement after the lock sees every write committed
// before it. SQLite transactions begin immediate and hold the write lock.
func (db *DB) txOptions() *sql.TxOptions {
	if db.dialect == DialectPostgres {
		return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	}
	return nil
}

// lockOwner blocks writes to the vault of ownerID until tx ends. It returns
// [ErrNoUserWasFound] for an unknown owner. On SQLite the transaction already
// holds the database write lock.
func (db *DB) lockOwner(ctx context.Context, tx *sql.Tx, ownerID int64) error {
	if db.dialect != DialectPostgres {
		return nil
	}

	query, args, err := buildLockUserQuery(db.Builder(), ownerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var locked int64
	err = tx.QueryRowContext(ctx, query, args...).Scan(&locked)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNoUserWasFound
	case err != nil:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// inTx runs fn in a transaction and commits it. Attempts that fail with an
// error classified as [Retryable] (serialization failure, deadlock, busy
// database) are retried with a short backoff.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.runTx(ctx, fn)
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "DB.inTx").
			Int("attempt", attempt).
			Msg("retrying transaction")

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}
	return err
}

func (db *DB) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, db.txOptions())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// escapeLike escapes LIKE wildcards so s matches literally. Queries using it
// must declare ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// now returns the timestamp stored in created_at/updated_at columns.
func now() time.Time {
	return time.Now().UTC()
}
