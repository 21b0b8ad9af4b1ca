package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
)

// sessionRowID is the primary key of the only session row.
const sessionRowID = 1

// sessionRepository keeps the client login session in the local SQLite file.
type sessionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] backed by db.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// SaveSession implements [SessionRepository]. A previous session is replaced.
func (s *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	if session.CreatedAt.IsZero() {
		session.CreatedAt = now()
	}

	query, args, err := s.db.Builder().
		Insert(sessionTable).
		Columns("id", "login", "token", "encryption_salt", "kdf", "key_check", "created_at").
		Values(sessionRowID, session.Login, session.Token, session.EncryptionSalt, session.KDF, session.KeyCheck, session.CreatedAt).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			login = excluded.login,
			token = excluded.token,
			encryption_salt = excluded.encryption_salt,
			kdf = excluded.kdf,
			key_check = excluded.key_check,
			created_at = excluded.created_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sessionRepository.SaveSession").Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// GetSession implements [SessionRepository].
func (s *sessionRepository) GetSession(ctx context.Context) (models.Session, error) {
	query, args, err := s.db.Builder().
		Select("login", "token", "encryption_salt", "kdf", "key_check", "created_at").
		From(sessionTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var session models.Session
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&session.Login, &session.Token, &session.EncryptionSalt, &session.KDF, &session.KeyCheck, &session.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Session{}, ErrLocalSessionNotFound
	case err != nil:
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return session, nil
}

// DeleteSession implements [SessionRepository]. Deleting a missing session
// is not an error.
func (s *sessionRepository) DeleteSession(ctx context.Context) error {
	query, args, err := s.db.Builder().
		Delete(sessionTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
