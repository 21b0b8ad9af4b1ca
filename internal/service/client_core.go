package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/pass-guard/internal/adapter"
	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/internal/vault"
	"github.com/MKhiriev/pass-guard/models"
)

// DeriverFactory builds a [crypto.KeyDeriver] for stored KDF params.
type DeriverFactory func(params models.KDFParams) (crypto.KeyDeriver, error)

// clientCore holds the collaborators shared by the client services.
type clientCore struct {
	sessions   store.SessionRepository
	adapter    adapter.ServerAdapter
	engine     crypto.Engine
	ids        vault.IDGenerator
	newDeriver DeriverFactory
	logger     *logger.Logger
}

// session loads the local session and hands its token to the adapter.
func (c *clientCore) session(ctx context.Context) (models.Session, error) {
	sess, err := c.sessions.GetSession(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return models.Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	c.adapter.SetToken(sess.Token)
	return sess, nil
}

// manager builds a vault.Manager for the session's salt and KDF params.
func (c *clientCore) manager(sess models.Session) (*vault.Manager, error) {
	salt, err := crypto.DecodeSalt(sess.EncryptionSalt)
	if err != nil {
		return nil, fmt.Errorf("session salt: %w", err)
	}

	deriver, err := c.newDeriver(sess.KDF)
	if err != nil {
		return nil, fmt.Errorf("session kdf: %w", err)
	}

	return vault.NewManager(deriver, c.engine, salt, c.ids)
}

// unlock derives the account key for passphrase and rejects it unless it
// matches the key check saved with the session.
func (c *clientCore) unlock(sess models.Session, mgr *vault.Manager, passphrase string) (crypto.DerivedKey, error) {
	if sess.KeyCheck == "" {
		return crypto.DerivedKey{}, ErrSessionExpired
	}

	key, err := mgr.Unlock(passphrase)
	if err != nil {
		return crypto.DerivedKey{}, err
	}
	if !crypto.MatchesKeyCheck(key, sess.KeyCheck) {
		key.Destroy()
		return crypto.DerivedKey{}, ErrWrongPassword
	}
	return key, nil
}
