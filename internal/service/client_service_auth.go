package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/vault"
	"github.com/MKhiriev/pass-guard/models"
)

type clientAuthService struct {
	*clientCore

	// deriver carries the KDF params used for new keys at registration and
	// rekey.
	deriver crypto.KeyDeriver
}

func newClientAuthService(core *clientCore, deriver crypto.KeyDeriver) *clientAuthService {
	return &clientAuthService{clientCore: core, deriver: deriver}
}

func (a *clientAuthService) Register(ctx context.Context, login, passphrase string) error {
	log := logger.FromContext(ctx)

	if login == "" {
		return ErrInvalidDataProvided
	}
	if passphrase == "" {
		return ErrPassphraseEmpty
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}

	key, err := a.deriver.Derive(passphrase, salt)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}
	defer key.Destroy()

	user := models.User{
		Login:          login,
		AuthHash:       crypto.AuthHash(key, crypto.AuthPurpose),
		EncryptionSalt: crypto.EncodeSalt(salt),
		KDF:            a.deriver.Params(),
	}

	token, err := a.adapter.Register(ctx, user)
	if err != nil {
		log.Err(err).Str("login", login).Msg("registration failed")
		return mapAdapterError(err)
	}

	return a.startSession(ctx, user, token, key)
}

func (a *clientAuthService) Login(ctx context.Context, login, passphrase string) error {
	log := logger.FromContext(ctx)

	if login == "" {
		return ErrInvalidDataProvided
	}
	if passphrase == "" {
		return ErrPassphraseEmpty
	}

	params, err := a.adapter.Params(ctx, login)
	if err != nil {
		log.Err(err).Str("login", login).Msg("params request failed")
		return mapAdapterError(err)
	}

	key, err := a.deriveFor(params.EncryptionSalt, params.KDF, passphrase)
	if err != nil {
		return err
	}
	defer key.Destroy()

	user := models.User{
		Login:          login,
		AuthHash:       crypto.AuthHash(key, crypto.AuthPurpose),
		EncryptionSalt: params.EncryptionSalt,
		KDF:            params.KDF,
	}

	token, err := a.adapter.Login(ctx, user)
	if err != nil {
		log.Err(err).Str("login", login).Msg("login failed")
		return mapAdapterError(err)
	}

	return a.startSession(ctx, user, token, key)
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.adapter.SetToken("")
	return a.sessions.DeleteSession(ctx)
}

func (a *clientAuthService) Session(ctx context.Context) (models.Session, error) {
	return a.session(ctx)
}

// Rekey first proves the old passphrase with a fresh login, so a typo cannot
// lock the vault under an unknown key. Nothing changes on the server unless
// every item was re-sealed.
func (a *clientAuthService) Rekey(ctx context.Context, oldPassphrase, newPassphrase string) (int, error) {
	log := logger.FromContext(ctx)

	if oldPassphrase == "" || newPassphrase == "" {
		return 0, ErrPassphraseEmpty
	}

	sess, err := a.session(ctx)
	if err != nil {
		return 0, err
	}

	oldKey, err := a.deriveFor(sess.EncryptionSalt, sess.KDF, oldPassphrase)
	if err != nil {
		return 0, err
	}
	defer oldKey.Destroy()

	token, err := a.adapter.Login(ctx, models.User{
		Login:    sess.Login,
		AuthHash: crypto.AuthHash(oldKey, crypto.AuthPurpose),
	})
	if err != nil {
		return 0, mapAdapterError(err)
	}

	records, err := a.adapter.ListItems(ctx, "")
	if err != nil {
		return 0, mapAdapterError(err)
	}

	newSalt, err := crypto.GenerateSalt()
	if err != nil {
		return 0, err
	}
	newKey, err := a.deriver.Derive(newPassphrase, newSalt)
	if err != nil {
		return 0, fmt.Errorf("derive key: %w", err)
	}
	defer newKey.Destroy()

	rekeyed, err := vault.Rekey(a.engine, records, oldKey, newKey)
	if err != nil {
		log.Err(err).Int("items", len(records)).Msg("re-sealing failed, vault unchanged")
		return 0, err
	}

	req := models.RekeyRequest{
		AuthHash:       crypto.AuthHash(newKey, crypto.AuthPurpose),
		EncryptionSalt: crypto.EncodeSalt(newSalt),
		KDF:            a.deriver.Params(),
		Items:          rekeyed,
	}
	if err := a.adapter.Rekey(ctx, req); err != nil {
		log.Err(err).Int("items", len(rekeyed)).Msg("server rejected rekey")
		return 0, mapAdapterError(err)
	}

	sess.Token = token
	sess.EncryptionSalt = req.EncryptionSalt
	sess.KDF = req.KDF
	sess.KeyCheck = crypto.KeyCheck(newKey)
	if err := a.sessions.SaveSession(ctx, sess); err != nil {
		return 0, fmt.Errorf("save session: %w", err)
	}

	log.Info().Int("items", len(rekeyed)).Msg("vault rekeyed")
	return len(rekeyed), nil
}

func (a *clientAuthService) deriveFor(encodedSalt string, params models.KDFParams, passphrase string) (crypto.DerivedKey, error) {
	salt, err := crypto.DecodeSalt(encodedSalt)
	if err != nil {
		return crypto.DerivedKey{}, fmt.Errorf("account salt: %w", err)
	}

	deriver, err := a.newDeriver(params)
	if err != nil {
		return crypto.DerivedKey{}, fmt.Errorf("account kdf: %w", err)
	}

	key, err := deriver.Derive(passphrase, salt)
	if err != nil {
		return crypto.DerivedKey{}, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

func (a *clientAuthService) startSession(ctx context.Context, user models.User, token string, key crypto.DerivedKey) error {
	a.adapter.SetToken(token)

	err := a.sessions.SaveSession(ctx, models.Session{
		Login:          user.Login,
		Token:          token,
		EncryptionSalt: user.EncryptionSalt,
		KDF:            user.KDF,
		KeyCheck:       crypto.KeyCheck(key),
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
