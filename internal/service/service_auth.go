package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/pass-guard/internal/config"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/internal/utils"
	"github.com/MKhiriev/pass-guard/internal/validators"
	"github.com/MKhiriev/pass-guard/models"
)

// authService is the concrete implementation of AuthService.
// It stores an HMAC of the client's auth hash, so a leaked users table does
// not yield a value the client could replay.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// vaultRepository applies rekeys, which touch users and vault_items in
	// one transaction.
	vaultRepository store.VaultRepository

	validator validators.Validator

	// hashKey is the HMAC secret applied to auth hashes before storage or
	// comparison. Must match the value used at registration time.
	hashKey string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with security
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, vaultRepository store.VaultRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		vaultRepository: vaultRepository,
		validator:       validators.NewVaultValidator(),
		hashKey:         cfg.PasswordHashKey,
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		logger:          logger,
	}
}

// RegisterUser creates a new account from the client-chosen salt, KDF params
// and auth hash.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if any field fails validation.
//   - store.ErrLoginAlreadyExists (wrapped) if the login is taken.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user); err != nil {
		log.Error().Err(err).Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	a.hashAuthHash(&user)

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Params returns login's salt and KDF params. They are not secret; the
// client needs them to derive its key before it can prove it.
func (a *authService) Params(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	if login == "" {
		log.Error().Msg("empty login provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, login)
	if err != nil {
		log.Err(err).Str("login", login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	return foundUser.KeyParams(), nil
}

// Login authenticates an existing user by comparing the keyed hash of the
// supplied auth hash with the stored one in constant time.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Login or AuthHash is empty.
//   - ErrWrongPassword if the login is unknown or the hashes differ.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user, validators.FieldLogin, validators.FieldAuthHash); err != nil {
		log.Error().Err(err).Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("login", user.Login).Msg("login for unknown user")
		return models.User{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	a.hashAuthHash(&user)
	if !utils.EqualHash(foundUser.AuthHash, user.AuthHash) {
		log.Info().
			Int64("id", foundUser.UserID).
			Str("login", foundUser.Login).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// Rekey replaces userID's auth hash, salt and KDF params together with every
// re-sealed item. The store refuses the change unless req.Items covers the
// whole vault.
func (a *authService) Rekey(ctx context.Context, userID int64, req models.RekeyRequest) error {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	if err := a.validator.Validate(ctx, req); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("invalid rekey request")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	keys := models.User{
		AuthHash:       req.AuthHash,
		EncryptionSalt: req.EncryptionSalt,
		KDF:            req.KDF,
	}
	a.hashAuthHash(&keys)

	if err := a.vaultRepository.Rekey(ctx, userID, keys, req.Items); err != nil {
		return fmt.Errorf("rekey failed: %w", err)
	}

	return nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// hashAuthHash replaces the client-supplied AuthHash in user with its
// HMAC-SHA256 computed using the service's hashKey.
func (a *authService) hashAuthHash(user *models.User) {
	user.AuthHash = utils.HashString(user.AuthHash, a.hashKey)
}
