package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/pass-guard/internal/config"
	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/mock"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/internal/utils"
	"github.com/MKhiriev/pass-guard/internal/validators"
	"github.com/MKhiriev/pass-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testHashKey  = "hash-key"
	testSignKey  = "sign-key"
	testIssuer   = "pass-guard-test"
	clientHash   = "3f1c0e8a9b7d6c5e4f3a2b1c0d9e8f7a6b5c4d3e2f1a0b9c8d7e6f5a4b3c2d1e"
	otherHash    = "0000000000000000000000000000000000000000000000000000000000000000"
	testUserID   = int64(42)
	testLoginStr = "alice"
)

func newTestAuthService(t *testing.T) (AuthService, *mock.MockUserRepository, *mock.MockVaultRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	vaults := mock.NewMockVaultRepository(ctrl)

	svc := NewAuthService(users, vaults, config.App{
		PasswordHashKey: testHashKey,
		TokenSignKey:    testSignKey,
		TokenIssuer:     testIssuer,
		TokenDuration:   time.Hour,
	}, logger.Nop())

	return svc, users, vaults
}

func registrationUser() models.User {
	return models.User{
		Login:          testLoginStr,
		AuthHash:       clientHash,
		EncryptionSalt: crypto.EncodeSalt(bytes.Repeat([]byte{0x33}, crypto.SaltSize)),
		KDF:            crypto.DefaultKDFParams(),
	}
}

func TestAuthService_RegisterUser_StoresKeyedHash(t *testing.T) {
	svc, users, _ := newTestAuthService(t)

	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, utils.HashString(clientHash, testHashKey), u.AuthHash)
			assert.NotEqual(t, clientHash, u.AuthHash)
			u.UserID = testUserID
			return u, nil
		})

	got, err := svc.RegisterUser(context.Background(), registrationUser())
	require.NoError(t, err)
	assert.Equal(t, testUserID, got.UserID)
}

func TestAuthService_RegisterUser_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *models.User)
		want   error
	}{
		{"empty login", func(u *models.User) { u.Login = "" }, validators.ErrEmptyLogin},
		{"empty auth hash", func(u *models.User) { u.AuthHash = "" }, validators.ErrEmptyAuthHash},
		{"short salt", func(u *models.User) { u.EncryptionSalt = crypto.EncodeSalt([]byte{1, 2, 3}) }, validators.ErrInvalidSalt},
		{"unknown kdf", func(u *models.User) { u.KDF.Algorithm = "scrypt" }, validators.ErrInvalidKDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAuthService(t)

			u := registrationUser()
			tt.mutate(&u)

			_, err := svc.RegisterUser(context.Background(), u)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_RegisterUser_Duplicate(t *testing.T) {
	svc, users, _ := newTestAuthService(t)

	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), registrationUser())
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

func TestAuthService_Params(t *testing.T) {
	svc, users, _ := newTestAuthService(t)

	stored := registrationUser()
	stored.UserID = testUserID
	stored.AuthHash = utils.HashString(clientHash, testHashKey)
	users.EXPECT().FindUserByLogin(gomock.Any(), testLoginStr).Return(stored, nil)

	got, err := svc.Params(context.Background(), testLoginStr)
	require.NoError(t, err)
	assert.Equal(t, stored.EncryptionSalt, got.EncryptionSalt)
	assert.Equal(t, stored.KDF, got.KDF)
	assert.Empty(t, got.AuthHash)
	assert.Zero(t, got.UserID)

	_, err = svc.Params(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Login(t *testing.T) {
	stored := registrationUser()
	stored.UserID = testUserID
	stored.AuthHash = utils.HashString(clientHash, testHashKey)

	tests := []struct {
		name     string
		user     models.User
		found    models.User
		findErr  error
		wantErr  error
		noLookup bool
	}{
		{name: "match", user: models.User{Login: testLoginStr, AuthHash: clientHash}, found: stored},
		{name: "wrong hash", user: models.User{Login: testLoginStr, AuthHash: otherHash}, found: stored, wantErr: ErrWrongPassword},
		{name: "unknown login", user: models.User{Login: "ghost", AuthHash: clientHash}, findErr: store.ErrNoUserWasFound, wantErr: ErrWrongPassword},
		{name: "db failure", user: models.User{Login: testLoginStr, AuthHash: clientHash}, findErr: store.ErrExecutingQuery, wantErr: store.ErrExecutingQuery},
		{name: "empty hash", user: models.User{Login: testLoginStr}, wantErr: ErrInvalidDataProvided, noLookup: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newTestAuthService(t)
			if !tt.noLookup {
				users.EXPECT().FindUserByLogin(gomock.Any(), tt.user.Login).Return(tt.found, tt.findErr)
			}

			got, err := svc.Login(context.Background(), tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testUserID, got.UserID)
		})
	}
}

func TestAuthService_Rekey(t *testing.T) {
	svc, _, vaults := newTestAuthService(t)
	ids := utils.NewUUIDGenerator()

	req := models.RekeyRequest{
		AuthHash:       clientHash,
		EncryptionSalt: crypto.EncodeSalt(bytes.Repeat([]byte{0x44}, crypto.SaltSize)),
		KDF:            crypto.DefaultKDFParams(),
		Items: []models.VaultRecord{
			{ItemID: ids.Generate(), Title: "a", EncryptedPayload: "blob-a"},
			{ItemID: ids.Generate(), Title: "b", EncryptedPayload: "blob-b"},
		},
	}

	vaults.EXPECT().Rekey(gomock.Any(), testUserID, gomock.Any(), req.Items).
		DoAndReturn(func(_ context.Context, _ int64, keys models.User, _ []models.VaultRecord) error {
			assert.Equal(t, utils.HashString(clientHash, testHashKey), keys.AuthHash)
			assert.Equal(t, req.EncryptionSalt, keys.EncryptionSalt)
			assert.Equal(t, req.KDF, keys.KDF)
			return nil
		})

	require.NoError(t, svc.Rekey(context.Background(), testUserID, req))
}

func TestAuthService_Rekey_Rejected(t *testing.T) {
	ids := utils.NewUUIDGenerator()
	dup := ids.Generate()
	valid := models.RekeyRequest{
		AuthHash:       clientHash,
		EncryptionSalt: crypto.EncodeSalt(bytes.Repeat([]byte{0x44}, crypto.SaltSize)),
		KDF:            crypto.DefaultKDFParams(),
	}

	t.Run("duplicate item", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)
		req := valid
		req.Items = []models.VaultRecord{
			{ItemID: dup, EncryptedPayload: "x"},
			{ItemID: dup, EncryptedPayload: "y"},
		}
		err := svc.Rekey(context.Background(), testUserID, req)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
		assert.ErrorIs(t, err, validators.ErrDuplicateItemID)
	})

	t.Run("no user", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)
		assert.ErrorIs(t, svc.Rekey(context.Background(), 0, valid), validators.ErrInvalidUserID)
	})

	t.Run("incomplete", func(t *testing.T) {
		svc, _, vaults := newTestAuthService(t)
		vaults.EXPECT().Rekey(gomock.Any(), testUserID, gomock.Any(), gomock.Any()).Return(store.ErrRekeyIncomplete)
		assert.ErrorIs(t, svc.Rekey(context.Background(), testUserID, valid), store.ErrRekeyIncomplete)
	})
}

func TestAuthService_Tokens(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: testUserID})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, testUserID, parsed.UserID)

	_, err = svc.ParseToken(ctx, token.SignedString+"x")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
