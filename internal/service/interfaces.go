package service

import (
	"context"

	"github.com/MKhiriev/pass-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService registers accounts, verifies login proofs and issues the
// session tokens that gate every vault route. It never sees a passphrase or
// vault key.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	// Params returns the public key-derivation inputs of login.
	Params(ctx context.Context, login string) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	// Rekey swaps the caller's key material and re-sealed items atomically.
	Rekey(ctx context.Context, userID int64, req models.RekeyRequest) error

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// VaultService stores and searches sealed records on behalf of an owner.
type VaultService interface {
	Create(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	Get(ctx context.Context, ownerID int64, itemID string) (models.VaultRecord, error)
	Search(ctx context.Context, req models.VaultSearchRequest) ([]models.VaultRecord, error)
	Update(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	Delete(ctx context.Context, ownerID int64, itemID string) error
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
