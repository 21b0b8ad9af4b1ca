package store

import (
	"context"

	"github.com/MKhiriev/pass-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts and their key-derivation inputs.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID and CreatedAt set.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByLogin returns [ErrNoUserWasFound] for an unknown login.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// VaultRepository persists sealed vault records. Every method is scoped by
// owner id; an item of another owner is indistinguishable from a missing one.
type VaultRepository interface {
	SaveVaultItem(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	GetVaultItem(ctx context.Context, ownerID int64, itemID string) (models.VaultRecord, error)
	// SearchVaultItems filters on title, username and url only and orders by
	// created_at descending.
	SearchVaultItems(ctx context.Context, req models.VaultSearchRequest) ([]models.VaultRecord, error)
	// UpdateVaultItem overwrites the search fields and payload. Last write
	// wins; there is no version check.
	UpdateVaultItem(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	DeleteVaultItem(ctx context.Context, ownerID int64, itemID string) error
	// Rekey replaces the owner's key material and every item payload in one
	// transaction. items must cover exactly the owner's current items, else
	// [ErrRekeyIncomplete] is returned and nothing changes.
	Rekey(ctx context.Context, ownerID int64, keys models.User, items []models.VaultRecord) error
}
