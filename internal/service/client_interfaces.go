package service

import (
	"context"

	"github.com/MKhiriev/pass-guard/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService manages the account and the local login session. The
// master passphrase is an argument of every call that needs the key; it is
// never stored.
type ClientAuthService interface {
	// Register generates a fresh salt, derives the vault key with the
	// configured KDF params, sends the resulting auth hash and starts a
	// session.
	Register(ctx context.Context, login, passphrase string) error

	// Login fetches login's salt and KDF params, derives the key, proves it
	// to the server and starts a session.
	Login(ctx context.Context, login, passphrase string) error

	// Logout forgets the local session.
	Logout(ctx context.Context) error

	// Session returns the current session or [ErrNotLoggedIn].
	Session(ctx context.Context) (models.Session, error)

	// Rekey re-seals every item under a key derived from newPassphrase and a
	// new salt, replacing the account key material in one server
	// transaction. Returns the number of re-sealed items.
	Rekey(ctx context.Context, oldPassphrase, newPassphrase string) (int, error)
}

// ClientVaultService seals items on the client before they are sent and
// opens them after they are fetched.
type ClientVaultService interface {
	// Add seals fields as a new item and stores it on the server.
	Add(ctx context.Context, passphrase string, fields models.VaultFields) (models.VaultRecord, error)

	// Get fetches and opens one item.
	Get(ctx context.Context, passphrase, itemID string) (models.VaultFields, error)

	// List returns records whose plaintext search fields contain search.
	// It needs no passphrase: payloads are not opened.
	List(ctx context.Context, search string) ([]models.VaultRecord, error)

	// Edit opens itemID, applies edit to its fields and stores the re-sealed
	// result. The key is derived once.
	Edit(ctx context.Context, passphrase, itemID string, edit func(*models.VaultFields)) (models.VaultRecord, error)

	// Remove deletes itemID on the server.
	Remove(ctx context.Context, itemID string) error
}
