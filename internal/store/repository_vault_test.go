package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
)

type vaultFixture struct {
	users UserRepository
	vault VaultRepository
	alice models.User
	bob   models.User
}

func newVaultFixture(t *testing.T) vaultFixture {
	t.Helper()

	db := newSQLiteTestDB(t)
	f := vaultFixture{
		users: NewUserRepository(db, logger.Nop()),
		vault: NewVaultRepository(db, logger.Nop()),
	}

	var err error
	f.alice, err = f.users.CreateUser(context.Background(), testUser("alice"))
	require.NoError(t, err)
	f.bob, err = f.users.CreateUser(context.Background(), testUser("bob"))
	require.NoError(t, err)
	return f
}

func record(owner int64, id, title, username, url string) models.VaultRecord {
	return models.VaultRecord{
		ItemID:           id,
		OwnerID:          owner,
		Title:            title,
		Username:         username,
		URL:              url,
		EncryptedPayload: "blob-" + id,
	}
}

func titles(records []models.VaultRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Title)
	}
	return out
}

func TestVaultRepository_SaveAndGet(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()

	saved, err := f.vault.SaveVaultItem(ctx, record(f.alice.UserID, "a1", "Bank", "alice", "https://bank.example"))
	require.NoError(t, err)
	require.NotNil(t, saved.CreatedAt)
	require.NotNil(t, saved.UpdatedAt)

	got, err := f.vault.GetVaultItem(ctx, f.alice.UserID, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Bank", got.Title)
	assert.Equal(t, "blob-a1", got.EncryptedPayload)
	assert.Equal(t, f.alice.UserID, got.OwnerID)
	assert.True(t, saved.CreatedAt.Equal(*got.CreatedAt))

	_, err = f.vault.SaveVaultItem(ctx, record(f.alice.UserID, "a1", "Other", "", ""))
	assert.ErrorIs(t, err, ErrVaultItemAlreadyExists)

	// same id under another owner is a different item
	_, err = f.vault.SaveVaultItem(ctx, record(f.bob.UserID, "a1", "Bob's", "", ""))
	require.NoError(t, err)
}

func TestVaultRepository_OwnerIsolation(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()

	_, err := f.vault.SaveVaultItem(ctx, record(f.alice.UserID, "a1", "Bank", "alice", ""))
	require.NoError(t, err)

	_, err = f.vault.GetVaultItem(ctx, f.bob.UserID, "a1")
	assert.ErrorIs(t, err, ErrVaultItemNotFound)

	list, err := f.vault.SearchVaultItems(ctx, models.VaultSearchRequest{OwnerID: f.bob.UserID})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.vault.UpdateVaultItem(ctx, record(f.bob.UserID, "a1", "stolen", "", ""))
	assert.ErrorIs(t, err, ErrVaultItemNotFound)

	assert.ErrorIs(t, f.vault.DeleteVaultItem(ctx, f.bob.UserID, "a1"), ErrVaultItemNotFound)

	got, err := f.vault.GetVaultItem(ctx, f.alice.UserID, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Bank", got.Title)
}

func TestVaultRepository_Search(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()

	for _, r := range []models.VaultRecord{
		record(f.alice.UserID, "a", "Bank", "alice@bank", "https://bank.example"),
		record(f.alice.UserID, "b", "Mail", "alice", "https://mail.example"),
		record(f.alice.UserID, "c", "100% Discount", "promo_user", ""),
		record(f.alice.UserID, "d", "Forum", "x", "https://forum.example/?q=bankers"),
	} {
		_, err := f.vault.SaveVaultItem(ctx, r)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"empty lists all newest first", "", []string{"Forum", "100% Discount", "Mail", "Bank"}},
		{"case insensitive title", "bAnK", []string{"Forum", "Bank"}},
		{"matches username", "alice", []string{"Mail", "Bank"}},
		{"matches url", "mail.example", []string{"Mail"}},
		{"percent is literal", "%", []string{"100% Discount"}},
		{"underscore is literal", "o_u", []string{"100% Discount"}},
		{"no match", "nothing-here", []string{}},
		{"payload never searched", "blob-a", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.vault.SearchVaultItems(ctx, models.VaultSearchRequest{OwnerID: f.alice.UserID, Search: tt.search})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestVaultRepository_UpdateAndDelete(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()

	saved, err := f.vault.SaveVaultItem(ctx, record(f.alice.UserID, "a1", "Bank", "alice", ""))
	require.NoError(t, err)

	upd := record(f.alice.UserID, "a1", "Bank (old)", "alice2", "https://b")
	upd.EncryptedPayload = "blob-new"
	got, err := f.vault.UpdateVaultItem(ctx, upd)
	require.NoError(t, err)
	assert.Equal(t, "Bank (old)", got.Title)
	assert.Equal(t, "blob-new", got.EncryptedPayload)
	assert.True(t, saved.CreatedAt.Equal(*got.CreatedAt))
	assert.False(t, got.UpdatedAt.Before(*got.CreatedAt))

	_, err = f.vault.UpdateVaultItem(ctx, record(f.alice.UserID, "missing", "x", "", ""))
	assert.ErrorIs(t, err, ErrVaultItemNotFound)

	require.NoError(t, f.vault.DeleteVaultItem(ctx, f.alice.UserID, "a1"))
	assert.ErrorIs(t, f.vault.DeleteVaultItem(ctx, f.alice.UserID, "a1"), ErrVaultItemNotFound)
	_, err = f.vault.GetVaultItem(ctx, f.alice.UserID, "a1")
	assert.ErrorIs(t, err, ErrVaultItemNotFound)
}

func newKeys() models.User {
	return models.User{
		AuthHash:       "new-stored-hash",
		EncryptionSalt: "bmV3c2FsdG5ld3NhbHQxMg==",
		KDF:            models.KDFParams{Algorithm: models.KDFPBKDF2SHA256, Time: 600_000},
	}
}

func TestVaultRepository_Rekey(t *testing.T) {
	f := newVaultFixture(t)
	ctx := context.Background()

	for _, id := range []string{"a1", "a2"} {
		_, err := f.vault.SaveVaultItem(ctx, record(f.alice.UserID, id, "T-"+id, "", ""))
		require.NoError(t, err)
	}
	_, err := f.vault.SaveVaultItem(ctx, record(f.bob.UserID, "b1", "Bob", "", ""))
	require.NoError(t, err)

	items := []models.VaultRecord{
		{ItemID: "a1", Title: "T-a1", EncryptedPayload: "rekeyed-a1"},
		{ItemID: "a2", Title: "T-a2", EncryptedPayload: "rekeyed-a2"},
	}
	require.NoError(t, f.vault.Rekey(ctx, f.alice.UserID, newKeys(), items))

	for _, id := range []string{"a1", "a2"} {
		got, err := f.vault.GetVaultItem(ctx, f.alice.UserID, id)
		require.NoError(t, err)
		assert.Equal(t, "rekeyed-"+id, got.EncryptedPayload)
	}

	user, err := f.users.FindUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, newKeys().AuthHash, user.AuthHash)
	assert.Equal(t, newKeys().EncryptionSalt, user.EncryptionSalt)
	assert.Equal(t, newKeys().KDF, user.KDF)

	bobItem, err := f.vault.GetVaultItem(ctx, f.bob.UserID, "b1")
	require.NoError(t, err)
	assert.Equal(t, "blob-b1", bobItem.EncryptedPayload)
}

func TestVaultRepository_RekeyIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name  string
		items []models.VaultRecord
	}{
		{
			name:  "missing item",
			items: []models.VaultRecord{{ItemID: "a1", EncryptedPayload: "x"}},
		},
		{
			name: "unknown item",
			items: []models.VaultRecord{
				{ItemID: "a1", EncryptedPayload: "x"},
				{ItemID: "zz", EncryptedPayload: "x"},
			},
		},
		{
			name: "duplicate item",
			items: []models.VaultRecord{
				{ItemID: "a1", EncryptedPayload: "x"},
				{ItemID: "a1", EncryptedPayload: "y"},
			},
		},
		{
			name: "another owner's item",
			items: []models.VaultRecord{
				{ItemID: "a1", EncryptedPayload: "x"},
				{ItemID: "b1", EncryptedPayload: "x"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newVaultFixture(t)
			ctx := context.Background()

			for _, id := range []string{"a1", "a2"} {
				_, err := f.vault.SaveVaultItem(ctx, record(f.alice.UserID, id, id, "", ""))
				require.NoError(t, err)
			}
			_, err := f.vault.SaveVaultItem(ctx, record(f.bob.UserID, "b1", "Bob", "", ""))
			require.NoError(t, err)

			err = f.vault.Rekey(ctx, f.alice.UserID, newKeys(), tt.items)
			assert.ErrorIs(t, err, ErrRekeyIncomplete)

			got, err := f.vault.GetVaultItem(ctx, f.alice.UserID, "a1")
			require.NoError(t, err)
			assert.Equal(t, "blob-a1", got.EncryptedPayload)

			user, err := f.users.FindUserByLogin(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, testUser("alice").EncryptionSalt, user.EncryptionSalt)
		})
	}
}

func expectOwnerLock(mock sqlmock.Sqlmock, ownerID int64) {
	mock.ExpectQuery(`SELECT user_id FROM users WHERE user_id = \$1 FOR UPDATE`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(ownerID))
}

func TestVaultRepository_RekeyRetriesDeadlock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVaultRepository(db, logger.Nop())

	items := []models.VaultRecord{{ItemID: "a1", EncryptedPayload: "x"}}

	// first attempt loses a deadlock on the owner row
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT user_id FROM users WHERE user_id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectRollback()

	mock.ExpectBegin()
	expectOwnerLock(mock, 1)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM vault_items WHERE owner_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`UPDATE vault_items SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET auth_hash = \$1, encryption_salt = \$2, kdf = \$3 WHERE user_id = \$4`).
		WithArgs("new-stored-hash", newKeys().EncryptionSalt, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Rekey(context.Background(), 1, newKeys(), items))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_RekeyLocksOwnerBeforeCounting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVaultRepository(db, logger.Nop())

	// an item saved while the lock was awaited shows up in the count
	mock.ExpectBegin()
	expectOwnerLock(mock, 1)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM vault_items WHERE owner_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	items := []models.VaultRecord{{ItemID: "a1", EncryptedPayload: "x"}}
	err := repo.Rekey(context.Background(), 1, newKeys(), items)
	assert.ErrorIs(t, err, ErrRekeyIncomplete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_RekeyRollsBackOnUpdateError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVaultRepository(db, logger.Nop())

	items := []models.VaultRecord{
		{ItemID: "a1", EncryptedPayload: "x"},
		{ItemID: "a2", EncryptedPayload: "y"},
	}

	mock.ExpectBegin()
	expectOwnerLock(mock, 1)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM vault_items`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`UPDATE vault_items SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE vault_items SET`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Rekey(context.Background(), 1, newKeys(), items)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultRepository_RekeyUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVaultRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT user_id FROM users WHERE user_id = \$1 FOR UPDATE`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectRollback()

	err := repo.Rekey(context.Background(), 42, newKeys(), nil)
	assert.ErrorIs(t, err, ErrNoUserWasFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
