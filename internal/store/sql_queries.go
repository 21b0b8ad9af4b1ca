package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/pass-guard/models"
)

const (
	usersTable   = "users"
	vaultTable   = "vault_items"
	sessionTable = "session"
)

var userColumns = []string{"user_id", "login", "auth_hash", "encryption_salt", "kdf", "created_at"}

var vaultColumns = []string{
	"item_id", "owner_id", "title", "username", "url",
	"encrypted_payload", "created_at", "updated_at",
}

// searchableColumns are the only columns a search may filter on. The
// encrypted payload is never among them.
var searchableColumns = []string{"title", "username", "url"}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("login", "auth_hash", "encryption_salt", "kdf", "created_at").
		Values(user.Login, user.AuthHash, user.EncryptionSalt, user.KDF, user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
}

func buildFindUserByLoginQuery(b sq.StatementBuilderType, login string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"login": login}).
		ToSql()
}

func buildUpdateUserKeysQuery(b sq.StatementBuilderType, ownerID int64, keys models.User) (string, []any, error) {
	return b.Update(usersTable).
		Set("auth_hash", keys.AuthHash).
		Set("encryption_salt", keys.EncryptionSalt).
		Set("kdf", keys.KDF).
		Where(sq.Eq{"user_id": ownerID}).
		ToSql()
}

func buildInsertVaultItemQuery(b sq.StatementBuilderType, r models.VaultRecord) (string, []any, error) {
	return b.Insert(vaultTable).
		Columns(vaultColumns...).
		Values(r.ItemID, r.OwnerID, r.Title, r.Username, r.URL, r.EncryptedPayload, r.CreatedAt, r.UpdatedAt).
		ToSql()
}

func buildGetVaultItemQuery(b sq.StatementBuilderType, ownerID int64, itemID string) (string, []any, error) {
	return b.Select(vaultColumns...).
		From(vaultTable).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"item_id": itemID}).
		ToSql()
}

// buildSearchVaultQuery lists an owner's items newest first. A non-empty
// search is matched case-insensitively as a literal substring of any
// searchable column.
func buildSearchVaultQuery(b sq.StatementBuilderType, req models.VaultSearchRequest) (string, []any, error) {
	q := b.Select(vaultColumns...).
		From(vaultTable).
		Where(sq.Eq{"owner_id": req.OwnerID})

	if req.Search != "" {
		pattern := "%" + escapeLike(req.Search) + "%"
		or := make(sq.Or, 0, len(searchableColumns))
		for _, col := range searchableColumns {
			or = append(or, sq.Expr("LOWER("+col+") LIKE LOWER(?) ESCAPE '\\'", pattern))
		}
		q = q.Where(or)
	}

	return q.OrderBy("created_at DESC", "item_id DESC").ToSql()
}

func buildUpdateVaultItemQuery(b sq.StatementBuilderType, r models.VaultRecord) (string, []any, error) {
	return b.Update(vaultTable).
		Set("title", r.Title).
		Set("username", r.Username).
		Set("url", r.URL).
		Set("encrypted_payload", r.EncryptedPayload).
		Set("updated_at", r.UpdatedAt).
		Where(sq.Eq{"owner_id": r.OwnerID}).
		Where(sq.Eq{"item_id": r.ItemID}).
		ToSql()
}

func buildDeleteVaultItemQuery(b sq.StatementBuilderType, ownerID int64, itemID string) (string, []any, error) {
	return b.Delete(vaultTable).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Eq{"item_id": itemID}).
		ToSql()
}

// buildLockUserQuery locks the owner row until the transaction ends. An
// insert into vault_items checks its foreign key against this row, so it
// waits for the lock.
func buildLockUserQuery(b sq.StatementBuilderType, ownerID int64) (string, []any, error) {
	return b.Select("user_id").
		From(usersTable).
		Where(sq.Eq{"user_id": ownerID}).
		Suffix("FOR UPDATE").
		ToSql()
}

func buildCountVaultItemsQuery(b sq.StatementBuilderType, ownerID int64) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(vaultTable).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
}
