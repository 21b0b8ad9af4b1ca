package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
)

// vaultRepository is the SQL implementation of [VaultRepository] over the
// "vault_items" table. It never inspects encrypted_payload.
type vaultRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewVaultRepository constructs a [VaultRepository] backed by db.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		db:     db,
		logger: logger,
	}
}

// SaveVaultItem implements [VaultRepository]. Timestamps are assigned here.
func (v *vaultRepository) SaveVaultItem(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	ts := now()
	record.CreatedAt = &ts
	record.UpdatedAt = &ts

	query, args, err := buildInsertVaultItemQuery(v.db.Builder(), record)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := v.db.ExecContext(ctx, query, args...); err != nil {
		if v.db.isUniqueViolation(err) {
			return models.VaultRecord{}, ErrVaultItemAlreadyExists
		}
		log.Err(err).
			Str("func", "vaultRepository.SaveVaultItem").
			Int64("owner_id", record.OwnerID).
			Str("item_id", record.ItemID).
			Msg("failed to insert vault item")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

// GetVaultItem implements [VaultRepository].
func (v *vaultRepository) GetVaultItem(ctx context.Context, ownerID int64, itemID string) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetVaultItemQuery(v.db.Builder(), ownerID, itemID)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanVaultRecord(v.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.VaultRecord{}, ErrVaultItemNotFound
	case err != nil:
		log.Err(err).
			Str("func", "vaultRepository.GetVaultItem").
			Int64("owner_id", ownerID).
			Str("item_id", itemID).
			Msg("failed to scan vault item")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// SearchVaultItems implements [VaultRepository]. Returns an empty slice when
// nothing matches.
func (v *vaultRepository) SearchVaultItems(ctx context.Context, req models.VaultSearchRequest) ([]models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSearchVaultQuery(v.db.Builder(), req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := v.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.SearchVaultItems").
			Int64("owner_id", req.OwnerID).
			Msg("failed to execute search query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.VaultRecord, 0, 16)
	for rows.Next() {
		record, err := scanVaultRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "vaultRepository.SearchVaultItems").
			Int64("owner_id", req.OwnerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return results, nil
}

// UpdateVaultItem implements [VaultRepository]. created_at is preserved and
// returned; updated_at is refreshed.
func (v *vaultRepository) UpdateVaultItem(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	log := logger.FromContext(ctx)

	ts := now()
	record.UpdatedAt = &ts

	query, args, err := buildUpdateVaultItemQuery(v.db.Builder(), record)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := v.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.UpdateVaultItem").
			Int64("owner_id", record.OwnerID).
			Str("item_id", record.ItemID).
			Msg("failed to update vault item")
		return models.VaultRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if err := expectOneRow(res, ErrVaultItemNotFound); err != nil {
		return models.VaultRecord{}, err
	}

	return v.GetVaultItem(ctx, record.OwnerID, record.ItemID)
}

// DeleteVaultItem implements [VaultRepository].
func (v *vaultRepository) DeleteVaultItem(ctx context.Context, ownerID int64, itemID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteVaultItemQuery(v.db.Builder(), ownerID, itemID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := v.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.DeleteVaultItem").
			Int64("owner_id", ownerID).
			Str("item_id", itemID).
			Msg("failed to delete vault item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectOneRow(res, ErrVaultItemNotFound)
}

// Rekey implements [VaultRepository].
func (v *vaultRepository) Rekey(ctx context.Context, ownerID int64, keys models.User, items []models.VaultRecord) error {
	log := logger.FromContext(ctx)

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ItemID]; dup || item.ItemID == "" {
			return fmt.Errorf("%w: duplicate or empty item id", ErrRekeyIncomplete)
		}
		seen[item.ItemID] = struct{}{}
	}

	err := v.db.inTx(ctx, func(tx *sql.Tx) error {
		return v.rekeyTx(ctx, tx, ownerID, keys, items)
	})
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.Rekey").
			Int64("owner_id", ownerID).
			Int("items", len(items)).
			Msg("rekey rolled back")
		return err
	}

	log.Info().
		Str("func", "vaultRepository.Rekey").
		Int64("owner_id", ownerID).
		Int("items", len(items)).
		Msg("vault rekeyed")
	return nil
}

func (v *vaultRepository) rekeyTx(ctx context.Context, tx *sql.Tx, ownerID int64, keys models.User, items []models.VaultRecord) error {
	if err := v.db.lockOwner(ctx, tx, ownerID); err != nil {
		return err
	}

	b := v.db.Builder()

	query, args, err := buildCountVaultItemsQuery(b, ownerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	var count int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if count != len(items) {
		return fmt.Errorf("%w: vault has %d items, got %d", ErrRekeyIncomplete, count, len(items))
	}

	ts := now()
	for _, item := range items {
		item.OwnerID = ownerID
		item.UpdatedAt = &ts

		query, args, err := buildUpdateVaultItemQuery(b, item)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if err := expectOneRow(res, ErrRekeyIncomplete); err != nil {
			return err
		}
	}

	query, args, err = buildUpdateUserKeysQuery(b, ownerID, keys)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return expectOneRow(res, ErrNoUserWasFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVaultRecord(row rowScanner) (models.VaultRecord, error) {
	var (
		r                    models.VaultRecord
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(&r.ItemID, &r.OwnerID, &r.Title, &r.Username, &r.URL, &r.EncryptedPayload, &createdAt, &updatedAt)
	if err != nil {
		return models.VaultRecord{}, err
	}
	if createdAt.Valid {
		t := createdAt.Time.UTC()
		r.CreatedAt = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		r.UpdatedAt = &t
	}
	return r, nil
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n != 1 {
		return notFound
	}
	return nil
}
