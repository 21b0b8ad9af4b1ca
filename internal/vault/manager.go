// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault enforces the split between a vault item's plaintext search
// fields and its sealed payload, and mediates every seal and open call.
//
// Only Title, Username and URL leave the client in plaintext. Password and
// Notes exist solely inside the payload sealed under the owner's key.
//
// Changing the master passphrase without calling [Manager.Rekey] on every
// record makes all existing records permanently unreadable: the payloads stay
// sealed under the key derived from the old passphrase.
package vault

import (
	"fmt"

	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/models"
)

// IDGenerator assigns item ids on creation.
type IDGenerator interface {
	Generate() string
}

// Manager seals and opens [models.VaultRecord] values for one user. It holds
// the user's salt and derivation parameters but never a passphrase or key.
type Manager struct {
	deriver crypto.KeyDeriver
	engine  crypto.Engine
	salt    []byte
	ids     IDGenerator
}

// NewManager builds a Manager for a user whose key is derived with deriver
// and salt. An empty salt is rejected.
func NewManager(deriver crypto.KeyDeriver, engine crypto.Engine, salt []byte, ids IDGenerator) (*Manager, error) {
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", crypto.ErrInvalidInput)
	}

	return &Manager{
		deriver: deriver,
		engine:  engine,
		salt:    append([]byte(nil), salt...),
		ids:     ids,
	}, nil
}

// Unlock derives the user's key once so a listing can open many records
// without repeating the slow derivation. Callers must Destroy the key when
// done.
func (m *Manager) Unlock(passphrase string) (crypto.DerivedKey, error) {
	return m.deriver.Derive(passphrase, m.salt)
}

// CreateRecord assigns a new item id, seals fields and copies the search
// fields into the plaintext columns.
func (m *Manager) CreateRecord(ownerID int64, fields models.VaultFields, passphrase string) (models.VaultRecord, error) {
	key, err := m.Unlock(passphrase)
	if err != nil {
		return models.VaultRecord{}, err
	}
	defer key.Destroy()

	return m.CreateRecordWithKey(ownerID, fields, key)
}

// CreateRecordWithKey is CreateRecord for an already unlocked key.
func (m *Manager) CreateRecordWithKey(ownerID int64, fields models.VaultFields, key crypto.DerivedKey) (models.VaultRecord, error) {
	record := models.VaultRecord{
		ItemID:  m.ids.Generate(),
		OwnerID: ownerID,
	}
	return m.seal(record, fields, key)
}

// OpenRecord decrypts the record's payload. On any failure the returned
// fields are zero and the error matches both [ErrCannotReadItem] and
// [crypto.ErrDecryptionFailed].
func (m *Manager) OpenRecord(record models.VaultRecord, passphrase string) (models.VaultFields, error) {
	key, err := m.Unlock(passphrase)
	if err != nil {
		return models.VaultFields{}, err
	}
	defer key.Destroy()

	return m.OpenRecordWithKey(record, key)
}

// OpenRecordWithKey is OpenRecord for an already unlocked key.
func (m *Manager) OpenRecordWithKey(record models.VaultRecord, key crypto.DerivedKey) (models.VaultFields, error) {
	if record.ItemID == "" {
		return models.VaultFields{}, ErrNoItemID
	}
	if key.IsZero() {
		return models.VaultFields{}, ErrLocked
	}

	var fields models.VaultFields
	if err := m.engine.Open(record.EncryptedPayload, key, []byte(record.ItemID), &fields); err != nil {
		return models.VaultFields{}, readFailure
	}

	return fields, nil
}

// UpdateRecord re-seals the entire field set of existing and refreshes its
// search fields. Item and owner ids are preserved.
func (m *Manager) UpdateRecord(existing models.VaultRecord, newFields models.VaultFields, passphrase string) (models.VaultRecord, error) {
	key, err := m.Unlock(passphrase)
	if err != nil {
		return models.VaultRecord{}, err
	}
	defer key.Destroy()

	return m.UpdateRecordWithKey(existing, newFields, key)
}

// UpdateRecordWithKey is UpdateRecord for an already unlocked key.
func (m *Manager) UpdateRecordWithKey(existing models.VaultRecord, newFields models.VaultFields, key crypto.DerivedKey) (models.VaultRecord, error) {
	if existing.ItemID == "" {
		return models.VaultRecord{}, ErrNoItemID
	}

	record := models.VaultRecord{
		ItemID:    existing.ItemID,
		OwnerID:   existing.OwnerID,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: existing.UpdatedAt,
	}
	return m.seal(record, newFields, key)
}

// Rekey opens every record with oldKey and re-seals it with newKey. It is all
// or nothing: if any record fails, no records are returned and the caller
// keeps the originals.
func Rekey(engine crypto.Engine, records []models.VaultRecord, oldKey, newKey crypto.DerivedKey) ([]models.VaultRecord, error) {
	if oldKey.IsZero() || newKey.IsZero() {
		return nil, ErrLocked
	}

	out := make([]models.VaultRecord, 0, len(records))
	for _, r := range records {
		var fields models.VaultFields
		if err := engine.Open(r.EncryptedPayload, oldKey, []byte(r.ItemID), &fields); err != nil {
			return nil, fmt.Errorf("rekey item %s: %w", r.ItemID, readFailure)
		}

		payload, err := engine.Seal(fields, newKey, []byte(r.ItemID))
		if err != nil {
			return nil, fmt.Errorf("rekey item %s: %w", r.ItemID, err)
		}

		r.EncryptedPayload = payload
		out = append(out, r)
	}

	return out, nil
}

// Rekey is the package-level Rekey bound to the manager's engine.
func (m *Manager) Rekey(records []models.VaultRecord, oldKey, newKey crypto.DerivedKey) ([]models.VaultRecord, error) {
	return Rekey(m.engine, records, oldKey, newKey)
}

func (m *Manager) seal(record models.VaultRecord, fields models.VaultFields, key crypto.DerivedKey) (models.VaultRecord, error) {
	if key.IsZero() {
		return models.VaultRecord{}, ErrLocked
	}

	payload, err := m.engine.Seal(fields, key, []byte(record.ItemID))
	if err != nil {
		return models.VaultRecord{}, err
	}

	record.Title = fields.Title
	record.Username = fields.Username
	record.URL = fields.URL
	record.EncryptedPayload = payload

	return record, nil
}
