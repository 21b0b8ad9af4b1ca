// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// VaultFields is the full secret structure of one vault item. It only ever
// exists in client memory and, serialized, inside [VaultRecord.EncryptedPayload].
type VaultFields struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

// VaultRecord is the stored shape of one vault item.
//
// Title, Username and URL are a denormalized plaintext search index; the
// authoritative copy of every field lives in EncryptedPayload. The struct
// intentionally has no password or notes attribute.
type VaultRecord struct {
	// ItemID is an opaque identifier assigned on creation (UUIDv7). Immutable.
	ItemID string `json:"item_id"`

	// OwnerID references the owning account. Set from the authenticated
	// session on the server and never taken from the request body.
	OwnerID int64 `json:"-"`

	Title    string `json:"title"`
	Username string `json:"username"`
	URL      string `json:"url"`

	// EncryptedPayload is the sealed [VaultFields] blob. The server treats it
	// as opaque text and never filters on it.
	EncryptedPayload string `json:"encrypted_payload"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the VaultRecord model.
func (v VaultRecord) TableName() string {
	return "vault_items"
}

// VaultSearchRequest selects a user's records, optionally narrowed by a
// case-insensitive substring over the plaintext search fields.
type VaultSearchRequest struct {
	OwnerID int64
	Search  string
}
