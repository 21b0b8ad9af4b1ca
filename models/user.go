// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// The server never receives the master passphrase: it stores a hash of the
// client-computed AuthHash and the non-secret key-derivation inputs.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// AuthHash is the login proof derived on the client from the vault key.
	// The server stores only its keyed hash.
	AuthHash string `json:"auth_hash,omitempty"`

	// EncryptionSalt is the per-user random salt (base64) mixed into key
	// derivation. Not secret, but unique per account.
	EncryptionSalt string `json:"encryption_salt,omitempty"`

	// KDF holds the derivation parameters chosen at registration.
	KDF KDFParams `json:"kdf"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// KeyParams returns a copy of u stripped down to the public key-derivation
// inputs served before login.
func (u User) KeyParams() User {
	return User{
		Login:          u.Login,
		EncryptionSalt: u.EncryptionSalt,
		KDF:            u.KDF,
	}
}
