// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the client-side login state persisted between CLI invocations.
// It deliberately holds no master passphrase and no derived key.
type Session struct {
	Login          string    `json:"login"`
	Token          string    `json:"-"`
	EncryptionSalt string    `json:"encryption_salt"`
	KDF            KDFParams `json:"kdf"`
	// KeyCheck recognizes the account key without storing it.
	KeyCheck  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
