// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RekeyRequest replaces a user's key material and every vault record in one
// step. Items must cover the user's whole vault, each re-sealed under the key
// derived from the new salt and KDF params.
type RekeyRequest struct {
	AuthHash       string        `json:"auth_hash"`
	EncryptionSalt string        `json:"encryption_salt"`
	KDF            KDFParams     `json:"kdf"`
	Items          []VaultRecord `json:"items"`
}
