// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes HMAC-SHA256 of data under hashKey and returns it
// hex-encoded.
//
// The server stores HashString(authHash, PasswordHashKey) instead of the
// client's auth hash, so a leaked users table cannot be replayed at login.
//
// Example usage:
//
//	stored := utils.HashString(user.AuthHash, cfg.App.PasswordHashKey)
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

// EqualHash compares two hex digests in constant time.
func EqualHash(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
