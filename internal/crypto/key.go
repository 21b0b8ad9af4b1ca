// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"
)

const (
	// KeySize is the derived key length in bytes (256 bits).
	KeySize = 32

	// SaltSize is the length of a freshly generated per-user salt.
	SaltSize = 16

	// AuthPurpose domain-separates the login proof from the vault key.
	AuthPurpose = "pass-guard/auth/v1"

	// KeyCheckPurpose domain-separates the client's local key check from the
	// login proof.
	KeyCheckPurpose = "pass-guard/key-check/v1"
)

// DerivedKey is the 256-bit symmetric vault key. It is never persisted and
// never sent over the wire; recompute it from the passphrase when needed.
type DerivedKey [KeySize]byte

// Equal compares two keys in constant time.
func (k DerivedKey) Equal(other DerivedKey) bool {
	return subtle.ConstantTimeCompare(k[:], other[:]) == 1
}

// IsZero reports whether the key is all zeroes, which is the state of a
// destroyed or never-derived key.
func (k DerivedKey) IsZero() bool {
	var zero DerivedKey
	return k.Equal(zero)
}

// Destroy overwrites the key material. The key is unusable afterwards.
func (k *DerivedKey) Destroy() {
	SecureZero(k[:])
}

// String hides the key material from fmt and loggers.
func (k DerivedKey) String() string {
	return "DerivedKey(redacted)"
}

// SecureZero overwrites b with zeroes.
func SecureZero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// GenerateSalt reads [SaltSize] random bytes from the OS CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// EncodeSalt renders a salt the way it is stored on the account.
func EncodeSalt(salt []byte) string {
	return base64.StdEncoding.EncodeToString(salt)
}

// DecodeSalt parses a stored salt. An empty or malformed value yields
// [ErrInvalidInput].
func DecodeSalt(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty salt", ErrInvalidInput)
	}
	salt, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("%w: malformed salt", ErrInvalidInput)
	}
	return salt, nil
}

// AuthHash computes hex(SHA-256(key ‖ purpose)). The result proves knowledge
// of the key to the server without revealing it: the hash is not invertible
// and purpose keeps it distinct from the key itself.
func AuthHash(key DerivedKey, purpose string) string {
	h := sha256.New()
	h.Write(key[:])
	h.Write([]byte(purpose))
	return hex.EncodeToString(h.Sum(nil))
}

// KeyCheck returns the value a client keeps to recognize key later.
func KeyCheck(key DerivedKey) string {
	return AuthHash(key, KeyCheckPurpose)
}

// MatchesKeyCheck reports in constant time whether key produced check.
func MatchesKeyCheck(key DerivedKey, check string) bool {
	if check == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(KeyCheck(key)), []byte(check)) == 1
}
