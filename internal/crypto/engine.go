// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
)

// blobVersion prefixes every sealed blob so the layout can evolve.
const blobVersion byte = 1

// gcmEngine is the AES-256-GCM implementation of [Engine].
//
// Blob layout before base64 (standard encoding):
//
//	version (1) ‖ nonce (12) ‖ ciphertext ‖ tag (16)
type gcmEngine struct {
	random io.Reader
}

// NewEngine returns the AES-256-GCM [Engine] backed by the OS CSPRNG.
func NewEngine() Engine {
	return &gcmEngine{random: rand.Reader}
}

// Seal implements [Engine].
func (e *gcmEngine) Seal(v any, key DerivedKey, aad []byte) (string, error) {
	if key.IsZero() {
		return "", ErrEncryptionFailed
	}

	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", ErrEncryptionFailed
	}
	defer SecureZero(plaintext)

	gcm, err := newGCM(key)
	if err != nil {
		return "", ErrEncryptionFailed
	}

	blob := make([]byte, 1+gcm.NonceSize(), 1+gcm.NonceSize()+len(plaintext)+gcm.Overhead())
	blob[0] = blobVersion
	nonce := blob[1:]
	if _, err := io.ReadFull(e.random, nonce); err != nil {
		return "", ErrEncryptionFailed
	}

	blob = gcm.Seal(blob, nonce, plaintext, aad)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [Engine].
func (e *gcmEngine) Open(blob string, key DerivedKey, aad []byte, target any) error {
	if key.IsZero() || blob == "" {
		return ErrDecryptionFailed
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return ErrDecryptionFailed
	}

	gcm, err := newGCM(key)
	if err != nil {
		return ErrDecryptionFailed
	}

	nonceSize := gcm.NonceSize()
	if len(raw) < 1+nonceSize+gcm.Overhead() || raw[0] != blobVersion {
		return ErrDecryptionFailed
	}
	nonce, ciphertext := raw[1:1+nonceSize], raw[1+nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return ErrDecryptionFailed
	}
	defer SecureZero(plaintext)

	// An authenticated but empty or non-object payload is still a failure to
	// read the item, not a parse error the caller should see.
	trimmed := bytes.TrimSpace(plaintext)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || !json.Valid(trimmed) {
		return ErrDecryptionFailed
	}

	if err := json.Unmarshal(trimmed, target); err != nil {
		return ErrDecryptionFailed
	}

	return nil
}

func newGCM(key DerivedKey) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
