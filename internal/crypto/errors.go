// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// Error kinds surfaced by this package. Cryptographic failures are
// deliberately coarse: callers learn that an operation failed, never which
// step failed.
var (
	// ErrInvalidInput is returned for an empty passphrase or salt and for
	// key-derivation parameters outside the accepted range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEncryptionFailed is returned when a value cannot be sealed.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed is returned when a blob cannot be opened with the
	// given key, whatever the reason.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrUnsupportedKDF is returned for an unknown key-derivation algorithm.
	ErrUnsupportedKDF = errors.New("unsupported key derivation algorithm")
)
