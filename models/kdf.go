// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Supported key-derivation algorithms.
const (
	KDFArgon2id     = "argon2id"
	KDFPBKDF2SHA256 = "pbkdf2-sha256"
)

// KDFParams describes how a user's master passphrase is stretched into the
// vault key. The parameters are chosen by the client at registration and
// stored next to the account so that later derivations stay byte-identical
// even when the client defaults change.
type KDFParams struct {
	// Algorithm is one of [KDFArgon2id] or [KDFPBKDF2SHA256].
	Algorithm string `json:"algorithm"`

	// Time is the Argon2id pass count, or the PBKDF2 iteration count.
	Time uint32 `json:"time"`

	// MemoryKiB is the Argon2id memory cost in KiB. Unused by PBKDF2.
	MemoryKiB uint32 `json:"memory_kib,omitempty"`

	// Threads is the Argon2id parallelism. Unused by PBKDF2.
	Threads uint8 `json:"threads,omitempty"`
}

// Value implements [driver.Valuer]; the params are stored as a JSON document.
func (p KDFParams) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal kdf params: %w", err)
	}
	return string(b), nil
}

// Scan implements [sql.Scanner] for JSON text/blob columns.
func (p *KDFParams) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case nil:
		*p = KDFParams{}
		return nil
	default:
		return errors.New("unsupported kdf params column type")
	}

	if err := json.Unmarshal(raw, p); err != nil {
		return fmt.Errorf("unmarshal kdf params: %w", err)
	}
	return nil
}
