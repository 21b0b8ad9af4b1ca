// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"errors"

	"github.com/MKhiriev/pass-guard/internal/crypto"
)

var (
	// ErrCannotReadItem is the user-facing failure of opening a record. It
	// never says whether the passphrase was wrong or the item is corrupted.
	ErrCannotReadItem = errors.New("cannot read this item")

	// ErrNoItemID is returned when a record to update or open carries no id.
	ErrNoItemID = errors.New("vault record has no item id")

	// ErrLocked is returned by key-based operations given a destroyed key.
	ErrLocked = errors.New("vault is locked")
)

// readFailure joins the user-facing error with the generic crypto kind so
// callers can match either.
var readFailure = errors.Join(ErrCannotReadItem, crypto.ErrDecryptionFailed)
