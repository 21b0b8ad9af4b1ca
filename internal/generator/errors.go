// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package generator

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/pass-guard/internal/crypto"
)

var (
	// ErrInvalidLength is returned for a non-positive length or word count.
	// It matches [crypto.ErrInvalidInput] as well.
	ErrInvalidLength = fmt.Errorf("%w: length must be positive", crypto.ErrInvalidInput)

	// ErrEmptyCharset is returned when the policy leaves no characters to
	// draw from.
	ErrEmptyCharset = errors.New("effective character set is empty")
)
