// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package generator produces random passwords and passphrases and estimates
// password strength.
package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// LookalikeChars are removed from the charset when
	// Policy.ExcludeLookalikes is set.
	LookalikeChars = "0O1lI"

	// DefaultLength is the password length of [DefaultPolicy].
	DefaultLength = 16
)

// Policy configures [Generate].
type Policy struct {
	Length            int
	IncludeLowercase  bool
	IncludeUppercase  bool
	IncludeNumbers    bool
	IncludeSymbols    bool
	ExcludeLookalikes bool
}

// DefaultPolicy enables every character class and drops lookalikes.
func DefaultPolicy() Policy {
	return Policy{
		Length:            DefaultLength,
		IncludeLowercase:  true,
		IncludeUppercase:  true,
		IncludeNumbers:    true,
		IncludeSymbols:    true,
		ExcludeLookalikes: true,
	}
}

// Charset returns the effective character set implied by the policy: the
// union of enabled classes, minus [LookalikeChars] when requested.
func (p Policy) Charset() string {
	var b strings.Builder
	if p.IncludeLowercase {
		b.WriteString(lowercaseChars)
	}
	if p.IncludeUppercase {
		b.WriteString(uppercaseChars)
	}
	if p.IncludeNumbers {
		b.WriteString(numberChars)
	}
	if p.IncludeSymbols {
		b.WriteString(symbolChars)
	}

	charset := b.String()
	if p.ExcludeLookalikes {
		charset = strings.Map(func(r rune) rune {
			if strings.ContainsRune(LookalikeChars, r) {
				return -1
			}
			return r
		}, charset)
	}
	return charset
}

// Generate draws policy.Length characters uniformly from the policy's
// charset using crypto/rand.
func Generate(policy Policy) (string, error) {
	if policy.Length <= 0 {
		return "", ErrInvalidLength
	}

	charset := policy.Charset()
	if charset == "" {
		return "", ErrEmptyCharset
	}

	limit := big.NewInt(int64(len(charset)))
	out := make([]byte, policy.Length)
	for i := range out {
		// rand.Int samples by rejection, so there is no modulo bias.
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("read random index: %w", err)
		}
		out[i] = charset[n.Int64()]
	}

	return string(out), nil
}
