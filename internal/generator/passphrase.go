// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package generator

import (
	"fmt"
	"strings"

	"github.com/sethvargo/go-diceware/diceware"
)

// DefaultWords is the word count used by the CLI when none is given.
const DefaultWords = 6

// GeneratePassphrase returns words diceware words joined by separator.
func GeneratePassphrase(words int, separator string) (string, error) {
	if words < 1 {
		return "", ErrInvalidLength
	}

	list, err := diceware.Generate(words)
	if err != nil {
		return "", fmt.Errorf("generate diceware words: %w", err)
	}

	return strings.Join(list, separator), nil
}
