// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package generator

// MaxScore is the highest value of Strength.Score.
const MaxScore = 4

// lengthThresholds each add one raw point. The last one makes a raw total of
// 8 possible so that MaxScore is reachable after halving.
var lengthThresholds = []int{8, 12, 16, 20}

// Strength is the result of [Score].
type Strength struct {
	Score     int    `json:"score"`
	Label     string `json:"label"`
	Indicator string `json:"indicator"`

	none bool
}

// StrengthNone is returned for an empty password. It scores 0 but is not a
// "Very Weak" result.
var StrengthNone = Strength{Score: 0, Label: "None", Indicator: "gray", none: true}

var strengthLevels = [MaxScore + 1]Strength{
	{Score: 0, Label: "Very Weak", Indicator: "red"},
	{Score: 1, Label: "Weak", Indicator: "orange"},
	{Score: 2, Label: "Fair", Indicator: "yellow"},
	{Score: 3, Label: "Strong", Indicator: "green"},
	{Score: 4, Label: "Very Strong", Indicator: "dark-green"},
}

// IsNone reports whether s is the result for an absent password.
func (s Strength) IsNone() bool {
	return s.none
}

// Score rates a password from 0 to [MaxScore]. One point each is given for a
// length of at least 8, 12, 16 and 20, and for the presence of lowercase,
// uppercase, digit and other characters; the sum is halved and capped.
//
// The raw sum runs 0..8 rather than 0..7. Without the 20 character point a
// password scores at most 3, so "Very Strong" needs length 20 and all four
// character classes.
func Score(password string) Strength {
	if password == "" {
		return StrengthNone
	}

	raw := 0
	n := len([]rune(password))
	for _, threshold := range lengthThresholds {
		if n >= threshold {
			raw++
		}
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	for _, present := range []bool{lower, upper, digit, symbol} {
		if present {
			raw++
		}
	}

	return strengthLevels[min(MaxScore, raw/2)]
}
