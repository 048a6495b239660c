// Copyright (c) 2026 Cat Café. All rights reserved.

// Package phone normalizes phone numbers to the canonical digit-only form
// used as the adopter uniqueness key.
package phone

import (
	"errors"
	"strings"
	"unicode"
)

// MinDigits is the minimum number of significant digits a phone number must
// carry after normalization.
const MinDigits = 7

// ErrTooShort is returned when fewer than [MinDigits] significant digits remain.
var ErrTooShort = errors.New("phone: fewer than 7 significant digits")

// ErrBadCharacter is returned when the input contains anything other than
// digits, '+', '-', '(', ')' and spaces.
var ErrBadCharacter = errors.New("phone: may only contain digits, +, -, parentheses and spaces")

// Normalize reduces a human-entered phone number to its canonical form:
// digits only, with any leading run of zeros stripped.
//
// "+1 555-0100" normalizes to "15550100"; "0049 30 1234567" to "49301234567".
func Normalize(raw string) (string, error) {
	var digits strings.Builder

	for _, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsDigit(r):
			digits.WriteRune(r)
		case r == '+' || r == '-' || r == '(' || r == ')' || r == ' ':
			// separator, dropped
		default:
			return "", ErrBadCharacter
		}
	}

	normalized := strings.TrimLeft(digits.String(), "0")
	if len(normalized) < MinDigits {
		return "", ErrTooShort
	}

	return normalized, nil
}
