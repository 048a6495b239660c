// Copyright (c) 2026 Cat Café. All rights reserved.

package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catcafe/catcafe/pkg/phone"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"digits_only", "5550100123", "5550100123", nil},
		{"international_prefix", "+1 555-0100", "15550100", nil},
		{"leading_zeros_stripped", "0049 30 1234567", "49301234567", nil},
		{"parentheses_and_spaces", "(555) 010 0123", "5550100123", nil},
		{"surrounding_whitespace", "  5550100123  ", "5550100123", nil},
		{"too_short", "12345", "", phone.ErrTooShort},
		{"only_zeros", "0000000000", "", phone.ErrTooShort},
		{"letters_rejected", "555-CALL-NOW", "", phone.ErrBadCharacter},
		{"empty", "", "", phone.ErrTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := phone.Normalize(tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Two spellings of the same number must collapse onto one canonical form,
// since that form is the adopter uniqueness key.
func TestNormalize_CanonicalEquality(t *testing.T) {
	first, err := phone.Normalize("+1 555-0100")
	require.NoError(t, err)

	second, err := phone.Normalize("001 (555) 0100")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
