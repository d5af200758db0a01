package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"empty", "", "at least"},
		{"seven runes", "čćžšđab", "at least"},
		{"blank", strings.Repeat(" ", 10), "blank"},
		{"too long", strings.Repeat("a", MaxPasswordBytes+1), "at most"},
		{"minimum", "12345678", ""},
		{"upper bound", strings.Repeat("a", MaxPasswordBytes), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "farmer", NormalizeUsername("  Farmer "))
	assert.Equal(t, "", NormalizeUsername("   "))
}
