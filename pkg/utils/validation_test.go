package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
)

func TestValidateBatchID(t *testing.T) {
	tests := []struct {
		name    string
		batchID string
		wantErr bool
	}{
		{"valid plain", "MED2026001", false},
		{"valid with separators", "MED-2026_001.A", false},
		{"empty", "", true},
		{"whitespace", "MED 2026", true},
		{"leading separator", "-MED2026", true},
		{"too long", strings.Repeat("A", 129), true},
		{"injection attempt", "MED';DROP TABLE--", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatchID(tt.batchID)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, serviceerror.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateCoordinates(51.5, -0.12))
	assert.NoError(t, ValidateCoordinates(-90, 180))
	assert.Error(t, ValidateCoordinates(91, 0))
	assert.Error(t, ValidateCoordinates(0, -181))
}

func TestValidateLimitAndOffset(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 100, ValidateLimit(500))
	assert.Equal(t, 35, ValidateLimit(35))
	assert.Equal(t, 0, ValidateOffset(-3))
	assert.Equal(t, 40, ValidateOffset(40))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello\x00 "))
}
