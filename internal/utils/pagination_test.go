package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationParams_AppliesDefaults(t *testing.T) {
	params := NewPaginationParams(0, -5)

	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, 0, params.Offset)
}

func TestNewPaginationParams_CapsLimit(t *testing.T) {
	params := NewPaginationParams(500, 40)

	assert.Equal(t, 100, params.Limit)
	assert.Equal(t, 40, params.Offset)
}

func TestCalculatePaginationMetadata(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		limit      int
		offset     int
		hasMore    bool
		totalPages int
	}{
		{"empty result set", 0, 20, 0, false, 0},
		{"single partial page", 5, 20, 0, false, 1},
		{"exact page boundary", 40, 20, 0, true, 2},
		{"last page", 40, 20, 20, false, 2},
		{"middle page", 45, 20, 20, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := CalculatePaginationMetadata(tt.total, tt.limit, tt.offset)

			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.hasMore, meta.HasMore)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
		})
	}
}
