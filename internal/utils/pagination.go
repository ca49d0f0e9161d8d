package utils

import (
	pkgutils "github.com/monish-instinct/satoshi-squad-yantra-2026/pkg/utils"
)

// PaginationParams holds pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

// PaginationMetadata holds pagination metadata for responses
type PaginationMetadata struct {
	Total      int  `json:"total"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	HasMore    bool `json:"hasMore"`
	TotalPages int  `json:"totalPages"`
}

// NewPaginationParams creates a new pagination params with defaults
func NewPaginationParams(limit, offset int) *PaginationParams {
	return &PaginationParams{
		Limit:  pkgutils.ValidateLimit(limit),
		Offset: pkgutils.ValidateOffset(offset),
	}
}

// CalculatePaginationMetadata calculates pagination metadata
func CalculatePaginationMetadata(total, limit, offset int) *PaginationMetadata {
	totalPages := (total + limit - 1) / limit
	if totalPages < 0 {
		totalPages = 0
	}

	hasMore := (offset + limit) < total

	return &PaginationMetadata{
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    hasMore,
		TotalPages: totalPages,
	}
}
