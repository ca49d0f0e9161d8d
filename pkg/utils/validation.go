package utils

import (
	"regexp"
	"strings"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
)

// batch identifiers: printable, no whitespace, bounded length
var batchIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-_.]*$`)

// ValidateBatchID validates a batch identifier before any I/O happens
func ValidateBatchID(batchID string) error {
	if batchID == "" {
		return serviceerror.NewValidationError("batch_id", "batch ID cannot be empty")
	}
	if len(batchID) > 128 {
		return serviceerror.NewValidationError("batch_id", "batch ID too long (max 128 characters)")
	}
	if !batchIDPattern.MatchString(batchID) {
		return serviceerror.NewValidationError("batch_id", "batch ID contains invalid characters")
	}
	return nil
}

// ValidateCoordinates validates an optional latitude/longitude pair
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return serviceerror.NewValidationError("latitude", "latitude must be within [-90,90]")
	}
	if lng < -180 || lng > 180 {
		return serviceerror.NewValidationError("longitude", "longitude must be within [-180,180]")
	}
	return nil
}

// ValidateRequired validates that a field is not empty
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return serviceerror.NewValidationError(fieldName, fieldName+" is required")
	}
	return nil
}

// SanitizeString removes dangerous characters from user input
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	return strings.TrimSpace(input)
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // Default limit
	}
	if limit > 100 {
		return 100 // Max limit
	}
	return limit
}

// ValidateOffset validates pagination offset
func ValidateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
