// Package serviceerror defines the error taxonomy shared by the verification
// core. The distinction that matters to callers: ErrNotFound means no source
// had a record, ErrSourceUnavailable means a source itself could not be
// reached. The orchestrator degrades on the latter and only surfaces it when
// every source is gone.
package serviceerror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no record exists in any source
	ErrNotFound = errors.New("record not found")

	// ErrSourceUnavailable indicates an upstream source failed or timed out.
	// Absence of the source is never absence of the record.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrConflict indicates the request contradicts current state, such as
	// registering a duplicate batch or transferring a recalled one
	ErrConflict = errors.New("conflict with current state")
)

// ValidationError indicates a malformed input, rejected before any I/O
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a validation error for a named field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// SourceUnavailable wraps an upstream failure so callers can test for it
// with errors.Is while keeping the cause in the chain.
func SourceUnavailable(source string, cause error) error {
	return fmt.Errorf("%s: %w: %w", source, ErrSourceUnavailable, cause)
}
