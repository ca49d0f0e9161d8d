package utils

import (
	"github.com/google/uuid"
)

// GenerateID generates a new UUID for row identifiers
func GenerateID() string {
	return uuid.New().String()
}

// GenerateScanID generates a unique scan log ID
func GenerateScanID() string {
	return "SCAN-" + uuid.New().String()
}

// GenerateAlertID generates a unique alert ID
func GenerateAlertID() string {
	return "ALERT-" + uuid.New().String()
}

// GenerateAuditID generates a unique audit log ID
func GenerateAuditID() string {
	return "AUDIT-" + uuid.New().String()
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
