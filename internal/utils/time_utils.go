package utils

import (
	"time"
)

// FormatTime formats time in ISO 8601 format
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTime parses ISO 8601 formatted time string
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}

// ParseDate parses a date-only string, falling back to full RFC3339.
// Registration payloads carry manufacturing and expiry dates in either form.
func ParseDate(dateStr string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, dateStr)
}
