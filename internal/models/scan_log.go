package models

import (
	"database/sql"
	"time"
)

// VerificationStatus lists the possible outcomes of a verification attempt
type VerificationStatus string

const (
	// VerificationAuthentic indicates the batch verified clean
	VerificationAuthentic VerificationStatus = "authentic"
	// VerificationSuspicious indicates at least one anomaly rule fired
	VerificationSuspicious VerificationStatus = "suspicious"
	// VerificationNotFound indicates no source had a record of the batch
	VerificationNotFound VerificationStatus = "not_found"
	// VerificationRecalled indicates the batch has been recalled
	VerificationRecalled VerificationStatus = "recalled"
)

// ScanLog represents one verification attempt. Rows are append-only: they are
// never mutated or deleted after insert, and ordering by scanned_at is the
// basis for every windowed risk query.
type ScanLog struct {
	ID                 string             `db:"id" json:"id"`
	BatchID            string             `db:"batch_id" json:"batch_id"`
	ScannerUserID      sql.NullString     `db:"scanner_user_id" json:"scanner_user_id,omitempty"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verification_status"`
	Latitude           sql.NullFloat64    `db:"latitude" json:"latitude,omitempty"`
	Longitude          sql.NullFloat64    `db:"longitude" json:"longitude,omitempty"`
	AnomalyFlags       StringSlice        `db:"anomaly_flags" json:"anomaly_flags"`
	ScannedAt          time.Time          `db:"scanned_at" json:"scanned_at"`
}

// HasCoordinates reports whether the scan carries a geo position
func (s *ScanLog) HasCoordinates() bool {
	return s.Latitude.Valid && s.Longitude.Valid
}

// Coordinates represents an optional geo position supplied with a scan
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
