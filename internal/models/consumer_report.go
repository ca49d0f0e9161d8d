package models

import (
	"database/sql"
	"time"
)

// Report types a consumer can file against a batch
const (
	ReportTypeSuspicious  = "suspicious"
	ReportTypeCounterfeit = "counterfeit"
	ReportTypeExpired     = "expired"
	ReportTypeSideEffects = "side_effects"
	ReportTypeOther       = "other"
)

// ConsumerReport represents an issue filed by a consumer against a batch.
// Each report raises a linked alert so regulators see it alongside the
// automated risk alerts.
type ConsumerReport struct {
	ID          string         `db:"id" json:"id"`
	BatchID     string         `db:"batch_id" json:"batch_id"`
	ReporterID  sql.NullString `db:"reporter_id" json:"reporter_id,omitempty"`
	ReportType  string         `db:"report_type" json:"report_type"`
	Description sql.NullString `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// IsValidReportType reports whether the given type is one of the accepted
// report categories
func IsValidReportType(reportType string) bool {
	switch reportType {
	case ReportTypeSuspicious, ReportTypeCounterfeit, ReportTypeExpired,
		ReportTypeSideEffects, ReportTypeOther:
		return true
	}
	return false
}
