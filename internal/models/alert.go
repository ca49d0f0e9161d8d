package models

import (
	"database/sql"
	"time"
)

// Alert types emitted when a verification crosses the alert threshold or a
// consumer files a report
const (
	AlertTypeCriticalRisk   = "critical_risk"
	AlertTypeSuspiciousScan = "suspicious_scan"
	AlertTypeConsumerReport = "consumer_report"
)

// Alert represents a risk alert raised during verification. Rows are
// immutable except for the resolved flag, which only ever flips false→true.
type Alert struct {
	ID        string          `db:"id" json:"id"`
	BatchID   string          `db:"batch_id" json:"batch_id"`
	AlertType string          `db:"alert_type" json:"alert_type"`
	Severity  RiskLevel       `db:"severity" json:"severity"`
	RiskScore int             `db:"risk_score" json:"risk_score"`
	Message   string          `db:"message" json:"message"`
	Latitude  sql.NullFloat64 `db:"latitude" json:"latitude,omitempty"`
	Longitude sql.NullFloat64 `db:"longitude" json:"longitude,omitempty"`
	Resolved  bool            `db:"resolved" json:"resolved"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
