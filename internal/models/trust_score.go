package models

import "time"

// TrustScore is a per-manufacturer aggregate recomputed after verifications
type TrustScore struct {
	ID               string    `db:"id" json:"id"`
	ManufacturerName string    `db:"manufacturer_name" json:"manufacturer_name"`
	Score            int       `db:"score" json:"score"`
	TotalBatches     int       `db:"total_batches" json:"total_batches"`
	VerifiedCount    int       `db:"verified_count" json:"verified_count"`
	SuspiciousCount  int       `db:"suspicious_count" json:"suspicious_count"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
