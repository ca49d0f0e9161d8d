package models

import (
	"database/sql"
	"time"
)

// BatchMetadata is the decentralized metadata document stored on the
// content-addressed network and fetched through the gateway mirrors.
type BatchMetadata struct {
	MedicineName      string `json:"medicineName"`
	Manufacturer      string `json:"manufacturer"`
	ExpiryDate        string `json:"expiryDate"`
	ManufacturingDate string `json:"manufacturingDate"`
	Dosage            string `json:"dosage"`
	CountryOrigin     string `json:"countryOrigin"`
	BatchID           string `json:"batchId"`
}

// metadata documents carry dates as strings; accept both date-only and RFC3339
func parseMetadataDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ApplyTo overlays the metadata document onto a relational batch record.
// The override is field-level: every field present in the document wins over
// the record's corresponding field, absent fields fall back to the record.
func (m *BatchMetadata) ApplyTo(b *Batch) {
	if m == nil || b == nil {
		return
	}
	if m.MedicineName != "" {
		b.MedicineName = sql.NullString{String: m.MedicineName, Valid: true}
	}
	if m.Manufacturer != "" {
		b.ManufacturerName = m.Manufacturer
	}
	if m.Dosage != "" {
		b.Dosage = sql.NullString{String: m.Dosage, Valid: true}
	}
	if m.CountryOrigin != "" {
		b.CountryOfOrigin = sql.NullString{String: m.CountryOrigin, Valid: true}
	}
	if t, ok := parseMetadataDate(m.ExpiryDate); ok {
		b.ExpiryDate = sql.NullTime{Time: t, Valid: true}
	}
	if t, ok := parseMetadataDate(m.ManufacturingDate); ok {
		b.ManufacturingDate = sql.NullTime{Time: t, Valid: true}
	}
}

// OwnershipRecord is the registry-side view of a batch: the source of truth
// for whether the batch exists and who owns it now.
type OwnershipRecord struct {
	BatchID      string    `json:"batch_id"`
	Exists       bool      `json:"exists"`
	Owner        string    `json:"owner"`
	MetadataHash string    `json:"metadata_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
