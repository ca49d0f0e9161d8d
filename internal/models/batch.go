package models

import (
	"database/sql"
	"time"
)

// BatchStatus lists allowed batch lifecycle statuses
type BatchStatus string

const (
	// BatchStatusActive indicates the batch is in circulation
	BatchStatusActive BatchStatus = "active"
	// BatchStatusSold indicates the batch has been sold to an end buyer
	BatchStatusSold BatchStatus = "sold"
	// BatchStatusRecalled indicates the batch was recalled; terminal and monotonic
	BatchStatusRecalled BatchStatus = "recalled"
	// BatchStatusExpired is derived at read time from the expiry date, never stored
	BatchStatusExpired BatchStatus = "expired"
)

// Batch represents a registered medicine batch in the relational store
type Batch struct {
	ID                string         `db:"id" json:"id"`
	BatchID           string         `db:"batch_id" json:"batch_id"`
	ManufacturerName  string         `db:"manufacturer_name" json:"manufacturer_name"`
	MedicineName      sql.NullString `db:"medicine_name" json:"medicine_name,omitempty"`
	Dosage            sql.NullString `db:"dosage" json:"dosage,omitempty"`
	CountryOfOrigin   sql.NullString `db:"country_of_origin" json:"country_of_origin,omitempty"`
	ManufacturingDate sql.NullTime   `db:"manufacturing_date" json:"manufacturing_date,omitempty"`
	ExpiryDate        sql.NullTime   `db:"expiry_date" json:"expiry_date,omitempty"`
	StorageConditions sql.NullString `db:"storage_conditions" json:"storage_conditions,omitempty"`
	BatchHash         string         `db:"batch_hash" json:"batch_hash"`
	BlockchainTxHash  sql.NullString `db:"blockchain_tx_hash" json:"blockchain_tx_hash,omitempty"`
	RegisteredBy      sql.NullString `db:"registered_by" json:"registered_by,omitempty"`
	Status            BatchStatus    `db:"status" json:"status"`
	RecalledAt        sql.NullTime   `db:"recalled_at" json:"recalled_at,omitempty"`
	RecalledBy        sql.NullString `db:"recalled_by" json:"recalled_by,omitempty"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
}

// EffectiveStatus derives the batch status as of now. The stored status is
// authoritative only for active/sold/recalled; a past expiry date makes the
// batch expired at read time, except when already recalled. Recalled is
// terminal and takes precedence over everything else.
func (b *Batch) EffectiveStatus(now time.Time) BatchStatus {
	if b.Status == BatchStatusRecalled {
		return BatchStatusRecalled
	}
	if b.ExpiryDate.Valid && b.ExpiryDate.Time.Before(now) {
		return BatchStatusExpired
	}
	return b.Status
}

// IsRecalled reports whether the batch has been recalled
func (b *Batch) IsRecalled() bool {
	return b.Status == BatchStatusRecalled
}
