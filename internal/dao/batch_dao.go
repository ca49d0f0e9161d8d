package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/database"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
)

// BatchDAO handles database operations for medicine batches
type BatchDAO struct {
	db *database.DB
}

// NewBatchDAO creates a new BatchDAO instance
func NewBatchDAO(db *database.DB) *BatchDAO {
	return &BatchDAO{db: db}
}

const batchColumns = `
		id, batch_id, manufacturer_name, medicine_name, dosage,
		country_of_origin, manufacturing_date, expiry_date, storage_conditions,
		batch_hash, blockchain_tx_hash, registered_by, status,
		recalled_at, recalled_by, created_at`

// Create inserts a new batch into the database
func (dao *BatchDAO) Create(ctx context.Context, batch *models.Batch) error {
	query := `
		INSERT INTO batches (
			id, batch_id, manufacturer_name, medicine_name, dosage,
			country_of_origin, manufacturing_date, expiry_date, storage_conditions,
			batch_hash, blockchain_tx_hash, registered_by, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		batch.ID,
		batch.BatchID,
		batch.ManufacturerName,
		batch.MedicineName,
		batch.Dosage,
		batch.CountryOfOrigin,
		batch.ManufacturingDate,
		batch.ExpiryDate,
		batch.StorageConditions,
		batch.BatchHash,
		batch.BlockchainTxHash,
		batch.RegisteredBy,
		batch.Status,
		batch.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}

	return nil
}

// GetByBatchID retrieves a batch by its public batch identifier
func (dao *BatchDAO) GetByBatchID(ctx context.Context, batchID string) (*models.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE batch_id = ?`

	var batch models.Batch
	err := dao.db.GetContext(ctx, &batch, query, batchID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serviceerror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}

	return &batch, nil
}

// ExistsByBatchID checks if a batch identifier is already registered
func (dao *BatchDAO) ExistsByBatchID(ctx context.Context, batchID string) (bool, error) {
	query := `SELECT COUNT(*) FROM batches WHERE batch_id = ?`

	var count int
	if err := dao.db.GetContext(ctx, &count, query, batchID); err != nil {
		return false, fmt.Errorf("failed to check batch existence: %w", err)
	}

	return count > 0, nil
}

// List retrieves batches ordered by creation time, newest first
func (dao *BatchDAO) List(ctx context.Context, limit, offset int) ([]models.Batch, error) {
	query := `SELECT ` + batchColumns + `
		FROM batches
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	var batches []models.Batch
	if err := dao.db.SelectContext(ctx, &batches, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}

	return batches, nil
}

// Count returns the total number of registered batches
func (dao *BatchDAO) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM batches`

	var count int
	if err := dao.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count batches: %w", err)
	}

	return count, nil
}

// ListByManufacturer retrieves all batches registered by one manufacturer
func (dao *BatchDAO) ListByManufacturer(ctx context.Context, manufacturerName string) ([]models.Batch, error) {
	query := `SELECT ` + batchColumns + `
		FROM batches
		WHERE manufacturer_name = ?
		ORDER BY created_at DESC`

	var batches []models.Batch
	if err := dao.db.SelectContext(ctx, &batches, query, manufacturerName); err != nil {
		return nil, fmt.Errorf("failed to list batches by manufacturer: %w", err)
	}

	return batches, nil
}

// UpdateStatus updates the stored batch status. Recalled rows are never
// moved out of recalled; the guard lives in the WHERE clause so concurrent
// writers cannot race past it.
func (dao *BatchDAO) UpdateStatus(ctx context.Context, batchID string, status models.BatchStatus) error {
	query := `UPDATE batches SET status = ? WHERE batch_id = ? AND status != 'recalled'`

	result, err := dao.db.ExecContext(ctx, query, status, batchID)
	if err != nil {
		return fmt.Errorf("failed to update batch status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return serviceerror.ErrNotFound
	}

	return nil
}

// Recall marks a batch as recalled, recording who recalled it and when.
// Idempotent on already-recalled rows.
func (dao *BatchDAO) Recall(ctx context.Context, batchID, recalledBy string, recalledAt time.Time) error {
	query := `
		UPDATE batches
		SET status = 'recalled', recalled_at = ?, recalled_by = ?
		WHERE batch_id = ? AND status != 'recalled'
	`

	_, err := dao.db.ExecContext(ctx, query, recalledAt, recalledBy, batchID)
	if err != nil {
		return fmt.Errorf("failed to recall batch: %w", err)
	}

	return nil
}

// CountByManufacturer returns the number of batches one manufacturer has
// registered, used by trust score recomputation
func (dao *BatchDAO) CountByManufacturer(ctx context.Context, manufacturerName string) (int, error) {
	query := `SELECT COUNT(*) FROM batches WHERE manufacturer_name = ?`

	var count int
	if err := dao.db.GetContext(ctx, &count, query, manufacturerName); err != nil {
		return 0, fmt.Errorf("failed to count batches: %w", err)
	}

	return count, nil
}
