package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/database"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
)

// ScanLogDAO handles database operations for the append-only scan ledger
type ScanLogDAO struct {
	db *database.DB
}

// NewScanLogDAO creates a new ScanLogDAO instance
func NewScanLogDAO(db *database.DB) *ScanLogDAO {
	return &ScanLogDAO{db: db}
}

const scanLogColumns = `
		id, batch_id, scanner_user_id, verification_status,
		latitude, longitude, anomaly_flags, scanned_at`

// Insert appends a scan event. Scan logs are never updated or deleted.
func (dao *ScanLogDAO) Insert(ctx context.Context, scan *models.ScanLog) error {
	query := `
		INSERT INTO scan_logs (
			id, batch_id, scanner_user_id, verification_status,
			latitude, longitude, anomaly_flags, scanned_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		scan.ID,
		scan.BatchID,
		scan.ScannerUserID,
		scan.VerificationStatus,
		scan.Latitude,
		scan.Longitude,
		scan.AnomalyFlags,
		scan.ScannedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert scan log: %w", err)
	}

	return nil
}

// ListSince retrieves all scans for a batch since the given instant,
// most recent first. This is the single range fetch backing every risk
// window; narrower windows are filtered in memory from its result.
func (dao *ScanLogDAO) ListSince(ctx context.Context, batchID string, since time.Time) ([]models.ScanLog, error) {
	query := `SELECT ` + scanLogColumns + `
		FROM scan_logs
		WHERE batch_id = ? AND scanned_at >= ?
		ORDER BY scanned_at DESC`

	var scans []models.ScanLog
	if err := dao.db.SelectContext(ctx, &scans, query, batchID, since); err != nil {
		return nil, fmt.Errorf("failed to list scans since %s: %w", since.Format(time.RFC3339), err)
	}

	return scans, nil
}

// ListByBatch retrieves the scan history of one batch, most recent first
func (dao *ScanLogDAO) ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]models.ScanLog, error) {
	query := `SELECT ` + scanLogColumns + `
		FROM scan_logs
		WHERE batch_id = ?
		ORDER BY scanned_at DESC
		LIMIT ? OFFSET ?`

	var scans []models.ScanLog
	if err := dao.db.SelectContext(ctx, &scans, query, batchID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list scans for batch: %w", err)
	}

	return scans, nil
}

// ListRecent retrieves the latest scans across all batches
func (dao *ScanLogDAO) ListRecent(ctx context.Context, limit, offset int) ([]models.ScanLog, error) {
	query := `SELECT ` + scanLogColumns + `
		FROM scan_logs
		ORDER BY scanned_at DESC
		LIMIT ? OFFSET ?`

	var scans []models.ScanLog
	if err := dao.db.SelectContext(ctx, &scans, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list recent scans: %w", err)
	}

	return scans, nil
}

// CountByBatch returns the total number of scans recorded for one batch
func (dao *ScanLogDAO) CountByBatch(ctx context.Context, batchID string) (int, error) {
	query := `SELECT COUNT(*) FROM scan_logs WHERE batch_id = ?`

	var count int
	if err := dao.db.GetContext(ctx, &count, query, batchID); err != nil {
		return 0, fmt.Errorf("failed to count scans for batch: %w", err)
	}

	return count, nil
}

// Count returns the total number of recorded scans
func (dao *ScanLogDAO) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM scan_logs`

	var count int
	if err := dao.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count scans: %w", err)
	}

	return count, nil
}

// CountByStatusForManufacturer counts scans with the given status across all
// of a manufacturer's batches
func (dao *ScanLogDAO) CountByStatusForManufacturer(ctx context.Context, manufacturerName string, status models.VerificationStatus) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM scan_logs s
		JOIN batches b ON b.batch_id = s.batch_id
		WHERE b.manufacturer_name = ? AND s.verification_status = ?
	`

	var count int
	if err := dao.db.GetContext(ctx, &count, query, manufacturerName, status); err != nil {
		return 0, fmt.Errorf("failed to count scans by status: %w", err)
	}

	return count, nil
}
