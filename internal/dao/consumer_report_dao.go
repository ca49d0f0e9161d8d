package dao

import (
	"context"
	"fmt"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/database"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
)

// ConsumerReportDAO handles database operations for consumer reports
type ConsumerReportDAO struct {
	db *database.DB
}

// NewConsumerReportDAO creates a new ConsumerReportDAO instance
func NewConsumerReportDAO(db *database.DB) *ConsumerReportDAO {
	return &ConsumerReportDAO{db: db}
}

// CreateWithAlert stores a consumer report together with its linked alert in
// one transaction. A report without its alert would be invisible to
// regulators, so neither row is written unless both are.
func (dao *ConsumerReportDAO) CreateWithAlert(ctx context.Context, report *models.ConsumerReport, alert *models.Alert) error {
	reportQuery := `
		INSERT INTO consumer_reports (
			id, batch_id, reporter_id, report_type, description, created_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`
	alertQuery := `
		INSERT INTO alerts (
			id, batch_id, alert_type, severity, risk_score, message,
			latitude, longitude, resolved, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := dao.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		if _, err := tx.ExecContext(
			ctx,
			reportQuery,
			report.ID,
			report.BatchID,
			report.ReporterID,
			report.ReportType,
			report.Description,
			report.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert consumer report: %w", err)
		}

		if _, err := tx.ExecContext(
			ctx,
			alertQuery,
			alert.ID,
			alert.BatchID,
			alert.AlertType,
			alert.Severity,
			alert.RiskScore,
			alert.Message,
			alert.Latitude,
			alert.Longitude,
			alert.Resolved,
			alert.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert report alert: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// ListByBatch retrieves the reports filed against one batch, newest first
func (dao *ConsumerReportDAO) ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]models.ConsumerReport, error) {
	query := `
		SELECT id, batch_id, reporter_id, report_type, description, created_at
		FROM consumer_reports
		WHERE batch_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	var reports []models.ConsumerReport
	if err := dao.db.SelectContext(ctx, &reports, query, batchID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list consumer reports: %w", err)
	}

	return reports, nil
}

// CountByBatch returns the number of reports filed against one batch
func (dao *ConsumerReportDAO) CountByBatch(ctx context.Context, batchID string) (int, error) {
	query := `SELECT COUNT(*) FROM consumer_reports WHERE batch_id = ?`

	var count int
	if err := dao.db.GetContext(ctx, &count, query, batchID); err != nil {
		return 0, fmt.Errorf("failed to count consumer reports: %w", err)
	}

	return count, nil
}
