package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/database"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
)

// AlertDAO handles database operations for risk alerts
type AlertDAO struct {
	db *database.DB
}

// NewAlertDAO creates a new AlertDAO instance
func NewAlertDAO(db *database.DB) *AlertDAO {
	return &AlertDAO{db: db}
}

const alertColumns = `
		id, batch_id, alert_type, severity, risk_score, message,
		latitude, longitude, resolved, created_at`

// Insert stores a new alert
func (dao *AlertDAO) Insert(ctx context.Context, alert *models.Alert) error {
	query := `
		INSERT INTO alerts (
			id, batch_id, alert_type, severity, risk_score, message,
			latitude, longitude, resolved, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
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
	)

	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}

	return nil
}

// GetByID retrieves an alert by its identifier
func (dao *AlertDAO) GetByID(ctx context.Context, alertID string) (*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = ?`

	var alert models.Alert
	err := dao.db.GetContext(ctx, &alert, query, alertID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serviceerror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	return &alert, nil
}

// List retrieves alerts newest first, optionally only unresolved ones
func (dao *AlertDAO) List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts`
	if unresolvedOnly {
		query += ` WHERE resolved = false`
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`

	var alerts []models.Alert
	if err := dao.db.SelectContext(ctx, &alerts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	return alerts, nil
}

// Count returns the number of alerts, optionally only unresolved ones
func (dao *AlertDAO) Count(ctx context.Context, unresolvedOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM alerts`
	if unresolvedOnly {
		query += ` WHERE resolved = false`
	}

	var count int
	if err := dao.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	return count, nil
}

// Resolve flips an alert's resolved flag. The flag only moves false→true;
// resolving an already-resolved alert is a no-op that still succeeds.
func (dao *AlertDAO) Resolve(ctx context.Context, alertID string) error {
	query := `UPDATE alerts SET resolved = true WHERE id = ?`

	result, err := dao.db.ExecContext(ctx, query, alertID)
	if err != nil {
		return fmt.Errorf("failed to resolve alert: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		// Row may exist but already be resolved; distinguish the two.
		if _, getErr := dao.GetByID(ctx, alertID); getErr != nil {
			return getErr
		}
	}

	return nil
}
