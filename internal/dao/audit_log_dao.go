package dao

import (
	"context"
	"fmt"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/database"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
)

// AuditLogDAO handles database operations for the audit trail
type AuditLogDAO struct {
	db *database.DB
}

// NewAuditLogDAO creates a new AuditLogDAO instance
func NewAuditLogDAO(db *database.DB) *AuditLogDAO {
	return &AuditLogDAO{db: db}
}

// Insert stores a new audit log entry
func (dao *AuditLogDAO) Insert(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (
			id, action, entity_type, entity_id, actor_id, details, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.ActorID,
		entry.Details,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

// ListRecent retrieves the latest audit entries, newest first, optionally
// restricted to one entity type
func (dao *AuditLogDAO) ListRecent(ctx context.Context, entityType string, limit, offset int) ([]models.AuditLog, error) {
	query := `
		SELECT id, action, entity_type, entity_id, actor_id, details, created_at
		FROM audit_logs
	`
	args := []interface{}{}
	if entityType != "" {
		query += ` WHERE entity_type = ?`
		args = append(args, entityType)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var entries []models.AuditLog
	if err := dao.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return entries, nil
}

// Count returns the number of audit entries, optionally for one entity type
func (dao *AuditLogDAO) Count(ctx context.Context, entityType string) (int, error) {
	query := `SELECT COUNT(*) FROM audit_logs`
	args := []interface{}{}
	if entityType != "" {
		query += ` WHERE entity_type = ?`
		args = append(args, entityType)
	}

	var count int
	if err := dao.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	return count, nil
}
