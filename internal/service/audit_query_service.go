package service

import (
	"context"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/pkg/utils"
)

// AuditTrailStore is the slice of the audit-log DAO the read side needs
type AuditTrailStore interface {
	ListRecent(ctx context.Context, entityType string, limit, offset int) ([]models.AuditLog, error)
	Count(ctx context.Context, entityType string) (int, error)
}

// AuditQueryService serves the compliance view over the audit trail
type AuditQueryService struct {
	audit AuditTrailStore
}

// NewAuditQueryService creates a new AuditQueryService
func NewAuditQueryService(audit AuditTrailStore) *AuditQueryService {
	return &AuditQueryService{audit: audit}
}

// ListRecent retrieves one page of audit entries, newest first, optionally
// restricted to one entity type, along with the matching row count
func (s *AuditQueryService) ListRecent(ctx context.Context, entityType string, limit, offset int) ([]models.AuditLog, int, error) {
	entries, err := s.audit.ListRecent(ctx, entityType, utils.ValidateLimit(limit), utils.ValidateOffset(offset))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.audit.Count(ctx, entityType)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
