package service

import (
	"context"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/pkg/utils"
)

// ScanHistoryStore is the slice of the scan-log DAO the read side needs
type ScanHistoryStore interface {
	ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]models.ScanLog, error)
	ListRecent(ctx context.Context, limit, offset int) ([]models.ScanLog, error)
	CountByBatch(ctx context.Context, batchID string) (int, error)
	Count(ctx context.Context) (int, error)
}

// ScanQueryService serves read-only scan history queries for dashboards
type ScanQueryService struct {
	scans ScanHistoryStore
}

// NewScanQueryService creates a new ScanQueryService
func NewScanQueryService(scans ScanHistoryStore) *ScanQueryService {
	return &ScanQueryService{scans: scans}
}

// ListByBatch retrieves one page of a batch's scan history, most recent
// first, along with the batch's total scan count
func (s *ScanQueryService) ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]models.ScanLog, int, error) {
	if err := utils.ValidateBatchID(batchID); err != nil {
		return nil, 0, err
	}

	scans, err := s.scans.ListByBatch(ctx, batchID, utils.ValidateLimit(limit), utils.ValidateOffset(offset))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.scans.CountByBatch(ctx, batchID)
	if err != nil {
		return nil, 0, err
	}

	return scans, total, nil
}

// ListRecent retrieves the latest scans across all batches with the total
// scan count
func (s *ScanQueryService) ListRecent(ctx context.Context, limit, offset int) ([]models.ScanLog, int, error) {
	scans, err := s.scans.ListRecent(ctx, utils.ValidateLimit(limit), utils.ValidateOffset(offset))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.scans.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return scans, total, nil
}
