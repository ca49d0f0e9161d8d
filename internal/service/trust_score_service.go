package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/pkg/utils"
)

// TrustScoreStore is the slice of the trust score DAO the service needs
type TrustScoreStore interface {
	Upsert(ctx context.Context, score *models.TrustScore) error
	GetByManufacturer(ctx context.Context, manufacturerName string) (*models.TrustScore, error)
	List(ctx context.Context, limit, offset int) ([]models.TrustScore, error)
	Count(ctx context.Context) (int, error)
}

// BatchCounter supplies the per-manufacturer batch total
type BatchCounter interface {
	CountByManufacturer(ctx context.Context, manufacturerName string) (int, error)
}

// ScanCounter supplies per-manufacturer scan counts by verification status
type ScanCounter interface {
	CountByStatusForManufacturer(ctx context.Context, manufacturerName string, status models.VerificationStatus) (int, error)
}

// TrustScoreService maintains per-manufacturer trust aggregates
type TrustScoreService struct {
	scores  TrustScoreStore
	batches BatchCounter
	scans   ScanCounter
	logger  *logrus.Logger
}

// NewTrustScoreService creates a new TrustScoreService
func NewTrustScoreService(scores TrustScoreStore, batches BatchCounter, scans ScanCounter, logger *logrus.Logger) *TrustScoreService {
	return &TrustScoreService{
		scores:  scores,
		batches: batches,
		scans:   scans,
		logger:  logger,
	}
}

// Recompute refreshes one manufacturer's trust score from current batch and
// scan aggregates. Runs after the verification verdict is already returned;
// failures are logged, never surfaced.
func (s *TrustScoreService) Recompute(ctx context.Context, manufacturerName string) {
	log := s.logger.WithField("manufacturer", manufacturerName)

	total, err := s.batches.CountByManufacturer(ctx, manufacturerName)
	if err != nil {
		log.WithError(err).Error("Failed to count batches for trust score")
		return
	}

	verified, err := s.scans.CountByStatusForManufacturer(ctx, manufacturerName, models.VerificationAuthentic)
	if err != nil {
		log.WithError(err).Error("Failed to count verified scans for trust score")
		return
	}

	suspicious, err := s.scans.CountByStatusForManufacturer(ctx, manufacturerName, models.VerificationSuspicious)
	if err != nil {
		log.WithError(err).Error("Failed to count suspicious scans for trust score")
		return
	}

	// A manufacturer with no scan history keeps a clean slate; otherwise the
	// score is the share of clean verifications.
	score := 100
	if verified+suspicious > 0 {
		score = int(math.Round(100 * float64(verified) / float64(verified+suspicious)))
	}

	record := &models.TrustScore{
		ManufacturerName: manufacturerName,
		Score:            score,
		TotalBatches:     total,
		VerifiedCount:    verified,
		SuspiciousCount:  suspicious,
		UpdatedAt:        time.Now().UTC(),
	}

	existing, err := s.scores.GetByManufacturer(ctx, manufacturerName)
	switch {
	case err == nil:
		record.ID = existing.ID
	case errors.Is(err, serviceerror.ErrNotFound):
		record.ID = utils.GenerateID()
	default:
		log.WithError(err).Error("Failed to load existing trust score")
		return
	}

	if err := s.scores.Upsert(ctx, record); err != nil {
		log.WithError(err).Error("Failed to upsert trust score")
	}
}

// List retrieves one page of trust scores, lowest first, with the total
// manufacturer count
func (s *TrustScoreService) List(ctx context.Context, limit, offset int) ([]models.TrustScore, int, error) {
	scores, err := s.scores.List(ctx, utils.ValidateLimit(limit), utils.ValidateOffset(offset))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.scores.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return scores, total, nil
}
