package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
)

// Anomaly rule thresholds. Values mirror the fraud patterns the rules were
// tuned against: a counterfeit QR code gets scanned in bursts, from places a
// single physical package cannot reach, and far more often than a real one.
const (
	rapidScanThreshold = 5
	rapidScanWindow    = 10 * time.Minute

	geoDistanceThresholdKM = 100.0
	geoTimeWindow          = 30 * time.Minute

	duplicateScanThreshold    = 15
	duplicateWindow           = 24 * time.Hour
	duplicateScanContribution = 15

	expiredContribution = 25

	earthRadiusKM = 6371.0

	maxRiskScore = 100
)

// BatchStore is the slice of the batch DAO the services need
type BatchStore interface {
	GetByBatchID(ctx context.Context, batchID string) (*models.Batch, error)
}

// RiskService turns a batch's scan history into a bounded risk assessment.
// Assessments are a pure function of the history snapshot and the clock, so
// the clock is injectable for deterministic tests.
type RiskService struct {
	ledger  *ScanLedger
	batches BatchStore
	logger  *logrus.Logger
	now     func() time.Time
}

// NewRiskService creates a new RiskService
func NewRiskService(ledger *ScanLedger, batches BatchStore, logger *logrus.Logger) *RiskService {
	return &RiskService{
		ledger:  ledger,
		batches: batches,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the service clock. Testing hook.
func (s *RiskService) WithClock(now func() time.Time) *RiskService {
	s.now = now
	return s
}

// haversineDistance computes the great-circle distance between two points
// in kilometers
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Assess fetches the batch record and runs the anomaly rules against its
// scan history
func (s *RiskService) Assess(ctx context.Context, batchID string, coords *models.Coordinates) (*models.RiskAssessment, error) {
	var batch *models.Batch
	record, err := s.batches.GetByBatchID(ctx, batchID)
	if err != nil {
		// fail-open: a missing or unreadable record just disables the expiry rule
		s.logger.WithError(err).WithField("batch_id", batchID).Debug("Batch record unavailable for risk assessment")
	} else {
		batch = record
	}

	return s.AssessBatch(ctx, batchID, batch, coords), nil
}

// AssessBatch runs the anomaly rules for a batch using an already-resolved
// record (possibly nil). Each rule is applied independently; contributions
// are summed and clamped to [0,100]. A failed window query contributes zero
// instead of aborting the assessment.
func (s *RiskService) AssessBatch(ctx context.Context, batchID string, batch *models.Batch, coords *models.Coordinates) *models.RiskAssessment {
	now := s.now()
	flags := []string{}
	riskScore := 0

	window, err := s.ledger.Snapshot(ctx, batchID, now)
	if err != nil {
		s.logger.WithError(err).WithField("batch_id", batchID).Error("Scan history unavailable, skipping history rules")
		window = nil
	}

	if window != nil {
		// Rule 1: rapid scanning
		rapidCount := window.CountSince(rapidScanWindow)
		if rapidCount >= rapidScanThreshold {
			severity := math.Min(float64(rapidCount)/rapidScanThreshold, 3)
			riskScore += int(math.Round(severity * 20))
			flags = append(flags, fmt.Sprintf("Rapid scanning: %d scans in 10 min", rapidCount))
		}

		// Rule 2: geographic velocity, first qualifying prior scan only
		if coords != nil {
			for _, scan := range window.ListSince(geoTimeWindow) {
				if !scan.HasCoordinates() {
					continue
				}
				dist := haversineDistance(coords.Latitude, coords.Longitude,
					scan.Latitude.Float64, scan.Longitude.Float64)
				if dist > geoDistanceThresholdKM {
					elapsedMin := now.Sub(scan.ScannedAt).Minutes()
					velocity := dist / (elapsedMin / 60)
					riskScore += int(math.Min(math.Round(dist/50), 40))
					flags = append(flags, fmt.Sprintf("Geographic anomaly: %.0fkm apart in %.0fmin (~%.0fkm/h)",
						math.Round(dist), math.Round(elapsedMin), math.Round(velocity)))
					break
				}
			}
		}

		// Rule 3: excessive reuse over 24 hours
		dayCount := window.CountSince(duplicateWindow)
		if dayCount >= duplicateScanThreshold {
			riskScore += duplicateScanContribution
			flags = append(flags, fmt.Sprintf("Excessive scans: %d verifications in 24 hours", dayCount))
		}
	}

	// Rule 4: expired medicine
	if batch != nil && batch.ExpiryDate.Valid && batch.ExpiryDate.Time.Before(now) {
		riskScore += expiredContribution
		flags = append(flags, fmt.Sprintf("Expired medicine: expired on %s",
			batch.ExpiryDate.Time.Format("2006-01-02")))
	}

	if riskScore > maxRiskScore {
		riskScore = maxRiskScore
	}

	return &models.RiskAssessment{
		RiskScore: riskScore,
		RiskLevel: models.RiskLevelForScore(riskScore),
		Flags:     flags,
		// suspicious tracks rule activation, not score: one fired rule is
		// enough even when the summed score stays low
		IsSuspicious: len(flags) > 0,
	}
}
