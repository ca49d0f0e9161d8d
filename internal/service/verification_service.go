package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/pkg/utils"
)

// RegistryClient reads the ownership ledger
type RegistryClient interface {
	Verify(ctx context.Context, batchID string) (*models.OwnershipRecord, error)
}

// MetadataFetcher resolves metadata documents by content hash
type MetadataFetcher interface {
	Fetch(ctx context.Context, contentHash string) (*models.BatchMetadata, error)
}

// AuditStore records domain actions
type AuditStore interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
}

// Alerter raises risk alerts
type Alerter interface {
	Emit(ctx context.Context, batchID string, risk *models.RiskAssessment, coords *models.Coordinates)
}

// TrustUpdater refreshes manufacturer trust scores after verifications
type TrustUpdater interface {
	Recompute(ctx context.Context, manufacturerName string)
}

// VerifyRequest is one verification attempt. Persist=false supports read-only
// inspection: no scan append, no alert, no audit entry.
type VerifyRequest struct {
	BatchID     string
	Coordinates *models.Coordinates
	ActorID     string
	Persist     bool
}

// VerificationOutcome is the consolidated result of one verification
type VerificationOutcome struct {
	Status    models.VerificationStatus `json:"status"`
	Batch     *models.Batch             `json:"batch,omitempty"`
	Metadata  *models.BatchMetadata     `json:"metadata,omitempty"`
	Ownership *models.OwnershipRecord   `json:"ownership,omitempty"`
	Risk      *models.RiskAssessment    `json:"risk,omitempty"`
}

// VerificationService reconciles the ownership ledger, the decentralized
// metadata store and the relational cache into a single verdict per request.
type VerificationService struct {
	registry       RegistryClient // nil when no ledger is configured
	metadata       MetadataFetcher
	batches        BatchStore
	scans          ScanStore
	risk           *RiskService
	alerts         Alerter
	audit          AuditStore
	trust          TrustUpdater
	alertThreshold int
	logger         *logrus.Logger
	now            func() time.Time
}

// NewVerificationService creates the verification orchestrator. The registry
// client may be nil when no ledger is configured; the orchestrator then runs
// on the relational store alone.
func NewVerificationService(
	registry RegistryClient,
	metadata MetadataFetcher,
	batches BatchStore,
	scans ScanStore,
	risk *RiskService,
	alerts Alerter,
	audit AuditStore,
	trust TrustUpdater,
	alertThreshold int,
	logger *logrus.Logger,
) *VerificationService {
	return &VerificationService{
		registry:       registry,
		metadata:       metadata,
		batches:        batches,
		scans:          scans,
		risk:           risk,
		alerts:         alerts,
		audit:          audit,
		trust:          trust,
		alertThreshold: alertThreshold,
		logger:         logger,
		now:            time.Now,
	}
}

// WithClock overrides the service clock. Testing hook.
func (s *VerificationService) WithClock(now func() time.Time) *VerificationService {
	s.now = now
	return s
}

// Verify authenticates a batch identifier against all configured sources and
// attaches a risk assessment. A single unreachable source degrades the result
// instead of failing the call; only a batch absent from every source is
// reported not_found.
func (s *VerificationService) Verify(ctx context.Context, req *VerifyRequest) (*VerificationOutcome, error) {
	if err := utils.ValidateBatchID(req.BatchID); err != nil {
		return nil, err
	}
	if req.Coordinates != nil {
		if err := utils.ValidateCoordinates(req.Coordinates.Latitude, req.Coordinates.Longitude); err != nil {
			return nil, err
		}
	}

	log := s.logger.WithField("batch_id", req.BatchID)

	// The ledger read and the relational lookup are independent; run them
	// concurrently. Each degrades on failure rather than failing the call.
	var (
		ownership *models.OwnershipRecord
		stored    *models.Batch
	)

	g, gctx := errgroup.WithContext(ctx)
	if s.registry != nil {
		g.Go(func() error {
			record, err := s.registry.Verify(gctx, req.BatchID)
			if err != nil {
				log.WithError(err).Warn("Registry unavailable, degrading to remaining sources")
				return nil
			}
			ownership = record
			return nil
		})
	}
	g.Go(func() error {
		record, err := s.batches.GetByBatchID(gctx, req.BatchID)
		if err != nil {
			if !errors.Is(err, serviceerror.ErrNotFound) {
				log.WithError(err).Warn("Relational store unavailable, degrading to remaining sources")
			}
			return nil
		}
		stored = record
		return nil
	})
	_ = g.Wait()

	confirmedOnLedger := ownership != nil && ownership.Exists

	// Metadata fetch depends on the registry's content hash, so it runs after
	// the concurrent reads. All mirrors failing means "metadata degraded".
	var meta *models.BatchMetadata
	if confirmedOnLedger && ownership.MetadataHash != "" {
		doc, err := s.metadata.Fetch(ctx, ownership.MetadataHash)
		if err != nil {
			log.WithError(err).Warn("Metadata mirrors unavailable, continuing without decentralized metadata")
		} else {
			meta = doc
		}
	}

	// Absent from every source that answered: not found. This is distinct
	// from "verified with zero risk": the caller can always tell the two
	// apart through the status.
	if !confirmedOnLedger && stored == nil {
		outcome := &VerificationOutcome{Status: models.VerificationNotFound}
		s.recordOutcome(ctx, req, outcome)
		return outcome, nil
	}

	merged := s.mergeRecord(req.BatchID, stored, meta)

	// Recalled is terminal: the risk assessment is still computed and
	// attached for display, but it cannot change the verdict.
	if merged.EffectiveStatus(s.now()) == models.BatchStatusRecalled {
		risk := s.risk.AssessBatch(ctx, req.BatchID, merged, req.Coordinates)
		outcome := &VerificationOutcome{
			Status:    models.VerificationRecalled,
			Batch:     merged,
			Metadata:  meta,
			Ownership: ownership,
			Risk:      risk,
		}
		s.recordOutcome(ctx, req, outcome)
		return outcome, nil
	}

	risk := s.risk.AssessBatch(ctx, req.BatchID, merged, req.Coordinates)

	status := models.VerificationAuthentic
	if risk.IsSuspicious {
		status = models.VerificationSuspicious
	}

	outcome := &VerificationOutcome{
		Status:    status,
		Batch:     merged,
		Metadata:  meta,
		Ownership: ownership,
		Risk:      risk,
	}
	s.recordOutcome(ctx, req, outcome)
	return outcome, nil
}

// mergeRecord builds the consolidated batch view: the relational record as
// the base, with each field present in the metadata document overriding the
// corresponding field. A ledger-only batch yields a synthesized record.
func (s *VerificationService) mergeRecord(batchID string, stored *models.Batch, meta *models.BatchMetadata) *models.Batch {
	var merged models.Batch
	if stored != nil {
		merged = *stored
	} else {
		merged = models.Batch{BatchID: batchID, Status: models.BatchStatusActive}
	}
	meta.ApplyTo(&merged)
	return &merged
}

// recordOutcome appends the scan event and, when warranted, emits an alert,
// records the audit entry and refreshes the trust score. These writes happen
// after the verdict is final and are not transactional with each other: any
// failure here is logged and never surfaced to the caller.
func (s *VerificationService) recordOutcome(ctx context.Context, req *VerifyRequest, outcome *VerificationOutcome) {
	if !req.Persist {
		return
	}

	log := s.logger.WithField("batch_id", req.BatchID)

	scan := &models.ScanLog{
		ID:                 utils.GenerateScanID(),
		BatchID:            req.BatchID,
		VerificationStatus: outcome.Status,
		AnomalyFlags:       models.StringSlice{},
		ScannedAt:          s.now().UTC(),
	}
	if req.ActorID != "" {
		scan.ScannerUserID = sql.NullString{String: req.ActorID, Valid: true}
	}
	if req.Coordinates != nil {
		scan.Latitude = sql.NullFloat64{Float64: req.Coordinates.Latitude, Valid: true}
		scan.Longitude = sql.NullFloat64{Float64: req.Coordinates.Longitude, Valid: true}
	}
	if outcome.Risk != nil {
		scan.AnomalyFlags = models.StringSlice(outcome.Risk.Flags)
	}

	if err := s.scans.Insert(ctx, scan); err != nil {
		log.WithError(err).Error("Failed to append scan event")
	}

	if outcome.Risk != nil && outcome.Risk.RiskScore >= s.alertThreshold {
		s.alerts.Emit(ctx, req.BatchID, outcome.Risk, req.Coordinates)
	}

	if s.audit != nil {
		entry := &models.AuditLog{
			ID:         utils.GenerateAuditID(),
			Action:     "batch_verified",
			EntityType: "scan",
			EntityID:   req.BatchID,
			Details:    models.JSONValue{"status": string(outcome.Status)},
			CreatedAt:  s.now().UTC(),
		}
		if req.ActorID != "" {
			entry.ActorID = sql.NullString{String: req.ActorID, Valid: true}
		}
		if outcome.Risk != nil {
			entry.Details["risk_score"] = outcome.Risk.RiskScore
		}
		if err := s.audit.Insert(ctx, entry); err != nil {
			log.WithError(err).Error("Failed to record audit entry")
		}
	}

	if s.trust != nil && outcome.Batch != nil && outcome.Batch.ManufacturerName != "" {
		s.trust.Recompute(ctx, outcome.Batch.ManufacturerName)
	}
}
