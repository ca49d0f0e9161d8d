package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/pkg/utils"
)

// RegistryWriter covers the ledger's write collaborators. The returned
// transaction hashes are kept for display only.
type RegistryWriter interface {
	Register(ctx context.Context, batchID, metadataHash string) (string, error)
	TransferOwnership(ctx context.Context, batchID, newOwner string) (string, error)
}

// MetadataPinner uploads metadata documents to the pinning service
type MetadataPinner interface {
	Pin(ctx context.Context, doc *models.BatchMetadata) (string, error)
}

// BatchWriteStore is the slice of the batch DAO the write path needs
type BatchWriteStore interface {
	BatchStore
	Create(ctx context.Context, batch *models.Batch) error
	ExistsByBatchID(ctx context.Context, batchID string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]models.Batch, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, batchID string, status models.BatchStatus) error
	Recall(ctx context.Context, batchID, recalledBy string, recalledAt time.Time) error
}

// RegisterBatchRequest carries the fields for a new batch registration
type RegisterBatchRequest struct {
	BatchID           string
	ManufacturerName  string
	MedicineName      string
	Dosage            string
	CountryOfOrigin   string
	ManufacturingDate *time.Time
	ExpiryDate        *time.Time
	StorageConditions string
	ActorID           string
}

// BatchService handles the batch write path: registration, recall and
// ownership transfer
type BatchService struct {
	batches  BatchWriteStore
	registry RegistryWriter // nil when no ledger is configured
	pinner   MetadataPinner
	audit    AuditStore
	logger   *logrus.Logger
	now      func() time.Time
}

// NewBatchService creates a new BatchService
func NewBatchService(
	batches BatchWriteStore,
	registry RegistryWriter,
	pinner MetadataPinner,
	audit AuditStore,
	logger *logrus.Logger,
) *BatchService {
	return &BatchService{
		batches:  batches,
		registry: registry,
		pinner:   pinner,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// computeBatchHash derives the content fingerprint recorded with the batch
func computeBatchHash(batchID, manufacturer string, at time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%d", batchID, manufacturer, at.UnixNano())))
	return hex.EncodeToString(sum[:])
}

// Register creates a new batch: pins the metadata document, records the batch
// on the ledger and inserts the relational record. The decentralized writes
// degrade: a failed pin or ledger transaction is logged and the relational
// record is still created, so registration works while external networks are
// down.
func (s *BatchService) Register(ctx context.Context, req *RegisterBatchRequest) (*models.Batch, error) {
	if err := utils.ValidateBatchID(req.BatchID); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired("manufacturer name", req.ManufacturerName); err != nil {
		return nil, err
	}

	exists, err := s.batches.ExistsByBatchID(ctx, req.BatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to check batch existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("batch %s is already registered: %w", req.BatchID, serviceerror.ErrConflict)
	}

	log := s.logger.WithField("batch_id", req.BatchID)
	now := s.now().UTC()

	doc := &models.BatchMetadata{
		BatchID:       req.BatchID,
		MedicineName:  req.MedicineName,
		Manufacturer:  req.ManufacturerName,
		Dosage:        req.Dosage,
		CountryOrigin: req.CountryOfOrigin,
	}
	if req.ExpiryDate != nil {
		doc.ExpiryDate = req.ExpiryDate.Format("2006-01-02")
	}
	if req.ManufacturingDate != nil {
		doc.ManufacturingDate = req.ManufacturingDate.Format("2006-01-02")
	}

	var metadataHash string
	if s.pinner != nil {
		hash, err := s.pinner.Pin(ctx, doc)
		if err != nil {
			log.WithError(err).Warn("Metadata pinning failed, registering without decentralized metadata")
		} else {
			metadataHash = hash
		}
	}

	var txHash string
	if s.registry != nil {
		hash, err := s.registry.Register(ctx, req.BatchID, metadataHash)
		if err != nil {
			log.WithError(err).Warn("Ledger registration failed, batch recorded locally only")
		} else {
			txHash = hash
		}
	}

	batch := &models.Batch{
		ID:               utils.GenerateID(),
		BatchID:          req.BatchID,
		ManufacturerName: req.ManufacturerName,
		BatchHash:        computeBatchHash(req.BatchID, req.ManufacturerName, now),
		Status:           models.BatchStatusActive,
		CreatedAt:        now,
	}
	if req.MedicineName != "" {
		batch.MedicineName = sql.NullString{String: req.MedicineName, Valid: true}
	}
	if req.Dosage != "" {
		batch.Dosage = sql.NullString{String: req.Dosage, Valid: true}
	}
	if req.CountryOfOrigin != "" {
		batch.CountryOfOrigin = sql.NullString{String: req.CountryOfOrigin, Valid: true}
	}
	if req.ManufacturingDate != nil {
		batch.ManufacturingDate = sql.NullTime{Time: *req.ManufacturingDate, Valid: true}
	}
	if req.ExpiryDate != nil {
		batch.ExpiryDate = sql.NullTime{Time: *req.ExpiryDate, Valid: true}
	}
	if req.StorageConditions != "" {
		batch.StorageConditions = sql.NullString{String: req.StorageConditions, Valid: true}
	}
	if txHash != "" {
		batch.BlockchainTxHash = sql.NullString{String: txHash, Valid: true}
	}
	if req.ActorID != "" {
		batch.RegisteredBy = sql.NullString{String: req.ActorID, Valid: true}
	}

	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "batch_registered", req.BatchID, req.ActorID, models.JSONValue{
		"tx_hash":       txHash,
		"metadata_hash": metadataHash,
	})

	log.Info("Batch registered")
	return batch, nil
}

// Get retrieves a single batch by its public identifier. Admin lookup: no
// scan event is appended and no alert is emitted.
func (s *BatchService) Get(ctx context.Context, batchID string) (*models.Batch, error) {
	if err := utils.ValidateBatchID(batchID); err != nil {
		return nil, err
	}
	return s.batches.GetByBatchID(ctx, batchID)
}

// List retrieves one page of batches, newest first, with the total batch
// count for pagination
func (s *BatchService) List(ctx context.Context, limit, offset int) ([]models.Batch, int, error) {
	batches, err := s.batches.List(ctx, utils.ValidateLimit(limit), utils.ValidateOffset(offset))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.batches.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return batches, total, nil
}

// Recall marks a batch as recalled. Recall is terminal: a recalled batch
// never transitions back, and repeated recalls are no-ops.
func (s *BatchService) Recall(ctx context.Context, batchID, actorID string) error {
	if err := utils.ValidateBatchID(batchID); err != nil {
		return err
	}

	if _, err := s.batches.GetByBatchID(ctx, batchID); err != nil {
		return err
	}

	if err := s.batches.Recall(ctx, batchID, actorID, s.now().UTC()); err != nil {
		return err
	}

	s.recordAudit(ctx, "batch_recalled", batchID, actorID, nil)

	s.logger.WithFields(logrus.Fields{
		"batch_id": batchID,
		"actor_id": actorID,
	}).Warn("Batch recalled")
	return nil
}

// Transfer moves batch ownership on the ledger and marks the batch sold in
// the relational store
func (s *BatchService) Transfer(ctx context.Context, batchID, newOwner, actorID string) (string, error) {
	if err := utils.ValidateBatchID(batchID); err != nil {
		return "", err
	}
	if err := utils.ValidateRequired("new owner", newOwner); err != nil {
		return "", err
	}

	batch, err := s.batches.GetByBatchID(ctx, batchID)
	if err != nil {
		return "", err
	}
	if batch.IsRecalled() {
		return "", fmt.Errorf("batch %s is recalled and cannot be transferred: %w", batchID, serviceerror.ErrConflict)
	}

	var txHash string
	if s.registry != nil {
		txHash, err = s.registry.TransferOwnership(ctx, batchID, newOwner)
		if err != nil {
			return "", err
		}
	}

	if err := s.batches.UpdateStatus(ctx, batchID, models.BatchStatusSold); err != nil {
		return "", err
	}

	s.recordAudit(ctx, "ownership_transferred", batchID, actorID, models.JSONValue{
		"new_owner": newOwner,
		"tx_hash":   txHash,
	})

	return txHash, nil
}

func (s *BatchService) recordAudit(ctx context.Context, action, batchID, actorID string, details models.JSONValue) {
	if s.audit == nil {
		return
	}

	entry := &models.AuditLog{
		ID:         utils.GenerateAuditID(),
		Action:     action,
		EntityType: "batch",
		EntityID:   batchID,
		Details:    details,
		CreatedAt:  s.now().UTC(),
	}
	if actorID != "" {
		entry.ActorID = sql.NullString{String: actorID, Valid: true}
	}

	if err := s.audit.Insert(ctx, entry); err != nil {
		s.logger.WithError(err).WithField("batch_id", batchID).Error("Failed to record audit entry")
	}
}
