package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
)

// MockBatchStore is a mock implementation of the batch store interfaces
type MockBatchStore struct {
	mock.Mock
}

func (m *MockBatchStore) GetByBatchID(ctx context.Context, batchID string) (*models.Batch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Batch), args.Error(1)
}

func (m *MockBatchStore) Create(ctx context.Context, batch *models.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchStore) ExistsByBatchID(ctx context.Context, batchID string) (bool, error) {
	args := m.Called(ctx, batchID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBatchStore) List(ctx context.Context, limit, offset int) ([]models.Batch, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Batch), args.Error(1)
}

func (m *MockBatchStore) UpdateStatus(ctx context.Context, batchID string, status models.BatchStatus) error {
	args := m.Called(ctx, batchID, status)
	return args.Error(0)
}

func (m *MockBatchStore) Recall(ctx context.Context, batchID, recalledBy string, recalledAt time.Time) error {
	args := m.Called(ctx, batchID, recalledBy, recalledAt)
	return args.Error(0)
}

func (m *MockBatchStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBatchStore) CountByManufacturer(ctx context.Context, manufacturerName string) (int, error) {
	args := m.Called(ctx, manufacturerName)
	return args.Int(0), args.Error(1)
}

// MockScanStore is a mock implementation of the scan-log store
type MockScanStore struct {
	mock.Mock
}

func (m *MockScanStore) Insert(ctx context.Context, scan *models.ScanLog) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockScanStore) ListSince(ctx context.Context, batchID string, since time.Time) ([]models.ScanLog, error) {
	args := m.Called(ctx, batchID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScanLog), args.Error(1)
}

func (m *MockScanStore) ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]models.ScanLog, error) {
	args := m.Called(ctx, batchID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScanLog), args.Error(1)
}

func (m *MockScanStore) ListRecent(ctx context.Context, limit, offset int) ([]models.ScanLog, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScanLog), args.Error(1)
}

func (m *MockScanStore) CountByBatch(ctx context.Context, batchID string) (int, error) {
	args := m.Called(ctx, batchID)
	return args.Int(0), args.Error(1)
}

func (m *MockScanStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockScanStore) CountByStatusForManufacturer(ctx context.Context, manufacturerName string, status models.VerificationStatus) (int, error) {
	args := m.Called(ctx, manufacturerName, status)
	return args.Int(0), args.Error(1)
}

// MockAlertStore is a mock implementation of the alert store
type MockAlertStore struct {
	mock.Mock
}

func (m *MockAlertStore) Insert(ctx context.Context, alert *models.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertStore) List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]models.Alert, error) {
	args := m.Called(ctx, unresolvedOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Alert), args.Error(1)
}

func (m *MockAlertStore) Count(ctx context.Context, unresolvedOnly bool) (int, error) {
	args := m.Called(ctx, unresolvedOnly)
	return args.Int(0), args.Error(1)
}

func (m *MockAlertStore) Resolve(ctx context.Context, alertID string) error {
	args := m.Called(ctx, alertID)
	return args.Error(0)
}

// MockAuditStore is a mock implementation of the audit store
type MockAuditStore struct {
	mock.Mock
}

func (m *MockAuditStore) Insert(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockRegistryClient is a mock implementation of the registry client
type MockRegistryClient struct {
	mock.Mock
}

func (m *MockRegistryClient) Verify(ctx context.Context, batchID string) (*models.OwnershipRecord, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OwnershipRecord), args.Error(1)
}

func (m *MockRegistryClient) Register(ctx context.Context, batchID, metadataHash string) (string, error) {
	args := m.Called(ctx, batchID, metadataHash)
	return args.String(0), args.Error(1)
}

func (m *MockRegistryClient) TransferOwnership(ctx context.Context, batchID, newOwner string) (string, error) {
	args := m.Called(ctx, batchID, newOwner)
	return args.String(0), args.Error(1)
}

// MockMetadataClient is a mock implementation of the metadata client
type MockMetadataClient struct {
	mock.Mock
}

func (m *MockMetadataClient) Fetch(ctx context.Context, contentHash string) (*models.BatchMetadata, error) {
	args := m.Called(ctx, contentHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatchMetadata), args.Error(1)
}

func (m *MockMetadataClient) Pin(ctx context.Context, doc *models.BatchMetadata) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

// MockAlerter is a mock implementation of the alert emitter
type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) Emit(ctx context.Context, batchID string, risk *models.RiskAssessment, coords *models.Coordinates) {
	m.Called(ctx, batchID, risk, coords)
}

// MockTrustUpdater is a mock implementation of the trust score updater
type MockTrustUpdater struct {
	mock.Mock
}

func (m *MockTrustUpdater) Recompute(ctx context.Context, manufacturerName string) {
	m.Called(ctx, manufacturerName)
}

// MockTrustScoreStore is a mock implementation of the trust score store
type MockTrustScoreStore struct {
	mock.Mock
}

func (m *MockTrustScoreStore) Upsert(ctx context.Context, score *models.TrustScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockTrustScoreStore) GetByManufacturer(ctx context.Context, manufacturerName string) (*models.TrustScore, error) {
	args := m.Called(ctx, manufacturerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrustScore), args.Error(1)
}

func (m *MockTrustScoreStore) List(ctx context.Context, limit, offset int) ([]models.TrustScore, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrustScore), args.Error(1)
}

func (m *MockTrustScoreStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockReportStore is a mock implementation of the consumer-report store
type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) CreateWithAlert(ctx context.Context, report *models.ConsumerReport, alert *models.Alert) error {
	args := m.Called(ctx, report, alert)
	return args.Error(0)
}

func (m *MockReportStore) ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]models.ConsumerReport, error) {
	args := m.Called(ctx, batchID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsumerReport), args.Error(1)
}

func (m *MockReportStore) CountByBatch(ctx context.Context, batchID string) (int, error) {
	args := m.Called(ctx, batchID)
	return args.Int(0), args.Error(1)
}

// MockAuditTrailStore is a mock implementation of the audit trail reader
type MockAuditTrailStore struct {
	mock.Mock
}

func (m *MockAuditTrailStore) ListRecent(ctx context.Context, entityType string, limit, offset int) ([]models.AuditLog, error) {
	args := m.Called(ctx, entityType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLog), args.Error(1)
}

func (m *MockAuditTrailStore) Count(ctx context.Context, entityType string) (int, error) {
	args := m.Called(ctx, entityType)
	return args.Int(0), args.Error(1)
}
