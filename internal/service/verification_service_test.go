package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service/mocks"
)

type verificationFixture struct {
	registry *mocks.MockRegistryClient
	metadata *mocks.MockMetadataClient
	batches  *mocks.MockBatchStore
	scans    *mocks.MockScanStore
	alerts   *mocks.MockAlerter
	audit    *mocks.MockAuditStore
	trust    *mocks.MockTrustUpdater
	service  *VerificationService
}

func newVerificationFixture(t *testing.T) *verificationFixture {
	t.Helper()

	f := &verificationFixture{
		registry: new(mocks.MockRegistryClient),
		metadata: new(mocks.MockMetadataClient),
		batches:  new(mocks.MockBatchStore),
		scans:    new(mocks.MockScanStore),
		alerts:   new(mocks.MockAlerter),
		audit:    new(mocks.MockAuditStore),
		trust:    new(mocks.MockTrustUpdater),
	}

	risk := NewRiskService(NewScanLedger(f.scans), f.batches, testLogger()).
		WithClock(func() time.Time { return testNow })
	f.service = NewVerificationService(
		f.registry, f.metadata, f.batches, f.scans, risk,
		f.alerts, f.audit, f.trust, 45, testLogger(),
	).WithClock(func() time.Time { return testNow })

	return f
}

func activeBatch(batchID string) *models.Batch {
	return &models.Batch{
		ID:               "b-" + batchID,
		BatchID:          batchID,
		MedicineName:     sql.NullString{String: "Paracetamol 500mg", Valid: true},
		ManufacturerName: "Acme Pharma",
		Status:           models.BatchStatusActive,
		ExpiryDate:       sql.NullTime{Time: testNow.Add(365 * 24 * time.Hour), Valid: true},
	}
}

func ownershipFor(batchID, hash string) *models.OwnershipRecord {
	return &models.OwnershipRecord{
		BatchID:      batchID,
		Exists:       true,
		Owner:        "0xacme",
		MetadataHash: hash,
		CreatedAt:    testNow.Add(-90 * 24 * time.Hour),
	}
}

func TestVerify_AuthenticAcrossAllSources(t *testing.T) {
	f := newVerificationFixture(t)

	f.registry.On("Verify", mock.Anything, "MED-001").Return(ownershipFor("MED-001", "QmHash"), nil)
	f.batches.On("GetByBatchID", mock.Anything, "MED-001").Return(activeBatch("MED-001"), nil)
	f.metadata.On("Fetch", mock.Anything, "QmHash").
		Return(&models.BatchMetadata{MedicineName: "Paracetamol 500mg Tabs"}, nil)
	f.scans.On("ListSince", mock.Anything, "MED-001", mock.Anything).Return([]models.ScanLog{}, nil)

	got, err := f.service.Verify(context.Background(), &VerifyRequest{BatchID: "MED-001"})

	require.NoError(t, err)
	assert.Equal(t, models.VerificationAuthentic, got.Status)
	require.NotNil(t, got.Risk)
	assert.Equal(t, 0, got.Risk.RiskScore)
	assert.False(t, got.Risk.IsSuspicious)
	require.NotNil(t, got.Ownership)
	assert.Equal(t, "0xacme", got.Ownership.Owner)
	// the metadata document overrides the cached medicine name
	require.NotNil(t, got.Batch)
	assert.Equal(t, "Paracetamol 500mg Tabs", got.Batch.MedicineName.String)
}

func TestVerify_NotFoundWhenAbsentEverywhere(t *testing.T) {
	f := newVerificationFixture(t)

	f.registry.On("Verify", mock.Anything, "MED-404").
		Return(&models.OwnershipRecord{BatchID: "MED-404", Exists: false}, nil)
	f.batches.On("GetByBatchID", mock.Anything, "MED-404").
		Return(nil, serviceerror.ErrNotFound)

	got, err := f.service.Verify(context.Background(), &VerifyRequest{BatchID: "MED-404"})

	require.NoError(t, err)
	assert.Equal(t, models.VerificationNotFound, got.Status)
	assert.Nil(t, got.Batch)
	assert.Nil(t, got.Risk)
	f.metadata.AssertNotCalled(t, "Fetch")
}

func TestVerify_DegradesWhenRegistryUnavailable(t *testing.T) {
	f := newVerificationFixture(t)

	f.registry.On("Verify", mock.Anything, "MED-001").
		Return(nil, serviceerror.SourceUnavailable("registry", assert.AnError))
	f.batches.On("GetByBatchID", mock.Anything, "MED-001").Return(activeBatch("MED-001"), nil)
	f.scans.On("ListSince", mock.Anything, "MED-001", mock.Anything).Return([]models.ScanLog{}, nil)

	got, err := f.service.Verify(context.Background(), &VerifyRequest{BatchID: "MED-001"})

	require.NoError(t, err)
	assert.Equal(t, models.VerificationAuthentic, got.Status)
	assert.Nil(t, got.Ownership)
	f.metadata.AssertNotCalled(t, "Fetch")
}

func TestVerify_DegradesWhenMetadataMirrorsFail(t *testing.T) {
	f := newVerificationFixture(t)

	f.registry.On("Verify", mock.Anything, "MED-001").Return(ownershipFor("MED-001", "QmHash"), nil)
	f.batches.On("GetByBatchID", mock.Anything, "MED-001").Return(activeBatch("MED-001"), nil)
	f.metadata.On("Fetch", mock.Anything, "QmHash").
		Return(nil, serviceerror.SourceUnavailable("metadata", assert.AnError))
	f.scans.On("ListSince", mock.Anything, "MED-001", mock.Anything).Return([]models.ScanLog{}, nil)

	got, err := f.service.Verify(context.Background(), &VerifyRequest{BatchID: "MED-001"})

	require.NoError(t, err)
	assert.Equal(t, models.VerificationAuthentic, got.Status)
	assert.Nil(t, got.Metadata)
	// the relational record alone still carries the verdict
	require.NotNil(t, got.Batch)
	assert.Equal(t, "Paracetamol 500mg", got.Batch.MedicineName.String)
}

func TestVerify_LedgerOnlyBatchSynthesizesRecord(t *testing.T) {
	f := newVerificationFixture(t)

	f.registry.On("Verify", mock.Anything, "MED-001").Return(ownershipFor("MED-001", "QmHash"), nil)
	f.batches.On("GetByBatchID", mock.Anything, "MED-001").Return(nil, serviceerror.ErrNotFound)
	f.metadata.On("Fetch", mock.Anything, "QmHash").
		Return(&models.BatchMetadata{MedicineName: "Amoxicillin 250mg", Manufacturer: "Acme Pharma"}, nil)
	f.scans.On("ListSince", mock.Anything, "MED-001", mock.Anything).Return([]models.ScanLog{}, nil)

	got, err := f.service.Verify(context.Background(), &VerifyRequest{BatchID: "MED-001"})

	require.NoError(t, err)
	assert.Equal(t, models.VerificationAuthentic, got.Status)
	require.NotNil(t, got.Batch)
	assert.Equal(t, "MED-001", got.Batch.BatchID)
	assert.Equal(t, "Amoxicillin 250mg", got.Batch.MedicineName.String)
}

func TestVerify_RecalledIsTerminal(t *testing.T) {
	f := newVerificationFixture(t)

	recalled := activeBatch("MED-001")
	recalled.Status = models.BatchStatusRecalled

	f.registry.On("Verify", mock.Anything, "MED-001").Return(ownershipFor("MED-001", ""), nil)
	f.batches.On("GetByBatchID", mock.Anything, "MED-001").Return(recalled, nil)
	f.scans.On("ListSince", mock.Anything, "MED-001", mock.Anything).Return([]models.ScanLog{}, nil)

	got, err := f.service.Verify(context.Background(), &VerifyRequest{BatchID: "MED-001"})

	require.NoError(t, err)
	assert.Equal(t, models.VerificationRecalled, got.Status)
	// risk is still computed for display, it just cannot change the verdict
	require.NotNil(t, got.Risk)
}

func TestVerify_ExpiredBatchIsSuspicious(t *testing.T) {
	f := newVerificationFixture(t)

	expired := activeBatch("MED-001")
	expired.ExpiryDate = sql.NullTime{Time: testNow.Add(-24 * time.Hour), Valid: true}

	f.registry.On("Verify", mock.Anything, "MED-001").Return(ownershipFor("MED-001", ""), nil)
	f.batches.On("GetByBatchID", mock.Anything, "MED-001").Return(expired, nil)
	f.scans.On("ListSince", mock.Anything, "MED-001", mock.Anything).Return([]models.ScanLog{}, nil)

	got, err := f.service.Verify(context.Background(), &VerifyRequest{BatchID: "MED-001"})

	require.NoError(t, err)
	assert.Equal(t, models.VerificationSuspicious, got.Status)
	require.NotNil(t, got.Risk)
	assert.Equal(t, 25, got.Risk.RiskScore)
}

func TestVerify_PersistAppendsScanAuditAndTrust(t *testing.T) {
	f := newVerificationFixture(t)

	f.registry.On("Verify", mock.Anything, "MED-001").Return(ownershipFor("MED-001", ""), nil)
	f.batches.On("GetByBatchID", mock.Anything, "MED-001").Return(activeBatch("MED-001"), nil)
	f.scans.On("ListSince", mock.Anything, "MED-001", mock.Anything).Return([]models.ScanLog{}, nil)

	f.scans.On("Insert", mock.Anything, mock.MatchedBy(func(scan *models.ScanLog) bool {
		return scan.BatchID == "MED-001" &&
			scan.VerificationStatus == models.VerificationAuthentic &&
			scan.ScannerUserID.String == "pharmacist-7" &&
			scan.Latitude.Valid && scan.Longitude.Valid
	})).Return(nil)
	f.audit.On("Insert", mock.Anything, mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.Action == "batch_verified" && entry.EntityID == "MED-001"
	})).Return(nil)
	f.trust.On("Recompute", mock.Anything, "Acme Pharma").Return()

	_, err := f.service.Verify(context.Background(), &VerifyRequest{
		BatchID:     "MED-001",
		Coordinates: &models.Coordinates{Latitude: 6.9271, Longitude: 79.8612},
		ActorID:     "pharmacist-7",
		Persist:     true,
	})

	require.NoError(t, err)
	f.scans.AssertExpectations(t)
	f.audit.AssertExpectations(t)
	f.trust.AssertExpectations(t)
	// clean verification stays under the alert threshold
	f.alerts.AssertNotCalled(t, "Emit")
}

func TestVerify_AlertEmittedAtThreshold(t *testing.T) {
	f := newVerificationFixture(t)

	// rapid history plus expiry pushes the score past the threshold of 45
	history := make([]models.ScanLog, 0, 6)
	for i := 0; i < 6; i++ {
		history = append(history, scanAt("MED-001", time.Duration(i+1)*time.Minute))
	}
	expired := activeBatch("MED-001")
	expired.ExpiryDate = sql.NullTime{Time: testNow.Add(-time.Hour), Valid: true}

	f.registry.On("Verify", mock.Anything, "MED-001").Return(ownershipFor("MED-001", ""), nil)
	f.batches.On("GetByBatchID", mock.Anything, "MED-001").Return(expired, nil)
	f.scans.On("ListSince", mock.Anything, "MED-001", mock.Anything).Return(history, nil)
	f.scans.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.audit.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.trust.On("Recompute", mock.Anything, "Acme Pharma").Return()
	f.alerts.On("Emit", mock.Anything, "MED-001",
		mock.MatchedBy(func(risk *models.RiskAssessment) bool { return risk.RiskScore == 49 }),
		mock.Anything).Return()

	got, err := f.service.Verify(context.Background(), &VerifyRequest{BatchID: "MED-001", Persist: true})

	require.NoError(t, err)
	assert.Equal(t, models.VerificationSuspicious, got.Status)
	f.alerts.AssertExpectations(t)
}

func TestVerify_InspectionModeHasNoSideEffects(t *testing.T) {
	f := newVerificationFixture(t)

	f.registry.On("Verify", mock.Anything, "MED-001").Return(ownershipFor("MED-001", ""), nil)
	f.batches.On("GetByBatchID", mock.Anything, "MED-001").Return(activeBatch("MED-001"), nil)
	f.scans.On("ListSince", mock.Anything, "MED-001", mock.Anything).Return([]models.ScanLog{}, nil)

	_, err := f.service.Verify(context.Background(), &VerifyRequest{BatchID: "MED-001", Persist: false})

	require.NoError(t, err)
	f.scans.AssertNotCalled(t, "Insert")
	f.alerts.AssertNotCalled(t, "Emit")
	f.audit.AssertNotCalled(t, "Insert")
	f.trust.AssertNotCalled(t, "Recompute")
}

func TestVerify_RejectsMalformedBatchIDBeforeIO(t *testing.T) {
	f := newVerificationFixture(t)

	got, err := f.service.Verify(context.Background(), &VerifyRequest{BatchID: "bad id!"})

	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, serviceerror.IsValidation(err))
	f.registry.AssertNotCalled(t, "Verify")
	f.batches.AssertNotCalled(t, "GetByBatchID")
}

func TestVerify_RejectsOutOfRangeCoordinates(t *testing.T) {
	f := newVerificationFixture(t)

	_, err := f.service.Verify(context.Background(), &VerifyRequest{
		BatchID:     "MED-001",
		Coordinates: &models.Coordinates{Latitude: 91, Longitude: 0},
	})

	require.Error(t, err)
	assert.True(t, serviceerror.IsValidation(err))
	f.registry.AssertNotCalled(t, "Verify")
}

func TestVerify_ScanInsertFailureDoesNotFailVerdict(t *testing.T) {
	f := newVerificationFixture(t)

	f.registry.On("Verify", mock.Anything, "MED-001").Return(ownershipFor("MED-001", ""), nil)
	f.batches.On("GetByBatchID", mock.Anything, "MED-001").Return(activeBatch("MED-001"), nil)
	f.scans.On("ListSince", mock.Anything, "MED-001", mock.Anything).Return([]models.ScanLog{}, nil)
	f.scans.On("Insert", mock.Anything, mock.Anything).Return(assert.AnError)
	f.audit.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.trust.On("Recompute", mock.Anything, "Acme Pharma").Return()

	got, err := f.service.Verify(context.Background(), &VerifyRequest{BatchID: "MED-001", Persist: true})

	require.NoError(t, err)
	assert.Equal(t, models.VerificationAuthentic, got.Status)
}
