package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service/mocks"
)

func newReportService(store *mocks.MockReportStore) *ReportService {
	return NewReportService(store, testLogger()).WithClock(func() time.Time { return testNow })
}

func TestReportSubmit_CounterfeitRaisesHighAlert(t *testing.T) {
	store := new(mocks.MockReportStore)
	store.On("CreateWithAlert", mock.Anything,
		mock.MatchedBy(func(report *models.ConsumerReport) bool {
			return report.BatchID == "MED-001" &&
				report.ReportType == models.ReportTypeCounterfeit &&
				report.ReporterID.Valid && report.ReporterID.String == "user-1" &&
				report.CreatedAt.Equal(testNow)
		}),
		mock.MatchedBy(func(alert *models.Alert) bool {
			return alert.BatchID == "MED-001" &&
				alert.AlertType == models.AlertTypeConsumerReport &&
				alert.Severity == models.RiskLevelHigh &&
				alert.RiskScore == 70 &&
				alert.Message == "Consumer report: counterfeit - Hologram missing from packaging"
		}),
	).Return(nil)

	svc := newReportService(store)
	report, err := svc.Submit(context.Background(), &SubmitReportRequest{
		BatchID:     "MED-001",
		ReporterID:  "user-1",
		ReportType:  models.ReportTypeCounterfeit,
		Description: "Hologram missing from packaging",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	store.AssertExpectations(t)
}

func TestReportSubmit_DefaultsToMediumSeverity(t *testing.T) {
	store := new(mocks.MockReportStore)
	store.On("CreateWithAlert", mock.Anything, mock.Anything,
		mock.MatchedBy(func(alert *models.Alert) bool {
			return alert.Severity == models.RiskLevelMedium &&
				alert.RiskScore == 40 &&
				alert.Message == "Consumer report: suspicious - No details"
		}),
	).Return(nil)

	svc := newReportService(store)
	_, err := svc.Submit(context.Background(), &SubmitReportRequest{
		BatchID:    "MED-001",
		ReportType: models.ReportTypeSuspicious,
	})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestReportSubmit_RejectsUnknownType(t *testing.T) {
	store := new(mocks.MockReportStore)

	svc := newReportService(store)
	_, err := svc.Submit(context.Background(), &SubmitReportRequest{
		BatchID:    "MED-001",
		ReportType: "gossip",
	})

	require.Error(t, err)
	assert.True(t, serviceerror.IsValidation(err))
	store.AssertNotCalled(t, "CreateWithAlert")
}

func TestReportSubmit_RejectsMalformedBatchID(t *testing.T) {
	store := new(mocks.MockReportStore)

	svc := newReportService(store)
	_, err := svc.Submit(context.Background(), &SubmitReportRequest{
		BatchID:    "bad id!",
		ReportType: models.ReportTypeOther,
	})

	require.Error(t, err)
	assert.True(t, serviceerror.IsValidation(err))
	store.AssertNotCalled(t, "CreateWithAlert")
}

func TestReportSubmit_StoreFailurePropagates(t *testing.T) {
	store := new(mocks.MockReportStore)
	store.On("CreateWithAlert", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	svc := newReportService(store)
	_, err := svc.Submit(context.Background(), &SubmitReportRequest{
		BatchID:    "MED-001",
		ReportType: models.ReportTypeExpired,
	})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestReportListByBatch_ReturnsRowTotal(t *testing.T) {
	store := new(mocks.MockReportStore)
	store.On("ListByBatch", mock.Anything, "MED-001", 20, 0).
		Return([]models.ConsumerReport{{ID: "r-1", BatchID: "MED-001"}}, nil)
	store.On("CountByBatch", mock.Anything, "MED-001").Return(3, nil)

	svc := newReportService(store)
	reports, total, err := svc.ListByBatch(context.Background(), "MED-001", 20, 0)

	require.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, 3, total)
}
