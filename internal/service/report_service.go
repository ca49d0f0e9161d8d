package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/pkg/utils"
)

// ReportStore is the slice of the consumer-report DAO the service needs
type ReportStore interface {
	CreateWithAlert(ctx context.Context, report *models.ConsumerReport, alert *models.Alert) error
	ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]models.ConsumerReport, error)
	CountByBatch(ctx context.Context, batchID string) (int, error)
}

// SubmitReportRequest carries the fields of a consumer report submission
type SubmitReportRequest struct {
	BatchID     string
	ReporterID  string
	ReportType  string
	Description string
}

// ReportService handles consumer-filed issue reports. Every accepted report
// raises a linked alert so regulators see it next to the automated ones.
type ReportService struct {
	reports ReportStore
	logger  *logrus.Logger
	now     func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(reports ReportStore, logger *logrus.Logger) *ReportService {
	return &ReportService{reports: reports, logger: logger, now: time.Now}
}

// WithClock overrides the service clock. Testing hook.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Submit files a consumer report and its linked alert. A suspected
// counterfeit is treated as high severity; every other report type comes in
// as medium.
func (s *ReportService) Submit(ctx context.Context, req *SubmitReportRequest) (*models.ConsumerReport, error) {
	if err := utils.ValidateBatchID(req.BatchID); err != nil {
		return nil, err
	}
	if !models.IsValidReportType(req.ReportType) {
		return nil, serviceerror.NewValidationError("report_type", fmt.Sprintf("unknown report type: %s", req.ReportType))
	}

	now := s.now().UTC()

	report := &models.ConsumerReport{
		ID:         utils.GenerateID(),
		BatchID:    req.BatchID,
		ReportType: req.ReportType,
		CreatedAt:  now,
	}
	if req.ReporterID != "" {
		report.ReporterID = sql.NullString{String: req.ReporterID, Valid: true}
	}
	if req.Description != "" {
		report.Description = sql.NullString{String: req.Description, Valid: true}
	}

	severity := models.RiskLevelMedium
	riskScore := 40
	if req.ReportType == models.ReportTypeCounterfeit {
		severity = models.RiskLevelHigh
		riskScore = 70
	}

	details := req.Description
	if details == "" {
		details = "No details"
	}

	alert := &models.Alert{
		ID:        utils.GenerateAlertID(),
		BatchID:   req.BatchID,
		AlertType: models.AlertTypeConsumerReport,
		Severity:  severity,
		RiskScore: riskScore,
		Message:   fmt.Sprintf("Consumer report: %s - %s", req.ReportType, details),
		CreatedAt: now,
	}

	if err := s.reports.CreateWithAlert(ctx, report, alert); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"batch_id":    req.BatchID,
		"report_type": req.ReportType,
		"severity":    severity,
	}).Warn("Consumer report filed")

	return report, nil
}

// ListByBatch retrieves one page of a batch's consumer reports, newest
// first, with the batch's total report count
func (s *ReportService) ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]models.ConsumerReport, int, error) {
	if err := utils.ValidateBatchID(batchID); err != nil {
		return nil, 0, err
	}

	reports, err := s.reports.ListByBatch(ctx, batchID, utils.ValidateLimit(limit), utils.ValidateOffset(offset))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.reports.CountByBatch(ctx, batchID)
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}
