package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/pkg/utils"
)

// AlertStore is the slice of the alert DAO the service needs
type AlertStore interface {
	Insert(ctx context.Context, alert *models.Alert) error
	List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]models.Alert, error)
	Count(ctx context.Context, unresolvedOnly bool) (int, error)
	Resolve(ctx context.Context, alertID string) error
}

// AlertService raises and manages risk alerts
type AlertService struct {
	alerts AlertStore
	logger *logrus.Logger
	now    func() time.Time
}

// NewAlertService creates a new AlertService
func NewAlertService(alerts AlertStore, logger *logrus.Logger) *AlertService {
	return &AlertService{alerts: alerts, logger: logger, now: time.Now}
}

// WithClock overrides the service clock. Testing hook.
func (s *AlertService) WithClock(now func() time.Time) *AlertService {
	s.now = now
	return s
}

// Emit raises an alert for a risky verification. Called after the verdict is
// already computed and returned; a failed insert is logged and swallowed so
// it can never change the verdict or roll back the scan append.
func (s *AlertService) Emit(ctx context.Context, batchID string, risk *models.RiskAssessment, coords *models.Coordinates) {
	alertType := models.AlertTypeSuspiciousScan
	if risk.RiskLevel == models.RiskLevelCritical {
		alertType = models.AlertTypeCriticalRisk
	}

	message := "Suspicious activity detected"
	if len(risk.Flags) > 0 {
		message = risk.Flags[0]
	}

	alert := &models.Alert{
		ID:        utils.GenerateAlertID(),
		BatchID:   batchID,
		AlertType: alertType,
		Severity:  risk.RiskLevel,
		RiskScore: risk.RiskScore,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if coords != nil {
		alert.Latitude = sql.NullFloat64{Float64: coords.Latitude, Valid: true}
		alert.Longitude = sql.NullFloat64{Float64: coords.Longitude, Valid: true}
	}

	if err := s.alerts.Insert(ctx, alert); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"batch_id":   batchID,
			"risk_score": risk.RiskScore,
		}).Error("Failed to emit alert")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"batch_id": batchID,
		"severity": risk.RiskLevel,
	}).Warn("Risk alert raised")
}

// List retrieves one page of alerts, newest first, along with the total row
// count for pagination
func (s *AlertService) List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]models.Alert, int, error) {
	alerts, err := s.alerts.List(ctx, unresolvedOnly, utils.ValidateLimit(limit), utils.ValidateOffset(offset))
	if err != nil {
		return nil, 0, err
	}

	total, err := s.alerts.Count(ctx, unresolvedOnly)
	if err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}

// Resolve marks an alert as resolved. The flag only moves false→true.
func (s *AlertService) Resolve(ctx context.Context, alertID string) error {
	if err := utils.ValidateRequired("alert ID", alertID); err != nil {
		return err
	}
	return s.alerts.Resolve(ctx, alertID)
}
