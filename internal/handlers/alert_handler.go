package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/utils"
)

// AlertHandler handles risk alert HTTP requests
type AlertHandler struct {
	alertService *service.AlertService
}

// NewAlertHandler creates a new alert handler instance
func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// ListAlerts handles GET /alerts
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	unresolvedOnly := c.Query("unresolved") == "true"
	params := utils.NewPaginationParams(limit, offset)

	alerts, total, err := h.alertService.List(c.Request.Context(), unresolvedOnly, params.Limit, params.Offset)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to list alerts", err.Error())
		return
	}

	utils.SendOKResponse(c, gin.H{
		"alerts":     alerts,
		"count":      len(alerts),
		"pagination": utils.CalculatePaginationMetadata(total, params.Limit, params.Offset),
	})
}

// ResolveAlert handles POST /alerts/{alertId}/resolve
func (h *AlertHandler) ResolveAlert(c *gin.Context) {
	alertID := c.Param("alertId")

	if err := h.alertService.Resolve(c.Request.Context(), alertID); err != nil {
		utils.SendServiceError(c, err, models.ErrCodeAlertNotFound, "Alert not found")
		return
	}

	utils.SendOKResponse(c, models.NewSuccessResponse("Alert resolved", gin.H{"alert_id": alertID}))
}
