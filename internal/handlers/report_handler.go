package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/utils"
)

// ReportHandler handles consumer report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler instance
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SubmitReportAPIRequest is the request body for POST /reports
type SubmitReportAPIRequest struct {
	BatchID     string `json:"batch_id" binding:"required"`
	ReportType  string `json:"report_type" binding:"required"`
	Description string `json:"description"`
}

// SubmitReport handles POST /reports
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	var apiRequest SubmitReportAPIRequest
	if err := c.ShouldBindJSON(&apiRequest); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	report, err := h.reportService.Submit(c.Request.Context(), &service.SubmitReportRequest{
		BatchID:     apiRequest.BatchID,
		ReporterID:  utils.GetActorIDFromContext(c),
		ReportType:  apiRequest.ReportType,
		Description: apiRequest.Description,
	})
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeBatchNotFound, "Batch not found")
		return
	}

	utils.SendCreatedResponse(c, report)
}

// ListBatchReports handles GET /batches/{batchId}/reports
func (h *ReportHandler) ListBatchReports(c *gin.Context) {
	batchID := c.Param("batchId")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	params := utils.NewPaginationParams(limit, offset)

	reports, total, err := h.reportService.ListByBatch(c.Request.Context(), batchID, params.Limit, params.Offset)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeBatchNotFound, "Batch not found")
		return
	}

	utils.SendOKResponse(c, gin.H{
		"reports":    reports,
		"count":      len(reports),
		"pagination": utils.CalculatePaginationMetadata(total, params.Limit, params.Offset),
	})
}
