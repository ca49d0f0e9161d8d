package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/utils"
)

// ScanHandler serves scan history queries
type ScanHandler struct {
	scanQueryService *service.ScanQueryService
}

// NewScanHandler creates a new scan handler instance
func NewScanHandler(scanQueryService *service.ScanQueryService) *ScanHandler {
	return &ScanHandler{scanQueryService: scanQueryService}
}

// ListBatchScans handles GET /batches/{batchId}/scans
func (h *ScanHandler) ListBatchScans(c *gin.Context) {
	batchID := c.Param("batchId")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	params := utils.NewPaginationParams(limit, offset)

	scans, total, err := h.scanQueryService.ListByBatch(c.Request.Context(), batchID, params.Limit, params.Offset)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeBatchNotFound, "Batch not found")
		return
	}

	utils.SendOKResponse(c, gin.H{
		"scans":      scans,
		"count":      len(scans),
		"pagination": utils.CalculatePaginationMetadata(total, params.Limit, params.Offset),
	})
}

// ListRecentScans handles GET /scans
func (h *ScanHandler) ListRecentScans(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	params := utils.NewPaginationParams(limit, offset)

	scans, total, err := h.scanQueryService.ListRecent(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to list scans", err.Error())
		return
	}

	utils.SendOKResponse(c, gin.H{
		"scans":      scans,
		"count":      len(scans),
		"pagination": utils.CalculatePaginationMetadata(total, params.Limit, params.Offset),
	})
}
