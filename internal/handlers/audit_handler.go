package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/utils"
)

// AuditHandler serves the compliance view over the audit trail
type AuditHandler struct {
	auditQueryService *service.AuditQueryService
}

// NewAuditHandler creates a new audit handler instance
func NewAuditHandler(auditQueryService *service.AuditQueryService) *AuditHandler {
	return &AuditHandler{auditQueryService: auditQueryService}
}

// ListAuditLogs handles GET /audit-logs. An optional entity_type query
// parameter restricts the listing to one entity kind (batch, alert, scan).
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	entityType := c.Query("entity_type")
	params := utils.NewPaginationParams(limit, offset)

	entries, total, err := h.auditQueryService.ListRecent(c.Request.Context(), entityType, params.Limit, params.Offset)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to list audit logs", err.Error())
		return
	}

	utils.SendOKResponse(c, gin.H{
		"audit_logs": entries,
		"count":      len(entries),
		"pagination": utils.CalculatePaginationMetadata(total, params.Limit, params.Offset),
	})
}
