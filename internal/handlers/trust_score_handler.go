package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/utils"
)

// TrustScoreHandler serves manufacturer trust score queries
type TrustScoreHandler struct {
	trustScoreService *service.TrustScoreService
}

// NewTrustScoreHandler creates a new trust score handler instance
func NewTrustScoreHandler(trustScoreService *service.TrustScoreService) *TrustScoreHandler {
	return &TrustScoreHandler{trustScoreService: trustScoreService}
}

// ListTrustScores handles GET /trust-scores, lowest score first
func (h *TrustScoreHandler) ListTrustScores(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	params := utils.NewPaginationParams(limit, offset)

	scores, total, err := h.trustScoreService.List(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to list trust scores", err.Error())
		return
	}

	utils.SendOKResponse(c, gin.H{
		"trust_scores": scores,
		"count":        len(scores),
		"pagination":   utils.CalculatePaginationMetadata(total, params.Limit, params.Offset),
	})
}
