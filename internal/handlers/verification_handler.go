package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/utils"
)

// VerificationHandler handles batch verification HTTP requests
type VerificationHandler struct {
	verificationService *service.VerificationService
}

// NewVerificationHandler creates a new verification handler instance
func NewVerificationHandler(verificationService *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// VerifyAPIRequest is the request body for POST /verify. Coordinates are
// optional but must come as a pair. Persist defaults to true; false turns the
// call into a read-only inspection with no scan append, alert or audit entry.
type VerifyAPIRequest struct {
	BatchID   string   `json:"batch_id" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Persist   *bool    `json:"persist"`
}

// Verify handles POST /verify
func (h *VerificationHandler) Verify(c *gin.Context) {
	var apiRequest VerifyAPIRequest
	if err := c.ShouldBindJSON(&apiRequest); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	if (apiRequest.Latitude == nil) != (apiRequest.Longitude == nil) {
		utils.SendValidationError(c, "latitude and longitude must be provided together")
		return
	}

	request := &service.VerifyRequest{
		BatchID: apiRequest.BatchID,
		ActorID: utils.GetActorIDFromContext(c),
		Persist: true,
	}
	if apiRequest.Persist != nil {
		request.Persist = *apiRequest.Persist
	}
	if apiRequest.Latitude != nil {
		request.Coordinates = &models.Coordinates{
			Latitude:  *apiRequest.Latitude,
			Longitude: *apiRequest.Longitude,
		}
	}

	outcome, err := h.verificationService.Verify(c.Request.Context(), request)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeBatchNotFound, "Batch not found")
		return
	}

	utils.SendOKResponse(c, outcome)
}
