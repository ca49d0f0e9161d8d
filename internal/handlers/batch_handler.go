package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/utils"
)

// BatchHandler handles batch lifecycle HTTP requests
type BatchHandler struct {
	batchService *service.BatchService
}

// NewBatchHandler creates a new batch handler instance
func NewBatchHandler(batchService *service.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// RegisterBatchAPIRequest is the request body for POST /batches
type RegisterBatchAPIRequest struct {
	BatchID           string `json:"batch_id" binding:"required"`
	ManufacturerName  string `json:"manufacturer_name" binding:"required"`
	MedicineName      string `json:"medicine_name"`
	Dosage            string `json:"dosage"`
	CountryOfOrigin   string `json:"country_of_origin"`
	ManufacturingDate string `json:"manufacturing_date"`
	ExpiryDate        string `json:"expiry_date"`
	StorageConditions string `json:"storage_conditions"`
}

// RegisterBatch handles POST /batches
func (h *BatchHandler) RegisterBatch(c *gin.Context) {
	var apiRequest RegisterBatchAPIRequest
	if err := c.ShouldBindJSON(&apiRequest); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	request := &service.RegisterBatchRequest{
		BatchID:           apiRequest.BatchID,
		ManufacturerName:  apiRequest.ManufacturerName,
		MedicineName:      apiRequest.MedicineName,
		Dosage:            apiRequest.Dosage,
		CountryOfOrigin:   apiRequest.CountryOfOrigin,
		StorageConditions: apiRequest.StorageConditions,
		ActorID:           utils.GetActorIDFromContext(c),
	}

	if apiRequest.ManufacturingDate != "" {
		t, err := utils.ParseDate(apiRequest.ManufacturingDate)
		if err != nil {
			utils.SendValidationError(c, "manufacturing_date must be an ISO date")
			return
		}
		request.ManufacturingDate = &t
	}
	if apiRequest.ExpiryDate != "" {
		t, err := utils.ParseDate(apiRequest.ExpiryDate)
		if err != nil {
			utils.SendValidationError(c, "expiry_date must be an ISO date")
			return
		}
		request.ExpiryDate = &t
	}

	batch, err := h.batchService.Register(c.Request.Context(), request)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeBatchNotFound, "Batch not found")
		return
	}

	utils.SendCreatedResponse(c, batch)
}

// GetBatch handles GET /batches/{batchId}. Admin lookup: no scan event is
// appended and no alert is emitted.
func (h *BatchHandler) GetBatch(c *gin.Context) {
	batchID := c.Param("batchId")

	batch, err := h.batchService.Get(c.Request.Context(), batchID)
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeBatchNotFound, "Batch not found")
		return
	}

	utils.SendOKResponse(c, batch)
}

// ListBatches handles GET /batches
func (h *BatchHandler) ListBatches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	params := utils.NewPaginationParams(limit, offset)

	batches, total, err := h.batchService.List(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to list batches", err.Error())
		return
	}

	utils.SendOKResponse(c, gin.H{
		"batches":    batches,
		"count":      len(batches),
		"pagination": utils.CalculatePaginationMetadata(total, params.Limit, params.Offset),
	})
}

// RecallBatch handles POST /batches/{batchId}/recall
func (h *BatchHandler) RecallBatch(c *gin.Context) {
	batchID := c.Param("batchId")
	actorID := utils.GetActorIDFromContext(c)

	if err := h.batchService.Recall(c.Request.Context(), batchID, actorID); err != nil {
		utils.SendServiceError(c, err, models.ErrCodeBatchNotFound, "Batch not found")
		return
	}

	utils.SendOKResponse(c, models.NewSuccessResponse("Batch recalled", gin.H{"batch_id": batchID}))
}

// TransferBatchAPIRequest is the request body for POST /batches/{batchId}/transfer
type TransferBatchAPIRequest struct {
	NewOwner string `json:"new_owner" binding:"required"`
}

// TransferBatch handles POST /batches/{batchId}/transfer
func (h *BatchHandler) TransferBatch(c *gin.Context) {
	batchID := c.Param("batchId")

	var apiRequest TransferBatchAPIRequest
	if err := c.ShouldBindJSON(&apiRequest); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	txHash, err := h.batchService.Transfer(c.Request.Context(), batchID, apiRequest.NewOwner, utils.GetActorIDFromContext(c))
	if err != nil {
		utils.SendServiceError(c, err, models.ErrCodeBatchNotFound, "Batch not found")
		return
	}

	utils.SendOKResponse(c, gin.H{"batch_id": batchID, "new_owner": apiRequest.NewOwner, "tx_hash": txHash})
}
