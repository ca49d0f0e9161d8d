package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/models"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/serviceerror"
)

// SendSuccessResponse sends a successful JSON response
func SendSuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendErrorResponse sends an error JSON response
func SendErrorResponse(c *gin.Context, statusCode int, errCode, message, details string) {
	c.JSON(statusCode, models.ErrorResponse{
		Code:    errCode,
		Message: message,
		Details: details,
	})
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendNoContentResponse sends a 204 No Content response
func SendNoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SendBadRequestError sends a 400 Bad Request error
func SendBadRequestError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeBadRequest, message, details)
}

// SendNotFoundError sends a 404 Not Found error
func SendNotFoundError(c *gin.Context, errCode, message string) {
	SendErrorResponse(c, http.StatusNotFound, errCode, message, "")
}

// SendConflictError sends a 409 Conflict error
func SendConflictError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusConflict, models.ErrCodeConflict, message, "")
}

// SendInternalServerError sends a 500 Internal Server Error
func SendInternalServerError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusInternalServerError, models.ErrCodeInternalError, message, details)
}

// SendValidationError sends a validation error response
func SendValidationError(c *gin.Context, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeValidationError, "Validation failed", details)
}

// SendServiceError maps a service-layer error to its HTTP representation
func SendServiceError(c *gin.Context, err error, notFoundCode, notFoundMessage string) {
	switch {
	case serviceerror.IsValidation(err):
		SendValidationError(c, err.Error())
	case errors.Is(err, serviceerror.ErrNotFound):
		SendNotFoundError(c, notFoundCode, notFoundMessage)
	case errors.Is(err, serviceerror.ErrConflict):
		SendConflictError(c, err.Error())
	case errors.Is(err, serviceerror.ErrSourceUnavailable):
		SendErrorResponse(c, http.StatusBadGateway, models.ErrCodeSourceUnavailable, "Upstream source unavailable", err.Error())
	default:
		SendInternalServerError(c, "Request failed", err.Error())
	}
}

// GetActorIDFromContext extracts the acting user ID from context
func GetActorIDFromContext(c *gin.Context) string {
	actorID, exists := c.Get("actorID")
	if !exists {
		return ""
	}
	return actorID.(string)
}

// GetCorrelationIDFromContext extracts correlation ID from context
func GetCorrelationIDFromContext(c *gin.Context) string {
	correlationID, exists := c.Get("correlationID")
	if !exists {
		return uuid.New().String()
	}
	return correlationID.(string)
}

// SetContextValue sets a value in the Gin context
func SetContextValue(c *gin.Context, key string, value interface{}) {
	c.Set(key, value)
}
