package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/catalog/internal/dberr"
	"github.com/mrlokans/catalog/internal/entities"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: "not_found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, log *zap.Logger, err error, context string) {
	log.Error("Internal error", zap.String("context", context), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "storage"})
}

// respondStoreError maps a catalog error to a status code by its kind.
func respondStoreError(c *gin.Context, log *zap.Logger, err error, context string) {
	switch {
	case errors.Is(err, dberr.ErrMissingKey):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "missing_key"})
	case errors.Is(err, dberr.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, dberr.ErrUnresolvedReference):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "unresolved_reference"})
	case errors.Is(err, dberr.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "database closed", Code: "closed"})
	default:
		respondInternalError(c, log, err, context)
	}
}

// --- Success Response Helpers ---

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseKeyParam extracts a positive entity key from URL parameters.
// Responds with a 400 error and returns false when it is malformed.
func parseKeyParam(c *gin.Context, paramName string) (entities.OptionalKey, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return entities.NoKey, false
	}
	key, err := entities.NewKey(id)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return entities.NoKey, false
	}
	return key, true
}
