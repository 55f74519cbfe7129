package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contentsage/contentsage-api/internal/database"
	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/pkg/logger"
)

// Error codes returned in the error envelope.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeValidationFailed   = "validation_failed"
	CodeUnknownBackend     = "unknown_backend"
	CodeBackendUnavailable = "backend_unavailable"
	CodeBackendTimeout     = "backend_timeout"
	CodeClientClosed       = "client_closed_request"
	CodeGenerationFailed   = "generation_failed"
	CodeNotFound           = "not_found"
	CodeInternalError      = "internal_error"
)

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type errorResponse struct {
	Success   bool      `json:"success"`
	Error     errorBody `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func abortWith(c *gin.Context, status int, code, message string, details ...string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Error:     errorBody{Code: code, Message: message, Details: details},
		Timestamp: time.Now().UTC(),
	})
}

// StatusClientClosedRequest is the nginx convention for a request the client
// abandoned before the response was written.
const StatusClientClosedRequest = 499

// writeError maps a domain error onto a status and a client-safe message.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrUnknownBackend):
		abortWith(c, http.StatusBadRequest, CodeUnknownBackend, err.Error())
	case errors.Is(err, content.ErrInvalidContentKind), errors.Is(err, content.ErrEmptyTopic):
		abortWith(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
	case errors.Is(err, context.Canceled):
		logger.Info(c.Request.Context(), "request cancelled by client", "path", c.FullPath())
		abortWith(c, StatusClientClosedRequest, CodeClientClosed, "request cancelled")
	case errors.Is(err, content.ErrBackendTimeout):
		abortWith(c, http.StatusGatewayTimeout, CodeBackendTimeout, err.Error())
	case errors.Is(err, content.ErrBackendUnavailable):
		abortWith(c, http.StatusServiceUnavailable, CodeBackendUnavailable, err.Error())
	case errors.Is(err, database.ErrNotFound):
		abortWith(c, http.StatusNotFound, CodeNotFound, "record not found")
	case errors.Is(err, content.ErrGenerationFailed):
		logger.Error(c.Request.Context(), "generation failed", err)
		abortWith(c, http.StatusInternalServerError, CodeGenerationFailed, "content generation failed")
	default:
		logger.Error(c.Request.Context(), "request failed", err, "path", c.FullPath())
		abortWith(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
	}
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC(),
	})
}
