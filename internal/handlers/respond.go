package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
)

// ErrorResponse is the failure envelope shared by all handlers. A failed
// request always pairs success=false with a non-2xx status.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Success: false, Message: message})
}

// statusForError maps service-layer sentinel errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrSyncInProgress):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrCredentialsMissing):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUpstreamAuthExpired):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
