package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// statusForError maps the application error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrBelowThreshold):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrUploadFailed):
		return http.StatusBadGateway
	case errors.Is(err, apperrors.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err using the taxonomy mapping. Internal errors are logged at
// error level and hidden behind fallback; client errors are echoed back.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable && status != http.StatusBadGateway {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Success: false, Message: fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, ErrorResponse{Success: false, Message: err.Error()})
}

// badRequest responds 400 for malformed input that never reached a service.
func badRequest(c *gin.Context, logger *slog.Logger, msg string, err error) {
	if err != nil {
		logger.Warn(msg, slog.String("error", err.Error()))
		msg = msg + ": " + err.Error()
	} else {
		logger.Warn(msg)
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: msg})
}
