package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clientelab/cliente-analytics-api/internal/models"
)

// handleError maps service errors to HTTP responses
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	// Check for custom AppError
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status := mapErrorCodeToHTTPStatus(appErr.Code)
		if status == http.StatusInternalServerError {
			logger.Error("internal server error",
				slog.String("error", err.Error()),
			)
		}
		respondError(w, status, appErr.Code, appErr.Message)
		return
	}

	// Check for common errors
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())

	case errors.Is(err, models.ErrDuplicate):
		respondError(w, http.StatusBadRequest, "DUPLICATE_ID", err.Error())

	default:
		// Log internal errors but don't expose details to client
		logger.Error("internal server error",
			slog.String("error", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case "INVALID_INPUT":
		return http.StatusBadRequest
	case "DUPLICATE_ID":
		return http.StatusBadRequest
	case "NOT_FOUND":
		return http.StatusNotFound
	case "PIPELINE_ERROR":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
