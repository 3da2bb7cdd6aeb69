package ui

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "prism/internal/errors"

	charmlog "github.com/charmbracelet/log"
)

// respondJSON writes v as the JSON response body
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps an application error onto an HTTP status and writes a
// JSON error body. Unstructured errors become a generic 500 so internals
// never leak to clients.
func respondError(w http.ResponseWriter, logger *charmlog.Logger, err error) {
	status := http.StatusInternalServerError
	message := "An internal error occurred"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status = statusForCode(appErr.Code)
		if status < http.StatusInternalServerError {
			message = appErr.Message
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForCode translates error codes to HTTP statuses
func statusForCode(code string) int {
	switch code {
	case apperrors.CodeValidationError, apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeNoMatchingColumns:
		return http.StatusUnprocessableEntity
	case apperrors.CodeDuplicateProject:
		return http.StatusConflict
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
