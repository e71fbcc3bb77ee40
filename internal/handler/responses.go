package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
)

// Standard response types for consistent API responses

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Generic HTTP error messages for client responses. These intentionally
// do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgServerError           = "Server error occurred. Please try again."
)

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps domain errors to HTTP statuses; anything
// unrecognized is a 500 with a generic message.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		respondError(w, http.StatusNotFound, domain.ErrMsgItemNotFound)
	case errors.Is(err, domain.ErrItemExists):
		respondError(w, http.StatusConflict, domain.ErrMsgItemExists)
	case errors.Is(err, domain.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, domain.ErrMsgInvalidAmount)
	default:
		respondError(w, http.StatusInternalServerError, ErrMsgServerError)
	}
}
