package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/logger"
)

// statusMessage is the body for deletes and errors. Errors carry the
// message under "detail", the shape the frontend already parses.
type statusMessage struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, statusMessage{Detail: message})
}

func respondDeleted(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, statusMessage{Success: true, Message: message})
}

// respondServiceError maps lifecycle-engine errors onto HTTP statuses:
// missing references are 404, stock shortfalls and illegal status
// transitions are 422, field-rule violations 400, deletes blocked by
// referencing rentals 409. Anything else is a 500 with the detail kept
// out of the response.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case domain.IsInsufficientStock(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid username or password")
	default:
		logger.Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
