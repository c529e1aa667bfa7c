package api

import (
	"encoding/json"
	"net/http"
	"time"

	"apexleague/paddock/internal/models/dtos/responses"
	"apexleague/paddock/internal/services"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := responses.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := responses.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithConflict(w http.ResponseWriter, message, conflictID string) {
	resp := responses.APIResponse[any]{
		Status:     "error",
		Timestamp:  time.Now().UTC(),
		Error:      message,
		ConflictID: conflictID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)

	_ = json.NewEncoder(w).Encode(resp)
}

// respondServiceError maps the engine's error taxonomy onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case services.IsValidation(err):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case services.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, err.Error())
	case services.IsConflict(err):
		respondWithConflict(w, err.Error(), services.ConflictID(err))
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}
