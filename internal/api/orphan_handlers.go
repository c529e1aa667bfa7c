package api

import (
	"encoding/json"
	"net/http"

	"apexleague/paddock/internal/models/dtos"
)

// ListOrphans handles GET /api/v1/orphans
// Returns pending orphaned sessions awaiting admin review.
func (h *Handlers) ListOrphans() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orphans, err := h.deps.Services.Orphans.ListPending(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &orphans)
	}
}

// ProcessOrphan handles POST /api/v1/orphans/{id}/process
// Links an orphaned payload to a race chosen by the admin.
func (h *Handlers) ProcessOrphan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orphanID := pathParam(r, "id")

		var req dtos.OrphanProcessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.RaceID == "" {
			respondWithError(w, http.StatusBadRequest, "race_id is required")
			return
		}

		if err := h.deps.Services.Orphans.ProcessOrphanedSession(r.Context(), orphanID, req.RaceID); err != nil {
			respondServiceError(w, err)
			return
		}

		status := "processed"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

// IgnoreOrphan handles POST /api/v1/orphans/{id}/ignore
func (h *Handlers) IgnoreOrphan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orphanID := pathParam(r, "id")

		if err := h.deps.Services.Orphans.IgnoreOrphanedSession(r.Context(), orphanID); err != nil {
			respondServiceError(w, err)
			return
		}

		status := "ignored"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}
