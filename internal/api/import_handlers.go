package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"apexleague/paddock/internal/common"
	"apexleague/paddock/internal/models/dtos"
	"apexleague/paddock/internal/services"
	"apexleague/paddock/internal/workers"
)

// ImportSession handles POST /api/v1/sessions/import
// Imports one parsed session payload synchronously and reports where the
// results landed.
func (h *Handlers) ImportSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.DriverResults) == 0 {
			respondWithError(w, http.StatusBadRequest, "driver_results must not be empty")
			return
		}

		resp, err := h.deps.Services.Import.ImportSession(r.Context(), req.SessionPayload, req.RaceID)
		if err != nil {
			if errors.Is(err, services.ErrResolutionFailed) {
				// Parked with the orphan handler; tell the collaborator
				// the payload was accepted but needs admin review.
				respondWithError(w, http.StatusAccepted, "session orphaned: no matching race")
				return
			}
			respondServiceError(w, err)
			return
		}

		h.deps.Metrics.SessionsImportedTotal.WithLabelValues(req.SessionInfo.SessionType).Inc()
		h.deps.Metrics.DriversResolvedTotal.WithLabelValues("resolved").Add(float64(resp.ResolvedDrivers))
		h.deps.Metrics.DriversResolvedTotal.WithLabelValues("unresolved").Add(float64(resp.TotalDrivers - resp.ResolvedDrivers))

		respondWithSuccess(w, http.StatusCreated, resp)
	}
}

// EnqueueSession handles POST /api/v1/sessions/enqueue
// Queues a payload for asynchronous import by the stream workers. Used by
// collaborators that fire-and-forget at session end.
func (h *Handlers) EnqueueSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.DriverResults) == 0 {
			respondWithError(w, http.StatusBadRequest, "driver_results must not be empty")
			return
		}

		item := &common.SessionQueueItem{
			Payload:    req.SessionPayload,
			RaceID:     req.RaceID,
			Source:     "http",
			EnqueuedAt: time.Now().UTC(),
		}
		if err := h.deps.Services.RedisQueue.EnqueueSession(r.Context(), workers.SessionImportStream, item); err != nil {
			log.Printf("[EnqueueSession] Failed to enqueue: %v", err)
			respondWithError(w, http.StatusServiceUnavailable, "import queue unavailable")
			return
		}

		status := "queued"
		respondWithSuccess(w, http.StatusAccepted, &status)
	}
}

// GetSessionResults handles GET /api/v1/sessions/{id}/results
func (h *Handlers) GetSessionResults() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionResultID := pathParam(r, "id")

		rows, err := h.deps.Services.Seasons.SessionResults(r.Context(), sessionResultID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &rows)
	}
}
