package api

import (
	"encoding/json"
	"net/http"

	"apexleague/paddock/internal/auth"
	"apexleague/paddock/internal/constants"
	"apexleague/paddock/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

func pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// editorID pulls the acting editor out of the request claims. The editor
// middleware guarantees claims exist on these routes.
func editorID(r *http.Request) string {
	claims := auth.GetUserClaims(r.Context())
	if claims == nil {
		return "unknown"
	}
	return claims.UserID()
}

// AddPenalty handles POST /api/v1/results/{id}/penalties
// {id} is the driver result row the penalty stacks onto.
func (h *Handlers) AddPenalty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverResultID := pathParam(r, "id")

		var req dtos.PenaltyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		penalty, err := h.deps.Services.Edits.AddPenalty(r.Context(), driverResultID, req.Seconds, req.Reason, editorID(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		h.deps.Metrics.EditsAppliedTotal.WithLabelValues(constants.EditTypePenalty).Inc()
		respondWithSuccess(w, http.StatusCreated, penalty)
	}
}

// RemovePenalty handles DELETE /api/v1/results/{id}/penalties/{penaltyID}
func (h *Handlers) RemovePenalty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverResultID := pathParam(r, "id")
		penaltyID := pathParam(r, "penaltyID")

		if err := h.deps.Services.Edits.RemovePenalty(r.Context(), driverResultID, penaltyID, editorID(r)); err != nil {
			respondServiceError(w, err)
			return
		}

		h.deps.Metrics.EditsAppliedTotal.WithLabelValues(constants.EditTypePenalty).Inc()
		status := "removed"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

// ChangePosition handles POST /api/v1/results/{id}/position
// {id} is the session result; the body names the driver entry to move.
func (h *Handlers) ChangePosition() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionResultID := pathParam(r, "id")

		var req dtos.PositionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := h.deps.Services.Edits.ChangePosition(r.Context(), sessionResultID, req.DriverResultID, req.NewPosition, req.Reason, editorID(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		h.deps.Metrics.EditsAppliedTotal.WithLabelValues(constants.EditTypePositionChange).Inc()
		status := "updated"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

// ValidateEdit handles POST /api/v1/results/{id}/validate
// Pre-checks that the session and driver entry exist before a client
// commits to an edit; no write happens.
func (h *Handlers) ValidateEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionResultID := pathParam(r, "id")

		var req dtos.ValidateEditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := h.deps.Services.Edits.ValidateEdit(r.Context(), sessionResultID, req.DriverResultID); err != nil {
			respondServiceError(w, err)
			return
		}

		status := "valid"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

// DisqualifyDriver handles POST /api/v1/results/{id}/disqualify
func (h *Handlers) DisqualifyDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionResultID := pathParam(r, "id")

		var req dtos.DisqualifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := h.deps.Services.Edits.DisqualifyDriver(r.Context(), sessionResultID, req.DriverResultID, req.Reason, editorID(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		h.deps.Metrics.EditsAppliedTotal.WithLabelValues(constants.EditTypeDisqualification).Inc()
		status := "disqualified"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

// UpdateDriverMapping handles POST /api/v1/results/{id}/mapping
// Reassigns which member a driver entry resolves to, or clears it.
func (h *Handlers) UpdateDriverMapping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionResultID := pathParam(r, "id")

		var req dtos.MappingEditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err := h.deps.Services.Edits.UpdateDriverUserMapping(r.Context(), sessionResultID, req.DriverResultID, req.MemberID, req.Reason, editorID(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		h.deps.Metrics.EditsAppliedTotal.WithLabelValues(constants.EditTypeUserMapping).Inc()
		status := "updated"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

// RevertEdit handles POST /api/v1/edits/{historyID}/revert
func (h *Handlers) RevertEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		historyID := pathParam(r, "historyID")

		if err := h.deps.Services.Edits.RevertEdit(r.Context(), historyID, editorID(r)); err != nil {
			respondServiceError(w, err)
			return
		}

		h.deps.Metrics.EditsRevertedTotal.Inc()
		status := "reverted"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

// GetSessionHistory handles GET /api/v1/sessions/{id}/history
func (h *Handlers) GetSessionHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionResultID := pathParam(r, "id")

		entries, err := h.deps.Services.Edits.GetSessionHistory(r.Context(), sessionResultID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &entries)
	}
}

// GetRaceHistory handles GET /api/v1/races/{id}/history
func (h *Handlers) GetRaceHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raceID := pathParam(r, "id")

		entries, err := h.deps.Services.Edits.GetRaceHistory(r.Context(), raceID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &entries)
	}
}
