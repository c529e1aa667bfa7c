package api

import (
	"net/http"

	"apexleague/paddock/internal/models/dtos"
)

// CreateBackup handles POST /api/v1/sessions/{id}/backups
// Snapshots the session's current rows before risky manual edits.
func (h *Handlers) CreateBackup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionResultID := pathParam(r, "id")

		backup, err := h.deps.Services.Backups.CreateBackup(r.Context(), sessionResultID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		h.deps.Metrics.BackupsCreatedTotal.Inc()
		respondWithSuccess(w, http.StatusCreated, &dtos.BackupResponse{
			BackupID:  backup.ID,
			CreatedAt: backup.CreatedAt,
		})
	}
}

// RestoreBackup handles POST /api/v1/backups/{backupID}/restore
func (h *Handlers) RestoreBackup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		backupID := pathParam(r, "backupID")

		if err := h.deps.Services.Backups.RestoreFromBackup(r.Context(), backupID); err != nil {
			respondServiceError(w, err)
			return
		}

		status := "restored"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

// ResetDriver handles POST /api/v1/results/{id}/reset/{driverID}
// Restores one driver row to its import-time snapshot.
func (h *Handlers) ResetDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionResultID := pathParam(r, "id")
		driverResultID := pathParam(r, "driverID")

		if err := h.deps.Services.Backups.ResetDriverToOriginal(r.Context(), sessionResultID, driverResultID); err != nil {
			respondServiceError(w, err)
			return
		}

		status := "reset"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

// ResetRace handles POST /api/v1/races/{id}/reset
// Restores every session of the race to its import-time snapshots.
func (h *Handlers) ResetRace() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raceID := pathParam(r, "id")

		if err := h.deps.Services.Backups.ResetRaceToOriginal(r.Context(), raceID); err != nil {
			respondServiceError(w, err)
			return
		}

		status := "reset"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}
