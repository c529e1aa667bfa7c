package api

import (
	"encoding/json"
	"net/http"

	"apexleague/paddock/internal/models/dtos"
	gormModels "apexleague/paddock/internal/models/gorm"
)

// GetStandings handles GET /api/v1/seasons/{id}/standings
// Standings are derived on demand; nothing is persisted.
func (h *Handlers) GetStandings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID := pathParam(r, "id")

		standings, err := h.deps.Services.Standings.Compute(r.Context(), seasonID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &standings)
	}
}

// CreateSeason handles POST /api/v1/seasons
func (h *Handlers) CreateSeason() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.SeasonCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		season, err := h.deps.Services.Seasons.CreateSeason(r.Context(), req.Name, req.Year)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusCreated, season)
	}
}

// ActivateSeason handles POST /api/v1/seasons/{id}/activate
func (h *Handlers) ActivateSeason() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID := pathParam(r, "id")

		if err := h.deps.Services.Seasons.ActivateSeason(r.Context(), seasonID); err != nil {
			respondServiceError(w, err)
			return
		}

		status := "activated"
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

// ListSeasons handles GET /api/v1/seasons
func (h *Handlers) ListSeasons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasons, err := h.deps.Services.Seasons.ListSeasons(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &seasons)
	}
}

// ListMappings handles GET /api/v1/seasons/{id}/mappings
func (h *Handlers) ListMappings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID := pathParam(r, "id")

		mappings, err := h.deps.Repo.Mappings.ActiveBySeason(r.Context(), seasonID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondWithSuccess(w, http.StatusOK, &mappings)
	}
}

// CreateMapping handles POST /api/v1/seasons/{id}/mappings
// Registers a simulator identity for a member, retiring any active mapping
// that already claims the same driver name in the season.
func (h *Handlers) CreateMapping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID := pathParam(r, "id")

		var req dtos.MappingCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.MemberID == "" || req.DriverName == "" {
			respondWithError(w, http.StatusBadRequest, "member_id and driver_name are required")
			return
		}

		if err := h.deps.Repo.Mappings.DeactivateForIdentity(r.Context(), seasonID, req.DriverName); err != nil {
			respondServiceError(w, err)
			return
		}

		mapping := &gormModels.DriverMapping{
			SeasonID:   seasonID,
			MemberID:   req.MemberID,
			DriverName: req.DriverName,
			CarNumber:  req.CarNumber,
			TeamName:   req.TeamName,
			NetworkID:  req.NetworkID,
			SteamID:    req.SteamID,
			IsActive:   true,
		}
		if err := h.deps.Repo.Mappings.Create(r.Context(), mapping); err != nil {
			respondServiceError(w, err)
			return
		}

		// New mappings must be visible to the next resolution pass.
		h.deps.Services.Resolver.InvalidateSeason(seasonID)

		respondWithSuccess(w, http.StatusCreated, mapping)
	}
}
