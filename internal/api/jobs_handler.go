package api

import (
	"net/http"
	"time"

	"apexleague/paddock/internal/models/dtos"
)

// TriggerReResolve handles POST /api/v1/jobs/reresolve
// Re-runs identity resolution over unresolved driver rows. Admins call
// this after registering mappings for past seasons.
func (h *Handlers) TriggerReResolve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		scanned, resolved, err := h.deps.Jobs.ReResolve.Run(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}

		h.deps.Metrics.ReResolveJobDuration.Observe(time.Since(start).Seconds())
		respondWithSuccess(w, http.StatusOK, &dtos.ReResolveResponse{
			Scanned:  scanned,
			Resolved: resolved,
		})
	}
}
