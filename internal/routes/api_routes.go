package routes

import (
	"apexleague/paddock/internal/api"
	"apexleague/paddock/internal/metrics"
	"apexleague/paddock/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, handlers *api.Handlers, deps *api.Dependencies) {

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))
		v1.Use(middleware.AuthMiddleware(deps.Repo.Keys)) // global: all routes must be authenticated

		// Ingestion (api key or editor)
		v1.Post("/sessions/import", handlers.ImportSession())
		v1.Post("/sessions/enqueue", handlers.EnqueueSession())

		// Reads
		v1.Get("/sessions/{id}/results", handlers.GetSessionResults())
		v1.Get("/sessions/{id}/history", handlers.GetSessionHistory())
		v1.Get("/races/{id}/history", handlers.GetRaceHistory())
		v1.Get("/orphans", handlers.ListOrphans())
		v1.Get("/seasons", handlers.ListSeasons())
		v1.Get("/seasons/{id}/standings", handlers.GetStandings())
		v1.Get("/seasons/{id}/mappings", handlers.ListMappings())

		// Editor-only group
		v1.Group(func(editor chi.Router) {
			editor.Use(middleware.RequireEditor)

			// Result edits
			editor.Post("/results/{id}/penalties", handlers.AddPenalty())
			editor.Delete("/results/{id}/penalties/{penaltyID}", handlers.RemovePenalty())
			editor.Post("/results/{id}/validate", handlers.ValidateEdit())
			editor.Post("/results/{id}/position", handlers.ChangePosition())
			editor.Post("/results/{id}/disqualify", handlers.DisqualifyDriver())
			editor.Post("/results/{id}/mapping", handlers.UpdateDriverMapping())
			editor.Post("/edits/{historyID}/revert", handlers.RevertEdit())

			// Backups and resets
			editor.Post("/sessions/{id}/backups", handlers.CreateBackup())
			editor.Post("/backups/{backupID}/restore", handlers.RestoreBackup())
			editor.Post("/results/{id}/reset/{driverID}", handlers.ResetDriver())
			editor.Post("/races/{id}/reset", handlers.ResetRace())

			// Orphan review
			editor.Post("/orphans/{id}/process", handlers.ProcessOrphan())
			editor.Post("/orphans/{id}/ignore", handlers.IgnoreOrphan())

			// Season administration
			editor.Post("/seasons", handlers.CreateSeason())
			editor.Post("/seasons/{id}/activate", handlers.ActivateSeason())
			editor.Post("/seasons/{id}/mappings", handlers.CreateMapping())

			// Background jobs
			editor.Post("/jobs/reresolve", handlers.TriggerReResolve())
		})
	})
}
