package routes

import (
	"net/http"
	"time"

	"apexleague/paddock/internal/api"
	"apexleague/paddock/internal/db"
	"apexleague/paddock/internal/logging"
	"apexleague/paddock/internal/metrics"
	"apexleague/paddock/internal/middleware"
	"apexleague/paddock/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key", "X-Editor"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	// health check (unauthenticated)
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, deps.Services.Redis, upSince))

	// Stream workers drain the async import queue
	workers.InitWorkers(deps.Services.RedisQueue, deps.Services.Import)

	// Register API routes
	RegisterAPIRoutes(r, metricsReg, handlers, deps)

	return r
}
