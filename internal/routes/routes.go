package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/datastore/job-service/internal/handlers"
	"github.com/datastore/job-service/internal/metrics"
	"github.com/datastore/job-service/internal/middleware"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Jobs        *handlers.JobHandler
	Targets     *handlers.TargetHandler
	Maintenance *handlers.MaintenanceHandler
	Datasets    *handlers.DatasetHandler
	Backend     *handlers.BackendHandler
	Health      *handlers.HealthHandler

	// Metrics serves the Prometheus exposition. Nil disables /metrics.
	Metrics http.Handler
}

// NewRouter sets up the API routes. requireUser guards job creation.
func NewRouter(hs Handlers, requireUser func(http.Handler) http.Handler, sink metrics.Sink, logger zerolog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(logger, sink))

	// Health check routes
	router.HandleFunc("/health/alive", hs.Health.Alive).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", hs.Health.Ready).Methods(http.MethodGet)

	// Jobs
	router.HandleFunc("/jobs", hs.Jobs.ListJobs).Methods(http.MethodGet)
	router.Handle("/jobs", requireUser(http.HandlerFunc(hs.Jobs.CreateJobs))).Methods(http.MethodPost)
	router.HandleFunc("/jobs/{jobID}", hs.Jobs.GetJob).Methods(http.MethodGet)
	router.HandleFunc("/jobs/{jobID}", hs.Jobs.UpdateJob).Methods(http.MethodPut)

	// Targets
	router.HandleFunc("/targets", hs.Targets.ListTargets).Methods(http.MethodGet)
	router.HandleFunc("/targets/{name}/jobs", hs.Targets.ListTargetJobs).Methods(http.MethodGet)

	// Maintenance
	router.HandleFunc("/maintenance-status", hs.Maintenance.SetStatus).Methods(http.MethodPost)
	router.HandleFunc("/maintenance-status", hs.Maintenance.GetStatus).Methods(http.MethodGet)
	router.HandleFunc("/maintenance-history", hs.Maintenance.History).Methods(http.MethodGet)

	// Importable datasets
	router.HandleFunc("/importable-datasets", hs.Datasets.List).Methods(http.MethodGet)
	router.HandleFunc("/importable-datasets/{name}", hs.Datasets.Delete).Methods(http.MethodDelete)

	// Backend selection
	router.HandleFunc("/backend", hs.Backend.Current).Methods(http.MethodGet)
	router.HandleFunc("/backend/swap", hs.Backend.Swap).Methods(http.MethodPost)

	if hs.Metrics != nil {
		router.Handle("/metrics", hs.Metrics).Methods(http.MethodGet)
	}

	return router
}
