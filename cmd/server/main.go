package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/datastore/job-service/internal/authz"
	"github.com/datastore/job-service/internal/config"
	"github.com/datastore/job-service/internal/handlers"
	"github.com/datastore/job-service/internal/metrics"
	"github.com/datastore/job-service/internal/migration"
	"github.com/datastore/job-service/internal/repository"
	"github.com/datastore/job-service/internal/routes"
	"github.com/datastore/job-service/internal/storage"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

type application struct {
	config   *config.Config
	backends *repository.Switch
	metrics  metrics.Sink
	registry *prometheus.Registry
	logger   zerolog.Logger
	stopJWKS func()
}

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up structured, level-based logging.
	logger := newLogger(cfg.Log)
	log.SetFlags(0)
	log.SetOutput(logger)

	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: metrics.NoopSink{},
	}
	if cfg.Metrics.Enabled {
		app.registry = prometheus.NewRegistry()
		app.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		app.metrics = metrics.NewPrometheusSink(app.registry, logger)
	}

	// Initialize the job stores.
	if err := app.initBackends(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize backends")
	}

	// Initialize the HTTP router and middleware.
	router := app.initRouter()
	corsHandler := h.CORS(
		h.AllowedOrigins(cfg.CORS.AllowedOrigins),
		h.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization", "User-Info", "X-API-Key"}),
		h.AllowCredentials(),
	)(router)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler)

	logger.Info().Msg("Application terminated.")
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	return zerolog.New(consoleWriter).With().Timestamp().Logger()
}

// initBackends connects the document store and, when a database URL is set,
// the relational store. The configured backend starts active.
func (app *application) initBackends() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	var mongoRepo, postgresRepo repository.JobRepository

	client, err := repository.ConnectMongo(ctx, app.config.MongoDB.URL, app.config.MongoDB.Username, app.config.MongoDB.Password)
	if err != nil {
		if app.config.Backend == repository.BackendMongo {
			return err
		}
		app.logger.Warn().Err(err).Msg("MongoDB unavailable; continuing without it")
	} else {
		repo := repository.NewMongoRepository(client, app.config.MongoDB.Database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		mongoRepo = repo
	}

	if app.config.DatabaseURL != "" {
		db, err := sql.Open("postgres", app.config.DatabaseURL)
		if err != nil {
			return err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return err
		}
		// Run database migrations.
		if err := migration.RunMigrations(db, app.logger); err != nil {
			_ = db.Close()
			return err
		}
		postgresRepo = repository.NewPostgresRepository(db)
	}

	primary, secondary := mongoRepo, postgresRepo
	if app.config.Backend == repository.BackendPostgres {
		primary, secondary = postgresRepo, mongoRepo
	}
	if app.config.MigrationAPIKey == "" {
		app.logger.Info().Msg("No migration API key configured; backend swapping disabled")
	}
	app.backends = repository.NewSwitch(primary, secondary, app.config.MigrationAPIKey)

	if sink, ok := app.metrics.(*metrics.PrometheusSink); ok {
		sink.SetActiveBackend(primary.Name())
	}
	app.logger.Info().Str("backend", primary.Name()).Msg("Job store ready")
	return nil
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter() http.Handler {
	logger := app.logger

	requireUser, err := app.initAuthorization()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure authorization")
	}

	hs := routes.Handlers{
		Jobs:        handlers.NewJobHandler(app.backends, app.config.BumpEnabled, app.metrics, logger),
		Targets:     handlers.NewTargetHandler(app.backends, logger),
		Maintenance: handlers.NewMaintenanceHandler(app.backends, logger),
		Datasets:    handlers.NewDatasetHandler(storage.NewInputDirectory(app.config.InputDir, logger), logger),
		Backend:     handlers.NewBackendHandler(app.backends, app.metrics, logger),
		Health:      handlers.NewHealthHandler(app.backends, logger),
	}
	if app.registry != nil {
		hs.Metrics = promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{})
	}

	return routes.NewRouter(hs, requireUser, app.metrics, logger)
}

func (app *application) initAuthorization() (func(http.Handler) http.Handler, error) {
	cfg := authz.Config{
		Enabled:      app.config.Auth.Enabled,
		Audience:     app.config.Auth.Audience,
		RequiredRole: app.config.Auth.RequiredRole,
	}
	if cfg.Enabled {
		keyfunc, stop, err := authz.NewJWKSKeyfunc(app.config.Auth.JWKSURL, app.config.Auth.RefreshInterval, app.logger)
		if err != nil {
			return nil, err
		}
		cfg.Keyfunc = keyfunc
		app.stopJWKS = stop
	} else {
		app.logger.Warn().Msg("Authorization disabled; jobs are created as the anonymous user")
	}
	return authz.RequireUser(authz.NewJWTAuthorizer(cfg), app.logger), nil
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler) {
	logger := app.logger
	server := &http.Server{
		Addr:              ":" + app.config.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}

	if app.stopJWKS != nil {
		app.stopJWKS()
	}
	for _, backend := range app.backends.Backends() {
		if err := backend.Close(ctx); err != nil {
			logger.Error().Err(err).Str("backend", backend.Name()).Msg("Failed to close backend")
		}
	}
	logger.Info().Msg("Backends closed.")
}
