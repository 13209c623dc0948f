package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const readinessTimeout = 2 * time.Second

type HealthHandler struct {
	backends Backends
	logger   zerolog.Logger
}

func NewHealthHandler(backends Backends, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		backends: backends,
		logger:   logger.With().Str("handler", "health").Logger(),
	}
}

func (h *HealthHandler) Alive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "I'm alive!")
}

// Ready reports whether the active backend answers a ping.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	repo := h.backends.Current()
	if err := repo.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Str("backend", repo.Name()).Msg("backend not ready")
		writeMessage(w, http.StatusServiceUnavailable, "Backend "+repo.Name()+" is not ready")
		return
	}
	writeJSON(w, http.StatusOK, "I'm ready!")
}
