package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/datastore/job-service/internal/metrics"
	"github.com/datastore/job-service/internal/repository"
)

const apiKeyHeader = "X-API-Key"

// BackendSwitch is the part of repository.Switch the swap endpoint needs.
type BackendSwitch interface {
	Backends
	Swap(apiKey string) (repository.JobRepository, error)
}

type backendResponse struct {
	Backend string `json:"backend"`
}

type BackendHandler struct {
	backends BackendSwitch
	metrics  metrics.Sink
	logger   zerolog.Logger
}

func NewBackendHandler(backends BackendSwitch, sink metrics.Sink, logger zerolog.Logger) *BackendHandler {
	return &BackendHandler{
		backends: backends,
		metrics:  sink,
		logger:   logger.With().Str("handler", "backend").Logger(),
	}
}

func (h *BackendHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, backendResponse{Backend: h.backends.Current().Name()})
}

// Swap flips the active store. Data is not copied between stores.
func (h *BackendHandler) Swap(w http.ResponseWriter, r *http.Request) {
	next, err := h.backends.Swap(r.Header.Get(apiKeyHeader))
	if err != nil {
		h.logger.Warn().Err(err).Msg("backend swap refused")
		writeError(w, h.logger, err)
		return
	}
	h.metrics.BackendSwapped(next.Name())
	h.logger.Info().Str("backend", next.Name()).Msg("active backend swapped")
	writeJSON(w, http.StatusOK, backendResponse{Backend: next.Name()})
}
