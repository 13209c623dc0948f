package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/datastore/job-service/internal/models"
)

type TargetHandler struct {
	backends Backends
	logger   zerolog.Logger
}

func NewTargetHandler(backends Backends, logger zerolog.Logger) *TargetHandler {
	return &TargetHandler{
		backends: backends,
		logger:   logger.With().Str("handler", "target").Logger(),
	}
}

func (h *TargetHandler) ListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.backends.Current().GetTargets(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if targets == nil {
		targets = []models.Target{}
	}
	writeJSON(w, http.StatusOK, targets)
}

func (h *TargetHandler) ListTargetJobs(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	jobs, err := h.backends.Current().GetJobsForTarget(r.Context(), name)
	if err != nil {
		writeError(w, h.logger.With().Str("target", name).Logger(), err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	writeJSON(w, http.StatusOK, jobs)
}
