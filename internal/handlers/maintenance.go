package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/datastore/job-service/internal/models"
)

type MaintenanceHandler struct {
	backends Backends
	logger   zerolog.Logger
}

func NewMaintenanceHandler(backends Backends, logger zerolog.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		backends: backends,
		logger:   logger.With().Str("handler", "maintenance").Logger(),
	}
}

func (h *MaintenanceHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req models.MaintenanceStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, err)
		return
	}

	status, err := h.backends.Current().SetMaintenanceStatus(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.logger.Info().Bool("paused", status.Paused).Str("msg", status.Msg).Msg("maintenance status set")
	writeJSON(w, http.StatusOK, status)
}

func (h *MaintenanceHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.backends.Current().GetLatestMaintenanceStatus(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *MaintenanceHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.backends.Current().GetMaintenanceHistory(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if history == nil {
		history = []models.MaintenanceStatus{}
	}
	writeJSON(w, http.StatusOK, history)
}
