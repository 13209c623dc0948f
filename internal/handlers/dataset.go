package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/datastore/job-service/internal/models"
)

// DatasetDirectory lists and removes archives waiting in the input directory.
type DatasetDirectory interface {
	ImportableDatasets() ([]models.ImportableDataset, error)
	Delete(name string) error
}

type DatasetHandler struct {
	dir    DatasetDirectory
	logger zerolog.Logger
}

func NewDatasetHandler(dir DatasetDirectory, logger zerolog.Logger) *DatasetHandler {
	return &DatasetHandler{
		dir:    dir,
		logger: logger.With().Str("handler", "importable_dataset").Logger(),
	}
}

func (h *DatasetHandler) List(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.dir.ImportableDatasets()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if datasets == nil {
		datasets = []models.ImportableDataset{}
	}
	writeJSON(w, http.StatusOK, datasets)
}

func (h *DatasetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.dir.Delete(name); err != nil {
		writeError(w, h.logger.With().Str("dataset", name).Logger(), err)
		return
	}
	h.logger.Info().Str("dataset", name).Msg("importable dataset deleted")
	writeMessage(w, http.StatusOK, "OK, "+name+" deleted")
}
