package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/datastore/job-service/internal/apperrors"
	"github.com/datastore/job-service/internal/repository"
)

// Backends resolves the job store serving the current request.
type Backends interface {
	Current() repository.JobRepository
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps err onto the apperrors taxonomy. Anything unmapped is logged
// and answered with a generic 500.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeMessage(w, status, apperrors.PublicMessage(err))
}

// decodeBody rejects unknown fields so that typos in optional parameters are
// not silently dropped.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.Validation("body", "Invalid request payload")
	}
	return nil
}
