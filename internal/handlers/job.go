package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/datastore/job-service/internal/apperrors"
	"github.com/datastore/job-service/internal/authz"
	"github.com/datastore/job-service/internal/metrics"
	"github.com/datastore/job-service/internal/models"
	"github.com/datastore/job-service/internal/repository"
)

const (
	resultQueued  = "queued"
	resultFailed  = "FAILED"
	resultCreated = "CREATED"
)

// newJobResult is reported for every entry of a POST /jobs batch.
type newJobResult struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	JobID  string `json:"job_id,omitempty"`
}

type JobHandler struct {
	backends    Backends
	bumpEnabled bool
	metrics     metrics.Sink
	logger      zerolog.Logger
}

func NewJobHandler(backends Backends, bumpEnabled bool, sink metrics.Sink, logger zerolog.Logger) *JobHandler {
	return &JobHandler{
		backends:    backends,
		bumpEnabled: bumpEnabled,
		metrics:     sink,
		logger:      logger.With().Str("handler", "job").Logger(),
	}
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query, err := models.ParseGetJobsQuery(r.URL.Query())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	jobs, err := h.backends.Current().GetJobs(r.Context(), query)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	writeJSON(w, http.StatusOK, jobs)
}

// CreateJobs checks the shape of the whole batch first, then generates and
// stores each job on its own. A failing entry is reported in place and does
// not stop the rest.
func (h *JobHandler) CreateJobs(w http.ResponseWriter, r *http.Request) {
	user, ok := authz.UserFromRequest(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized. No authorization token was provided")
		return
	}

	var payload models.NewJobsRequest
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, h.logger, err)
		return
	}

	repo := h.backends.Current()
	results := make([]newJobResult, 0, len(payload.Jobs))
	for _, req := range payload.Jobs {
		results = append(results, h.createJob(r.Context(), repo, user, req))
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *JobHandler) createJob(ctx context.Context, repo repository.JobRepository, user models.UserInfo, req models.NewJobRequest) newJobResult {
	logger := h.logger.With().
		Str("operation", string(req.Operation)).
		Str("target", req.Target).
		Logger()

	job, err := req.GenerateJob(user)
	if err != nil {
		logger.Warn().Err(err).Msg("job rejected")
		h.metrics.JobRejected(repo.Name(), metrics.RejectInvalid)
		return newJobResult{Status: resultFailed, Msg: resultFailed}
	}

	if !h.bumpEnabled &&
		job.Parameters.Operation == models.OperationBump &&
		job.Parameters.Target == models.DatastoreTarget {
		err := apperrors.BumpingDisabled()
		logger.Warn().Err(err).Msg("job rejected")
		h.metrics.JobRejected(repo.Name(), metrics.RejectBumpingDisabled)
		return newJobResult{Status: resultFailed, Msg: resultFailed + ": " + apperrors.PublicMessage(err)}
	}

	created, err := repo.NewJob(ctx, job)
	if err != nil {
		reason := metrics.RejectError
		if errors.Is(err, apperrors.ErrJobExists) {
			reason = metrics.RejectJobExists
			logger.Warn().Err(err).Msg("job rejected")
		} else {
			logger.Error().Err(err).Msg("failed to create job")
		}
		h.metrics.JobRejected(repo.Name(), reason)
		return newJobResult{Status: resultFailed, Msg: resultFailed}
	}
	h.metrics.JobCreated(repo.Name(), string(created.Parameters.Operation))

	if err := repo.UpdateTarget(ctx, created); err != nil {
		logger.Error().Err(err).Str("job_id", created.JobID).Msg("failed to update target")
	}
	logger.Info().Str("job_id", created.JobID).Msg("job queued")
	return newJobResult{Status: resultQueued, Msg: resultCreated, JobID: created.JobID}
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := strings.TrimSpace(mux.Vars(r)["jobID"])

	job, err := h.backends.Current().GetJob(r.Context(), jobID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// UpdateJob applies a partial update, refreshes the job's target and, once a
// datastore bump completes, the targets the bump touched.
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	jobID := strings.TrimSpace(mux.Vars(r)["jobID"])

	var req models.UpdateJobRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, err)
		return
	}

	repo := h.backends.Current()
	job, err := repo.UpdateJob(r.Context(), jobID, req)
	if err != nil {
		writeError(w, h.logger.With().Str("job_id", jobID).Logger(), err)
		return
	}
	h.metrics.JobUpdated(repo.Name(), string(job.Status))

	if err := repo.UpdateTarget(r.Context(), job); err != nil {
		writeError(w, h.logger.With().Str("job_id", jobID).Logger(), err)
		return
	}
	if job.Parameters.Target == models.DatastoreTarget && job.Status == models.JobStatusCompleted {
		if err := repo.UpdateBumpTargets(r.Context(), job); err != nil {
			writeError(w, h.logger.With().Str("job_id", jobID).Logger(), err)
			return
		}
	}

	writeMessage(w, http.StatusOK, "Updated job with jobId "+jobID)
}
