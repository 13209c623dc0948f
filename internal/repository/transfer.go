package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/datastore/job-service/internal/models"
)

// TransferSource is the read side of a backend-to-backend copy.
type TransferSource interface {
	GetJobs(ctx context.Context, query models.GetJobsQuery) ([]models.Job, error)
	GetTargets(ctx context.Context) ([]models.Target, error)
	GetMaintenanceHistory(ctx context.Context) ([]models.MaintenanceStatus, error)
}

// TransferSink is the write side of a backend-to-backend copy.
type TransferSink interface {
	ImportJob(ctx context.Context, job models.Job) (models.Job, error)
	ImportTarget(ctx context.Context, target models.Target) error
	ImportMaintenanceStatus(ctx context.Context, status models.MaintenanceStatus) error
}

type TransferStats struct {
	Jobs        int
	Targets     int
	Maintenance int
}

// Transfer copies every job, target and maintenance row from src to dst.
// Finished jobs are copied before active ones so that the destination's
// active-target guard only ever sees one live job per target. Maintenance
// history is replayed oldest first.
func Transfer(ctx context.Context, src TransferSource, dst TransferSink, logger zerolog.Logger) (TransferStats, error) {
	var stats TransferStats

	jobs, err := src.GetJobs(ctx, models.GetJobsQuery{})
	if err != nil {
		return stats, errors.Wrap(err, "read jobs")
	}
	ordered := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.Status.IsTerminal() {
			ordered = append(ordered, job)
		}
	}
	for _, job := range jobs {
		if !job.Status.IsTerminal() {
			ordered = append(ordered, job)
		}
	}
	for _, job := range ordered {
		imported, err := dst.ImportJob(ctx, job)
		if err != nil {
			return stats, err
		}
		logger.Debug().Str("source_job_id", job.JobID).Str("job_id", imported.JobID).Msg("copied job")
		stats.Jobs++
	}
	logger.Info().Int("count", stats.Jobs).Msg("jobs copied")

	targets, err := src.GetTargets(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "read targets")
	}
	for _, t := range targets {
		if err := dst.ImportTarget(ctx, t); err != nil {
			return stats, err
		}
		stats.Targets++
	}
	logger.Info().Int("count", stats.Targets).Msg("targets copied")

	history, err := src.GetMaintenanceHistory(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "read maintenance history")
	}
	for i := len(history) - 1; i >= 0; i-- {
		if err := dst.ImportMaintenanceStatus(ctx, history[i]); err != nil {
			return stats, err
		}
		stats.Maintenance++
	}
	logger.Info().Int("count", stats.Maintenance).Msg("maintenance statuses copied")

	return stats, nil
}
