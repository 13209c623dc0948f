package repository

import (
	"context"
	"time"

	"github.com/datastore/job-service/internal/models"
)

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mock/repository_mock.go -package=repository_mock

// JobRepository is the storage contract shared by the document-store and
// relational backends. Store conditions are reported through the apperrors
// taxonomy; raw driver errors never reach callers.
type JobRepository interface {
	// Name identifies the backend ("mongodb" or "postgres").
	Name() string

	GetJob(ctx context.Context, jobID string) (models.Job, error)
	GetJobs(ctx context.Context, query models.GetJobsQuery) ([]models.Job, error)
	GetJobsForTarget(ctx context.Context, name string) ([]models.Job, error)
	// NewJob stores a generated job unless its target already has an active
	// job, in which case apperrors.ErrJobExists is returned.
	NewJob(ctx context.Context, job models.Job) (models.Job, error)
	UpdateJob(ctx context.Context, jobID string, req models.UpdateJobRequest) (models.Job, error)

	GetTargets(ctx context.Context) ([]models.Target, error)
	UpdateTarget(ctx context.Context, job models.Job) error
	UpdateBumpTargets(ctx context.Context, job models.Job) error

	SetMaintenanceStatus(ctx context.Context, req models.MaintenanceStatusRequest) (models.MaintenanceStatus, error)
	GetLatestMaintenanceStatus(ctx context.Context) (models.MaintenanceStatus, error)
	GetMaintenanceHistory(ctx context.Context) ([]models.MaintenanceStatus, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

const (
	BackendMongo    = "mongodb"
	BackendPostgres = "postgres"
)

var timeNow = func() time.Time { return time.Now().UTC() }

func statusLogMessage(status models.JobStatus) string {
	return "Set status: " + string(status)
}

const descriptionLogMessage = "Added update description"

var (
	_ JobRepository  = (*MongoRepository)(nil)
	_ JobRepository  = (*PostgresRepository)(nil)
	_ TransferSource = (*MongoRepository)(nil)
	_ TransferSink   = (*PostgresRepository)(nil)
)
