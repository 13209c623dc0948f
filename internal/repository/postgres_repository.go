package repository

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/datastore/job-service/internal/apperrors"
	"github.com/datastore/job-service/internal/models"
)

// The relational schema is scoped by datastore, but the service only ever
// manages the single datastore seeded by the initial migration.
const defaultDatastoreID int64 = 1

const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
)

// Datastore describes the datastore row jobs and targets are scoped to.
type Datastore struct {
	Rdn         string
	Description string
	Directory   string
	Name        string
}

type PostgresRepository struct {
	db          *sql.DB
	datastoreID int64
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db, datastoreID: defaultDatastoreID}
}

func (r *PostgresRepository) Name() string {
	return BackendPostgres
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// transact runs fn inside a transaction and commits when it returns nil.
func transact[T any](ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(*sql.Tx) (T, error)) (T, error) {
	var zero T
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return zero, errors.Wrap(err, "begin transaction")
	}

	result, err := fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return zero, errors.Wrapf(err, "rollback failed: %v", rbErr)
		}
		return zero, err
	}

	if err := tx.Commit(); err != nil {
		return zero, errors.Wrap(err, "commit transaction")
	}
	return result, nil
}

func pqErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func scanJob(scanner interface{ Scan(dest ...interface{}) error }) (models.Job, error) {
	var (
		job models.Job
		id  int64
	)
	err := scanner.Scan(
		&id,
		&job.Status,
		jsonb(&job.Parameters),
		&job.CreatedAt,
		jsonb(&job.CreatedBy),
		jsonb(&job.Log),
	)
	if err != nil {
		return job, err
	}
	job.JobID = strconv.FormatInt(id, 10)
	job.CreatedAt = job.CreatedAt.UTC()
	return job, nil
}

func (r *PostgresRepository) queryJobs(ctx context.Context, query string, args ...interface{}) ([]models.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query jobs")
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan job")
		}
		jobs = append(jobs, job)
	}
	return jobs, errors.Wrap(rows.Err(), "iterate jobs")
}

func (r *PostgresRepository) GetJob(ctx context.Context, jobID string) (models.Job, error) {
	id, err := strconv.ParseInt(jobID, 10, 64)
	if err != nil {
		return models.Job{}, apperrors.NotFound("job", jobID)
	}

	query, args := jobByIDQuery(r.datastoreID, id)
	job, err := scanJob(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Job{}, apperrors.NotFound("job", jobID)
		}
		return models.Job{}, errors.Wrapf(err, "get job %s", jobID)
	}
	return job, nil
}

func (r *PostgresRepository) GetJobs(ctx context.Context, q models.GetJobsQuery) ([]models.Job, error) {
	query, args := jobsQuery(r.datastoreID, q)
	return r.queryJobs(ctx, query, args...)
}

func (r *PostgresRepository) GetJobsForTarget(ctx context.Context, name string) ([]models.Job, error) {
	query, args, err := jobsForTargetQuery(r.datastoreID, name)
	if err != nil {
		return nil, errors.Wrap(err, "build target query")
	}
	return r.queryJobs(ctx, query, args...)
}

// NewJob checks for an active job on the same target and inserts inside one
// serializable transaction. The partial unique index on job(target,
// datastore_id) backs the check; both a unique violation and a serialization
// failure mean another caller won the race.
func (r *PostgresRepository) NewJob(ctx context.Context, job models.Job) (models.Job, error) {
	target := job.Parameters.Target
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	id, err := transact(ctx, r.db, opts, func(tx *sql.Tx) (int64, error) {
		query := `
			SELECT EXISTS (
				SELECT 1 FROM job
				WHERE target = $1 AND datastore_id = $2 AND status NOT IN ` + terminalStatusList() + `
			)
		`
		var exists bool
		if err := tx.QueryRowContext(ctx, query, target, r.datastoreID).Scan(&exists); err != nil {
			return 0, err
		}
		if exists {
			return 0, apperrors.JobExists(target)
		}
		return insertJob(ctx, tx, r.datastoreID, job)
	})
	if err != nil {
		switch pqErrorCode(err) {
		case pqUniqueViolation, pqSerializationFailure:
			return models.Job{}, apperrors.JobExists(target)
		}
		if errors.Is(err, apperrors.ErrJobExists) {
			return models.Job{}, err
		}
		return models.Job{}, errors.Wrapf(err, "create job for target %s", target)
	}

	job.JobID = strconv.FormatInt(id, 10)
	if job.Log == nil {
		job.Log = []models.Log{}
	}
	return job, nil
}

func insertJob(ctx context.Context, tx *sql.Tx, datastoreID int64, job models.Job) (int64, error) {
	const query = `
		INSERT INTO job (target, datastore_id, status, created_at, created_by, parameters)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING job_id
	`
	var id int64
	err := tx.QueryRowContext(ctx, query,
		job.Parameters.Target,
		datastoreID,
		string(job.Status),
		job.CreatedAt,
		jsonb(&job.CreatedBy),
		jsonb(&job.Parameters),
	).Scan(&id)
	return id, err
}

func insertJobLog(ctx context.Context, ex execer, jobID int64, msg string, at time.Time) error {
	const query = `INSERT INTO job_log (job_id, msg, at) VALUES ($1, $2, $3)`
	_, err := ex.ExecContext(ctx, query, jobID, msg, at)
	return err
}

// UpdateJob locks the job row, refuses to touch finished jobs, applies the
// provided fields and appends the matching log rows. The returned job is
// re-read after commit.
func (r *PostgresRepository) UpdateJob(ctx context.Context, jobID string, req models.UpdateJobRequest) (models.Job, error) {
	id, err := strconv.ParseInt(jobID, 10, 64)
	if err != nil {
		return models.Job{}, apperrors.NotFound("job", jobID)
	}

	_, err = transact(ctx, r.db, nil, func(tx *sql.Tx) (struct{}, error) {
		const lockQuery = `SELECT status FROM job WHERE job_id = $1 AND datastore_id = $2 FOR UPDATE`
		var status models.JobStatus
		if err := tx.QueryRowContext(ctx, lockQuery, id, r.datastoreID).Scan(&status); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return struct{}{}, apperrors.NotFound("job", jobID)
			}
			return struct{}{}, err
		}
		if status.IsTerminal() {
			return struct{}{}, apperrors.JobAlreadyComplete(jobID)
		}

		now := timeNow()
		if req.Description != nil {
			const query = `UPDATE job SET parameters = jsonb_set(parameters, '{description}', to_jsonb($1::text)) WHERE job_id = $2`
			if _, err := tx.ExecContext(ctx, query, *req.Description, id); err != nil {
				return struct{}{}, err
			}
		}
		if req.Status != nil {
			const query = `UPDATE job SET status = $1 WHERE job_id = $2`
			if _, err := tx.ExecContext(ctx, query, string(*req.Status), id); err != nil {
				return struct{}{}, err
			}
			if err := insertJobLog(ctx, tx, id, statusLogMessage(*req.Status), now); err != nil {
				return struct{}{}, err
			}
		}
		if req.Log != nil {
			if err := insertJobLog(ctx, tx, id, *req.Log, now); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrJobAlreadyComplete) {
			return models.Job{}, err
		}
		return models.Job{}, errors.Wrapf(err, "update job %s", jobID)
	}

	return r.GetJob(ctx, jobID)
}

func upsertTarget(ctx context.Context, ex execer, datastoreID int64, t models.Target) error {
	const query = `
		INSERT INTO target (name, datastore_id, status, action, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name, datastore_id) DO UPDATE SET
			status = EXCLUDED.status,
			action = EXCLUDED.action,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
	`
	_, err := ex.ExecContext(ctx, query,
		t.Name,
		datastoreID,
		string(t.Status),
		jsonb(&t.Action),
		t.LastUpdatedAt,
		jsonb(&t.LastUpdatedBy),
	)
	return err
}

func (r *PostgresRepository) GetTargets(ctx context.Context) ([]models.Target, error) {
	const query = `
		SELECT name, status, action, last_updated_at, last_updated_by
		FROM target
		WHERE datastore_id = $1
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, r.datastoreID)
	if err != nil {
		return nil, errors.Wrap(err, "query targets")
	}
	defer rows.Close()

	targets := []models.Target{}
	for rows.Next() {
		var t models.Target
		if err := rows.Scan(&t.Name, &t.Status, jsonb(&t.Action), &t.LastUpdatedAt, jsonb(&t.LastUpdatedBy)); err != nil {
			return nil, errors.Wrap(err, "scan target")
		}
		t.LastUpdatedAt = t.LastUpdatedAt.UTC()
		targets = append(targets, t)
	}
	return targets, errors.Wrap(rows.Err(), "iterate targets")
}

func (r *PostgresRepository) UpdateTarget(ctx context.Context, job models.Job) error {
	target := job.Target(timeNow())
	return errors.Wrapf(upsertTarget(ctx, r.db, r.datastoreID, target), "update target %s", target.Name)
}

func (r *PostgresRepository) UpdateBumpTargets(ctx context.Context, job models.Job) error {
	targets := job.BumpTargets(timeNow())
	if len(targets) == 0 {
		return nil
	}
	_, err := transact(ctx, r.db, nil, func(tx *sql.Tx) (struct{}, error) {
		for _, t := range targets {
			if err := upsertTarget(ctx, tx, r.datastoreID, t); err != nil {
				return struct{}{}, errors.Wrapf(err, "upsert bump target %s", t.Name)
			}
		}
		return struct{}{}, nil
	})
	return err
}

func (r *PostgresRepository) SetMaintenanceStatus(ctx context.Context, req models.MaintenanceStatusRequest) (models.MaintenanceStatus, error) {
	status := models.MaintenanceStatus{Msg: req.Msg, Paused: req.Paused, Timestamp: timeNow()}
	if err := insertMaintenance(ctx, r.db, r.datastoreID, status); err != nil {
		return models.MaintenanceStatus{}, errors.Wrap(err, "insert maintenance status")
	}
	return status, nil
}

func insertMaintenance(ctx context.Context, ex execer, datastoreID int64, m models.MaintenanceStatus) error {
	const query = `INSERT INTO maintenance (datastore_id, msg, paused, "timestamp") VALUES ($1, $2, $3, $4)`
	_, err := ex.ExecContext(ctx, query, datastoreID, m.Msg, m.Paused, m.Timestamp)
	return err
}

// ensureMaintenanceSeed inserts the default status when the history is empty.
// The table lock keeps concurrent first readers from seeding twice.
func (r *PostgresRepository) ensureMaintenanceSeed(ctx context.Context) error {
	_, err := transact(ctx, r.db, nil, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE maintenance IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return struct{}{}, err
		}
		var count int
		const countQuery = `SELECT COUNT(*) FROM maintenance WHERE datastore_id = $1`
		if err := tx.QueryRowContext(ctx, countQuery, r.datastoreID).Scan(&count); err != nil {
			return struct{}{}, err
		}
		if count > 0 {
			return struct{}{}, nil
		}
		seed := models.MaintenanceStatus{Msg: models.DefaultMaintenanceMessage, Timestamp: timeNow()}
		return struct{}{}, insertMaintenance(ctx, tx, r.datastoreID, seed)
	})
	return errors.Wrap(err, "seed maintenance status")
}

func (r *PostgresRepository) listMaintenance(ctx context.Context, limit int) ([]models.MaintenanceStatus, error) {
	query := `
		SELECT msg, paused, "timestamp"
		FROM maintenance
		WHERE datastore_id = $1
		ORDER BY "timestamp" DESC, maintenance_id DESC
	`
	args := []interface{}{r.datastoreID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query maintenance")
	}
	defer rows.Close()

	statuses := []models.MaintenanceStatus{}
	for rows.Next() {
		var m models.MaintenanceStatus
		if err := rows.Scan(&m.Msg, &m.Paused, &m.Timestamp); err != nil {
			return nil, errors.Wrap(err, "scan maintenance")
		}
		m.Timestamp = m.Timestamp.UTC()
		statuses = append(statuses, m)
	}
	return statuses, errors.Wrap(rows.Err(), "iterate maintenance")
}

func (r *PostgresRepository) GetLatestMaintenanceStatus(ctx context.Context) (models.MaintenanceStatus, error) {
	if err := r.ensureMaintenanceSeed(ctx); err != nil {
		return models.MaintenanceStatus{}, err
	}
	statuses, err := r.listMaintenance(ctx, 1)
	if err != nil {
		return models.MaintenanceStatus{}, err
	}
	if len(statuses) == 0 {
		return models.MaintenanceStatus{}, errors.New("maintenance history empty after seeding")
	}
	return statuses[0], nil
}

func (r *PostgresRepository) GetMaintenanceHistory(ctx context.Context) ([]models.MaintenanceStatus, error) {
	if err := r.ensureMaintenanceSeed(ctx); err != nil {
		return nil, err
	}
	return r.listMaintenance(ctx, 0)
}

// UpsertDatastore updates the datastore row the repository is scoped to.
func (r *PostgresRepository) UpsertDatastore(ctx context.Context, ds Datastore) error {
	const query = `
		INSERT INTO datastore (datastore_id, rdn, description, directory, name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (datastore_id) DO UPDATE SET
			rdn = EXCLUDED.rdn,
			description = EXCLUDED.description,
			directory = EXCLUDED.directory,
			name = EXCLUDED.name
	`
	_, err := r.db.ExecContext(ctx, query, r.datastoreID, ds.Rdn, ds.Description, ds.Directory, ds.Name)
	return errors.Wrap(err, "upsert datastore")
}

// ImportJob copies a job from another backend, keeping its status, creation
// data and log history. A new relational id is assigned.
func (r *PostgresRepository) ImportJob(ctx context.Context, job models.Job) (models.Job, error) {
	id, err := transact(ctx, r.db, nil, func(tx *sql.Tx) (int64, error) {
		id, err := insertJob(ctx, tx, r.datastoreID, job)
		if err != nil {
			return 0, err
		}
		for _, l := range job.Log {
			if err := insertJobLog(ctx, tx, id, l.Message, l.At); err != nil {
				return 0, err
			}
		}
		return id, nil
	})
	if err != nil {
		return models.Job{}, errors.Wrapf(err, "import job %s", job.JobID)
	}
	job.JobID = strconv.FormatInt(id, 10)
	return job, nil
}

func (r *PostgresRepository) ImportTarget(ctx context.Context, t models.Target) error {
	return errors.Wrapf(upsertTarget(ctx, r.db, r.datastoreID, t), "import target %s", t.Name)
}

func (r *PostgresRepository) ImportMaintenanceStatus(ctx context.Context, m models.MaintenanceStatus) error {
	return errors.Wrap(insertMaintenance(ctx, r.db, r.datastoreID, m), "import maintenance status")
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresRepository) Close(context.Context) error {
	return r.db.Close()
}
