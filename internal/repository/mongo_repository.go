package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/datastore/job-service/internal/apperrors"
	"github.com/datastore/job-service/internal/models"
)

const DefaultMongoDatabase = "jobDB"

const (
	collectionInProgress  = "inprogress"
	collectionCompleted   = "completed"
	collectionTargets     = "targets"
	collectionMaintenance = "maintenance"
)

// MongoRepository keeps active jobs in "inprogress" and moves them to
// "completed" once they reach a terminal status.
//
// Unlike the relational backend it does not refuse updates to finished jobs;
// workers may still append to a completed job's log.
type MongoRepository struct {
	client      *mongo.Client
	inProgress  *mongo.Collection
	completed   *mongo.Collection
	targets     *mongo.Collection
	maintenance *mongo.Collection
}

// ConnectMongo opens a client and verifies the connection.
func ConnectMongo(ctx context.Context, uri, username, password string) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri)
	if username != "" {
		opts.SetAuth(options.Credential{Username: username, Password: password})
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongodb")
	}
	return client, nil
}

func NewMongoRepository(client *mongo.Client, database string) *MongoRepository {
	if database == "" {
		database = DefaultMongoDatabase
	}
	db := client.Database(database)
	return &MongoRepository{
		client:      client,
		inProgress:  db.Collection(collectionInProgress),
		completed:   db.Collection(collectionCompleted),
		targets:     db.Collection(collectionTargets),
		maintenance: db.Collection(collectionMaintenance),
	}
}

func (r *MongoRepository) Name() string {
	return BackendMongo
}

// EnsureIndexes creates the unique index on the active job's target, which is
// what makes concurrent NewJob calls for one target produce a single winner.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.inProgress.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "parameters.target", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_active_target"),
		},
		{Keys: bson.D{{Key: "jobId", Value: 1}}},
	})
	if err != nil {
		return errors.Wrap(err, "create inprogress indexes")
	}
	if _, err := r.completed.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "jobId", Value: 1}}}); err != nil {
		return errors.Wrap(err, "create completed indexes")
	}
	_, err = r.targets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return errors.Wrap(err, "create targets indexes")
}

func findJobs(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]models.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "find jobs in %s", coll.Name())
	}
	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, errors.Wrapf(err, "decode jobs from %s", coll.Name())
	}
	return jobs, nil
}

func findJob(ctx context.Context, coll *mongo.Collection, jobID string) (models.Job, error) {
	var job models.Job
	err := coll.FindOne(ctx, bson.M{"jobId": jobID}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return job, apperrors.NotFound("job", jobID)
	}
	if err != nil {
		return job, errors.Wrapf(err, "find job %s in %s", jobID, coll.Name())
	}
	return job, nil
}

func (r *MongoRepository) GetJob(ctx context.Context, jobID string) (models.Job, error) {
	for _, coll := range []*mongo.Collection{r.inProgress, r.completed} {
		job, err := findJob(ctx, coll, jobID)
		if errors.Is(err, apperrors.ErrNotFound) {
			continue
		}
		return job, err
	}
	return models.Job{}, apperrors.NotFound("job", jobID)
}

func (r *MongoRepository) GetJobs(ctx context.Context, q models.GetJobsQuery) ([]models.Job, error) {
	filter := jobsFilter(q)
	jobs, err := findJobs(ctx, r.inProgress, filter)
	if err != nil {
		return nil, err
	}
	var done []models.Job
	if !q.IgnoreCompleted {
		done, err = findJobs(ctx, r.completed, filter)
		if err != nil {
			return nil, err
		}
	}
	return mergeJobs(jobs, done), nil
}

func (r *MongoRepository) GetJobsForTarget(ctx context.Context, name string) ([]models.Job, error) {
	filter := jobsForTargetFilter(name)
	jobs, err := findJobs(ctx, r.inProgress, filter)
	if err != nil {
		return nil, err
	}
	done, err := findJobs(ctx, r.completed, filter)
	if err != nil {
		return nil, err
	}
	return mergeJobs(jobs, done), nil
}

// NewJob inserts the job only if no active job holds its target. The upsert
// keyed on parameters.target plus the unique index guarantee one winner.
func (r *MongoRepository) NewJob(ctx context.Context, job models.Job) (models.Job, error) {
	job.JobID = uuid.NewString()
	if job.Log == nil {
		job.Log = []models.Log{}
	}
	target := job.Parameters.Target

	res, err := r.inProgress.UpdateOne(ctx,
		bson.M{"parameters.target": target},
		bson.M{"$setOnInsert": job},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return models.Job{}, apperrors.JobExists(target)
	}
	if err != nil {
		return models.Job{}, errors.Wrapf(err, "create job for target %s", target)
	}
	if res.UpsertedID == nil {
		return models.Job{}, apperrors.JobExists(target)
	}
	return job, nil
}

// UpdateJob applies a partial update to an active job. A terminal status
// moves the job to the completed collection before the update is applied
// there.
func (r *MongoRepository) UpdateJob(ctx context.Context, jobID string, req models.UpdateJobRequest) (models.Job, error) {
	current, err := findJob(ctx, r.inProgress, jobID)
	if err != nil {
		return models.Job{}, err
	}

	coll := r.inProgress
	// Standalone deployments have no multi-document transactions. The insert
	// goes first so a failure between the two writes leaves a duplicate
	// rather than losing the job; readers drop the in-progress copy.
	if req.Status != nil && req.Status.IsTerminal() {
		if _, err := r.completed.InsertOne(ctx, current); err != nil {
			return models.Job{}, errors.Wrapf(err, "archive job %s", jobID)
		}
		if _, err := r.inProgress.DeleteOne(ctx, bson.M{"jobId": jobID}); err != nil {
			return models.Job{}, errors.Wrapf(err, "remove job %s from inprogress", jobID)
		}
		coll = r.completed
	}

	if update := jobUpdateDocument(req, timeNow()); len(update) > 0 {
		if _, err := coll.UpdateOne(ctx, bson.M{"jobId": jobID}, update); err != nil {
			return models.Job{}, errors.Wrapf(err, "update job %s", jobID)
		}
	}
	return findJob(ctx, coll, jobID)
}

func (r *MongoRepository) GetTargets(ctx context.Context) ([]models.Target, error) {
	cursor, err := r.targets.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "find targets")
	}
	targets := []models.Target{}
	if err := cursor.All(ctx, &targets); err != nil {
		return nil, errors.Wrap(err, "decode targets")
	}
	return targets, nil
}

func (r *MongoRepository) upsertTarget(ctx context.Context, t models.Target) error {
	_, err := r.targets.UpdateOne(ctx,
		bson.M{"name": t.Name},
		bson.M{"$set": t},
		options.Update().SetUpsert(true),
	)
	return errors.Wrapf(err, "upsert target %s", t.Name)
}

func (r *MongoRepository) UpdateTarget(ctx context.Context, job models.Job) error {
	return r.upsertTarget(ctx, job.Target(timeNow()))
}

func (r *MongoRepository) UpdateBumpTargets(ctx context.Context, job models.Job) error {
	for _, t := range job.BumpTargets(timeNow()) {
		if err := r.upsertTarget(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *MongoRepository) SetMaintenanceStatus(ctx context.Context, req models.MaintenanceStatusRequest) (models.MaintenanceStatus, error) {
	status := models.MaintenanceStatus{Msg: req.Msg, Paused: req.Paused, Timestamp: timeNow()}
	if _, err := r.maintenance.InsertOne(ctx, status); err != nil {
		return models.MaintenanceStatus{}, errors.Wrap(err, "insert maintenance status")
	}
	return status, nil
}

func (r *MongoRepository) seedMaintenance(ctx context.Context) (models.MaintenanceStatus, error) {
	return r.SetMaintenanceStatus(ctx, models.MaintenanceStatusRequest{Msg: models.DefaultMaintenanceMessage})
}

func (r *MongoRepository) GetLatestMaintenanceStatus(ctx context.Context) (models.MaintenanceStatus, error) {
	var status models.MaintenanceStatus
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	err := r.maintenance.FindOne(ctx, bson.M{}, opts).Decode(&status)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return r.seedMaintenance(ctx)
	}
	if err != nil {
		return models.MaintenanceStatus{}, errors.Wrap(err, "find latest maintenance status")
	}
	return status, nil
}

func (r *MongoRepository) GetMaintenanceHistory(ctx context.Context) ([]models.MaintenanceStatus, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.maintenance.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find maintenance history")
	}
	var history []models.MaintenanceStatus
	if err := cursor.All(ctx, &history); err != nil {
		return nil, errors.Wrap(err, "decode maintenance history")
	}
	if len(history) == 0 {
		seed, err := r.seedMaintenance(ctx)
		if err != nil {
			return nil, err
		}
		history = []models.MaintenanceStatus{seed}
	}
	return history, nil
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
