package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/datastore/job-service/internal/models"
)

// jobsFilter translates a listing query into a BSON filter. Present filters
// are combined with AND.
func jobsFilter(q models.GetJobsQuery) bson.M {
	filter := bson.M{}
	if q.Status != nil {
		filter["status"] = string(*q.Status)
	}
	if len(q.Operations) > 0 {
		ops := bson.A{}
		for _, op := range q.Operations {
			ops = append(ops, string(op))
		}
		filter["parameters.operation"] = bson.M{"$in": ops}
	}
	return filter
}

func jobsForTargetFilter(name string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"parameters.target": name},
		bson.M{"parameters.bumpManifesto.dataStructureUpdates.name": name},
	}}
}

// jobUpdateDocument builds the $set/$push document for a partial job update.
// Each applied field gets its own log entry, and a free-text log is appended
// after them.
func jobUpdateDocument(req models.UpdateJobRequest, now time.Time) bson.M {
	set := bson.M{}
	var logs []models.Log

	if req.Status != nil {
		set["status"] = string(*req.Status)
		logs = append(logs, models.Log{At: now, Message: statusLogMessage(*req.Status)})
	}
	if req.Description != nil {
		set["parameters.description"] = *req.Description
		logs = append(logs, models.Log{At: now, Message: descriptionLogMessage})
	}
	if req.Log != nil {
		logs = append(logs, models.Log{At: now, Message: *req.Log})
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(logs) > 0 {
		update["$push"] = bson.M{"log": bson.M{"$each": logs}}
	}
	return update
}

// mergeJobs lists active jobs followed by completed ones. A job present in
// both collections is mid-move and is reported once, from completed.
func mergeJobs(active, done []models.Job) []models.Job {
	archived := make(map[string]struct{}, len(done))
	for _, job := range done {
		archived[job.JobID] = struct{}{}
	}
	jobs := make([]models.Job, 0, len(active)+len(done))
	for _, job := range active {
		if _, ok := archived[job.JobID]; !ok {
			jobs = append(jobs, job)
		}
	}
	return append(jobs, done...)
}
