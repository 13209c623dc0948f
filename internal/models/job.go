package models

import (
	"encoding/json"
	"time"

	"github.com/datastore/job-service/internal/apperrors"
)

// UserInfo identifies the caller that created a job or last touched a target.
type UserInfo struct {
	UserID    string `json:"userId" bson:"userId"`
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
}

// Log is a single append-only entry in a job's history.
type Log struct {
	At      time.Time `json:"at" bson:"at"`
	Message string    `json:"message" bson:"message"`
}

type DataStructureUpdate struct {
	Name          string        `json:"name" bson:"name"`
	Description   string        `json:"description" bson:"description"`
	Operation     string        `json:"operation" bson:"operation"`
	ReleaseStatus ReleaseStatus `json:"releaseStatus" bson:"releaseStatus"`
}

// DatastoreVersion is the manifest carried by a BUMP job.
type DatastoreVersion struct {
	Version              string                `json:"version" bson:"version"`
	Description          string                `json:"description" bson:"description"`
	ReleaseTime          int64                 `json:"releaseTime" bson:"releaseTime"`
	LanguageCode         string                `json:"languageCode" bson:"languageCode"`
	UpdateType           *string               `json:"updateType" bson:"updateType"`
	DataStructureUpdates []DataStructureUpdate `json:"dataStructureUpdates" bson:"dataStructureUpdates"`
}

type JobParameters struct {
	Operation       Operation         `json:"operation" bson:"operation"`
	Target          string            `json:"target" bson:"target"`
	ReleaseStatus   *ReleaseStatus    `json:"releaseStatus,omitempty" bson:"releaseStatus,omitempty"`
	Description     *string           `json:"description,omitempty" bson:"description,omitempty"`
	BumpManifesto   *DatastoreVersion `json:"bumpManifesto,omitempty" bson:"bumpManifesto,omitempty"`
	BumpFromVersion *string           `json:"bumpFromVersion,omitempty" bson:"bumpFromVersion,omitempty"`
	BumpToVersion   *string           `json:"bumpToVersion,omitempty" bson:"bumpToVersion,omitempty"`
}

// Validate checks the operation-specific requirements. Parameters that fail
// here are never persisted.
func (p JobParameters) Validate() error {
	switch p.Operation {
	case OperationBump:
		if p.BumpManifesto == nil || p.Description == nil || p.BumpFromVersion == nil ||
			p.BumpToVersion == nil || p.Target != DatastoreTarget {
			return apperrors.Validation("parameters", "Invalid or missing arguments for BUMP operation")
		}
	case OperationRemove:
		if p.Description == nil {
			return apperrors.Validation("description", "Missing description for REMOVE operation")
		}
	case OperationSetStatus:
		if p.ReleaseStatus == nil {
			return apperrors.Validation("releaseStatus", "Missing releaseStatus for SET_STATUS operation")
		}
	}
	return nil
}

type Job struct {
	JobID      string        `json:"jobId" bson:"jobId"`
	Status     JobStatus     `json:"status" bson:"status"`
	Parameters JobParameters `json:"parameters" bson:"parameters"`
	Log        []Log         `json:"log" bson:"log"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt"`
	CreatedBy  UserInfo      `json:"createdBy" bson:"createdBy"`
}

// MarshalJSON renders a job without logs as an empty array rather than null.
func (j Job) MarshalJSON() ([]byte, error) {
	type plain Job
	out := plain(j)
	if out.Log == nil {
		out.Log = []Log{}
	}
	return json.Marshal(out)
}

// Action summarizes the job's operation for the target view.
func (j Job) Action() []string {
	p := j.Parameters
	switch p.Operation {
	case OperationSetStatus:
		return []string{string(p.Operation), string(deref(p.ReleaseStatus))}
	case OperationBump:
		return []string{string(p.Operation), deref(p.BumpFromVersion), deref(p.BumpToVersion)}
	default:
		return []string{string(p.Operation)}
	}
}

// Target derives the target row that reflects this job's current state.
func (j Job) Target(now time.Time) Target {
	return Target{
		Name:          j.Parameters.Target,
		Status:        j.Status,
		Action:        j.Action(),
		LastUpdatedAt: now,
		LastUpdatedBy: j.CreatedBy,
	}
}

// BumpTargets derives one target row per dataset released or removed by a
// BUMP job. DRAFT entries are skipped.
func (j Job) BumpTargets(now time.Time) []Target {
	manifesto := j.Parameters.BumpManifesto
	if manifesto == nil {
		return nil
	}
	toVersion := deref(j.Parameters.BumpToVersion)

	var targets []Target
	for _, update := range manifesto.DataStructureUpdates {
		if update.ReleaseStatus == ReleaseStatusDraft {
			continue
		}
		label := "REMOVED"
		if update.ReleaseStatus == ReleaseStatusPendingRelease {
			label = "RELEASED"
		}
		targets = append(targets, Target{
			Name:          update.Name,
			Status:        j.Status,
			Action:        []string{label, toVersion},
			LastUpdatedAt: now,
			LastUpdatedBy: j.CreatedBy,
		})
	}
	return targets
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
