package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/datastore/job-service/internal/apperrors"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// NewJobRequest is a single job submitted through POST /jobs.
type NewJobRequest struct {
	Operation       Operation         `json:"operation"`
	Target          string            `json:"target"`
	ReleaseStatus   *ReleaseStatus    `json:"releaseStatus,omitempty"`
	Description     *string           `json:"description,omitempty"`
	BumpManifesto   *DatastoreVersion `json:"bumpManifesto,omitempty"`
	BumpFromVersion *string           `json:"bumpFromVersion,omitempty"`
	BumpToVersion   *string           `json:"bumpToVersion,omitempty"`
}

func (r NewJobRequest) Validate() error {
	if !r.Operation.IsValid() {
		return apperrors.Validation("operation", fmt.Sprintf("Unknown operation: %s", r.Operation))
	}
	if strings.TrimSpace(r.Target) == "" {
		return apperrors.Validation("target", "Must provide a target.")
	}

	switch r.Operation {
	case OperationRemove, OperationBump:
		if r.Description == nil {
			return apperrors.Validation("description",
				fmt.Sprintf("Must provide a description when operation is %s.", r.Operation))
		}
	case OperationSetStatus:
		if r.ReleaseStatus == nil {
			return apperrors.Validation("releaseStatus",
				fmt.Sprintf("Must provide a releaseStatus when operation is %s.", r.Operation))
		}
		if !r.ReleaseStatus.IsValid() {
			return apperrors.Validation("releaseStatus", fmt.Sprintf("Unknown releaseStatus: %s", *r.ReleaseStatus))
		}
	}

	if r.Operation == OperationBump &&
		(r.BumpManifesto == nil || r.BumpFromVersion == nil || r.BumpToVersion == nil) {
		return apperrors.Validation("bumpManifesto",
			fmt.Sprintf("Must provide a bumpManifesto, bumpFromVersion and bumpToVersion when operation is %s.", r.Operation))
	}
	return nil
}

// GenerateJob builds a queued job owned by user. Only the parameters that
// belong to the requested operation are carried over.
func (r NewJobRequest) GenerateJob(user UserInfo) (Job, error) {
	if err := r.Validate(); err != nil {
		return Job{}, err
	}

	params := JobParameters{
		Operation: r.Operation,
		Target:    r.Target,
	}
	switch r.Operation {
	case OperationSetStatus:
		params.ReleaseStatus = r.ReleaseStatus
	case OperationRemove:
		params.Description = r.Description
	case OperationBump:
		params.BumpManifesto = r.BumpManifesto
		params.Description = r.Description
		params.BumpFromVersion = r.BumpFromVersion
		params.BumpToVersion = r.BumpToVersion
	}
	if err := params.Validate(); err != nil {
		return Job{}, err
	}

	return Job{
		Status:     JobStatusQueued,
		Parameters: params,
		Log:        []Log{},
		CreatedAt:  timeNow(),
		CreatedBy:  user,
	}, nil
}

type NewJobsRequest struct {
	Jobs []NewJobRequest `json:"jobs"`
}

// Validate checks the shape of every entry. Rules that depend on how the
// parameters combine are left to GenerateJob so they fail only their entry.
func (r NewJobsRequest) Validate() error {
	for _, req := range r.Jobs {
		if err := req.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetJobsQuery filters job listings. Present filters are combined with AND.
type GetJobsQuery struct {
	Status          *JobStatus
	Operations      []Operation
	IgnoreCompleted bool
}

// ParseGetJobsQuery reads ?status=&operation=A,B&ignoreCompleted= from a URL.
func ParseGetJobsQuery(values url.Values) (GetJobsQuery, error) {
	var q GetJobsQuery

	if raw := strings.TrimSpace(values.Get("status")); raw != "" {
		status, err := ParseJobStatus(raw)
		if err != nil {
			return q, err
		}
		q.Status = &status
	}

	if raw := strings.TrimSpace(values.Get("operation")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			op, err := ParseOperation(part)
			if err != nil {
				return q, err
			}
			q.Operations = append(q.Operations, op)
		}
	}

	if raw := strings.TrimSpace(values.Get("ignoreCompleted")); raw != "" {
		ignore, err := strconv.ParseBool(raw)
		if err != nil {
			return q, apperrors.Validation("ignoreCompleted", fmt.Sprintf("Invalid ignoreCompleted value: %s", raw))
		}
		q.IgnoreCompleted = ignore
	}

	return q, nil
}

// UpdateJobRequest is a partial update. Only fields that are set are applied.
type UpdateJobRequest struct {
	Status      *JobStatus `json:"status,omitempty"`
	Description *string    `json:"description,omitempty"`
	Log         *string    `json:"log,omitempty"`
}

func (r UpdateJobRequest) Validate() error {
	if r.Status != nil && !r.Status.IsValid() {
		return apperrors.Validation("status", fmt.Sprintf("Unknown job status: %s", *r.Status))
	}
	return nil
}

type MaintenanceStatusRequest struct {
	Msg    string `json:"msg"`
	Paused bool   `json:"paused"`
}

func (r MaintenanceStatusRequest) Validate() error {
	if strings.TrimSpace(r.Msg) == "" {
		return apperrors.Validation("msg", "Must provide a msg.")
	}
	return nil
}
