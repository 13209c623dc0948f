package models

import (
	"fmt"
	"strings"

	"github.com/datastore/job-service/internal/apperrors"
)

// DatastoreTarget is the reserved target name for jobs that act on the
// datastore as a whole rather than on a single dataset.
const DatastoreTarget = "DATASTORE"

type JobStatus string

const (
	JobStatusQueued         JobStatus = "queued"
	JobStatusInitiated      JobStatus = "initiated"
	JobStatusValidating     JobStatus = "validating"
	JobStatusDecrypting     JobStatus = "decrypting"
	JobStatusTransforming   JobStatus = "transforming"
	JobStatusPseudonymizing JobStatus = "pseudonymizing"
	JobStatusEnriching      JobStatus = "enriching"  // retired stage, still present in stored jobs
	JobStatusConverting     JobStatus = "converting" // retired stage, still present in stored jobs
	JobStatusPartitioning   JobStatus = "partitioning"
	JobStatusBuilt          JobStatus = "built"
	JobStatusImporting      JobStatus = "importing"
	JobStatusCompleted      JobStatus = "completed"
	JobStatusFailed         JobStatus = "failed"
)

var jobStatuses = []JobStatus{
	JobStatusQueued,
	JobStatusInitiated,
	JobStatusValidating,
	JobStatusDecrypting,
	JobStatusTransforming,
	JobStatusPseudonymizing,
	JobStatusEnriching,
	JobStatusConverting,
	JobStatusPartitioning,
	JobStatusBuilt,
	JobStatusImporting,
	JobStatusCompleted,
	JobStatusFailed,
}

// TerminalJobStatuses are the statuses after which a job leaves the active set.
var TerminalJobStatuses = []JobStatus{JobStatusCompleted, JobStatusFailed}

func (s JobStatus) IsValid() bool {
	for _, known := range jobStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the job is finished.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

func ParseJobStatus(raw string) (JobStatus, error) {
	s := JobStatus(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", apperrors.Validation("status", fmt.Sprintf("Unknown job status: %s", raw))
	}
	return s, nil
}

type Operation string

const (
	OperationBump           Operation = "BUMP"
	OperationAdd            Operation = "ADD"
	OperationChange         Operation = "CHANGE"
	OperationPatchMetadata  Operation = "PATCH_METADATA"
	OperationSetStatus      Operation = "SET_STATUS"
	OperationDeleteDraft    Operation = "DELETE_DRAFT"
	OperationRemove         Operation = "REMOVE"
	OperationRollbackRemove Operation = "ROLLBACK_REMOVE"
	OperationDeleteArchive  Operation = "DELETE_ARCHIVE"
)

var operations = []Operation{
	OperationBump,
	OperationAdd,
	OperationChange,
	OperationPatchMetadata,
	OperationSetStatus,
	OperationDeleteDraft,
	OperationRemove,
	OperationRollbackRemove,
	OperationDeleteArchive,
}

func (o Operation) IsValid() bool {
	for _, known := range operations {
		if o == known {
			return true
		}
	}
	return false
}

func ParseOperation(raw string) (Operation, error) {
	o := Operation(strings.TrimSpace(raw))
	if !o.IsValid() {
		return "", apperrors.Validation("operation", fmt.Sprintf("Unknown operation: %s", raw))
	}
	return o, nil
}

type ReleaseStatus string

const (
	ReleaseStatusDraft          ReleaseStatus = "DRAFT"
	ReleaseStatusPendingRelease ReleaseStatus = "PENDING_RELEASE"
	ReleaseStatusPendingDelete  ReleaseStatus = "PENDING_DELETE"
)

func (r ReleaseStatus) IsValid() bool {
	switch r {
	case ReleaseStatusDraft, ReleaseStatusPendingRelease, ReleaseStatusPendingDelete:
		return true
	}
	return false
}
