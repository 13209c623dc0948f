package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatusIsTerminal(t *testing.T) {
	for _, s := range jobStatuses {
		expect := s == JobStatusCompleted || s == JobStatusFailed
		assert.Equal(t, expect, s.IsTerminal(), string(s))
	}
}

func TestJobAction(t *testing.T) {
	cases := []struct {
		Name   string
		Params JobParameters
		Expect []string
	}{
		{
			Name:   "add",
			Params: JobParameters{Operation: OperationAdd, Target: "DS1"},
			Expect: []string{"ADD"},
		},
		{
			Name:   "set status",
			Params: JobParameters{Operation: OperationSetStatus, Target: "DS1", ReleaseStatus: ptr(ReleaseStatusPendingDelete)},
			Expect: []string{"SET_STATUS", "PENDING_DELETE"},
		},
		{
			Name: "bump",
			Params: JobParameters{
				Operation: OperationBump, Target: DatastoreTarget,
				BumpFromVersion: ptr("1.0.0"), BumpToVersion: ptr("2.0.0"),
			},
			Expect: []string{"BUMP", "1.0.0", "2.0.0"},
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, Job{Parameters: c.Params}.Action())
		})
	}
}

func TestJobBumpTargetsSkipsDrafts(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	job := Job{
		Status: JobStatusCompleted,
		Parameters: JobParameters{
			Operation:     OperationBump,
			Target:        DatastoreTarget,
			BumpToVersion: ptr("2.0.0"),
			BumpManifesto: &DatastoreVersion{DataStructureUpdates: []DataStructureUpdate{
				{Name: "A", ReleaseStatus: ReleaseStatusPendingRelease},
				{Name: "B", ReleaseStatus: ReleaseStatusDraft},
				{Name: "C", ReleaseStatus: ReleaseStatusPendingDelete},
			}},
		},
		CreatedBy: testUser,
	}

	targets := job.BumpTargets(now)

	require.Len(t, targets, 2)
	assert.Equal(t, Target{
		Name: "A", Status: JobStatusCompleted, Action: []string{"RELEASED", "2.0.0"},
		LastUpdatedAt: now, LastUpdatedBy: testUser,
	}, targets[0])
	assert.Equal(t, "C", targets[1].Name)
	assert.Equal(t, []string{"REMOVED", "2.0.0"}, targets[1].Action)
}

func TestJobMarshalsEmptyLogAsArray(t *testing.T) {
	out, err := json.Marshal(Job{JobID: "1", Status: JobStatusQueued})

	require.NoError(t, err)
	assert.Contains(t, string(out), `"log":[]`)
	assert.Contains(t, string(out), `"jobId":"1"`)
}
