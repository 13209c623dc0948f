package repository

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastore/job-service/internal/models"
)

func TestJobsQuery(t *testing.T) {
	completed := models.JobStatusCompleted

	cases := []struct {
		Name      string
		Query     models.GetJobsQuery
		Contains  []string
		Missing   []string
		ArgsCount int
	}{
		{
			Name:      "no filters",
			Query:     models.GetJobsQuery{},
			Contains:  []string{"WHERE j.datastore_id = $1\n"},
			Missing:   []string{"j.status =", "ANY(", "NOT IN"},
			ArgsCount: 1,
		},
		{
			Name:      "status and operations",
			Query:     models.GetJobsQuery{Status: &completed, Operations: []models.Operation{models.OperationAdd, models.OperationBump}},
			Contains:  []string{"j.datastore_id = $1 AND j.status = $2 AND j.parameters->>'operation' = ANY($3)"},
			ArgsCount: 3,
		},
		{
			Name:      "ignore completed",
			Query:     models.GetJobsQuery{IgnoreCompleted: true},
			Contains:  []string{"j.status NOT IN ('completed', 'failed')"},
			ArgsCount: 1,
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			query, args := jobsQuery(1, c.Query)

			for _, s := range c.Contains {
				assert.Contains(t, query, s)
			}
			for _, s := range c.Missing {
				assert.NotContains(t, query, s)
			}
			assert.Len(t, args, c.ArgsCount)
			assert.Equal(t, int64(1), args[0])
		})
	}
}

func TestJobsQueryOperationArgs(t *testing.T) {
	_, args := jobsQuery(1, models.GetJobsQuery{Operations: []models.Operation{models.OperationAdd, models.OperationChange}})

	require.Len(t, args, 2)
	assert.Equal(t, pq.Array([]string{"ADD", "CHANGE"}), args[1])
}

func TestJobsForTargetQuery(t *testing.T) {
	query, args, err := jobsForTargetQuery(1, "DS1")

	require.NoError(t, err)
	assert.Contains(t, query, "(j.target = $2 OR j.parameters->'bumpManifesto'->'dataStructureUpdates' @> $3::jsonb)")
	assert.Equal(t, []interface{}{int64(1), "DS1", `[{"name":"DS1"}]`}, args)
}
