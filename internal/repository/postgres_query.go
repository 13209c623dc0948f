package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/datastore/job-service/internal/models"
)

const selectJobsQuery = `
	SELECT j.job_id, j.status, j.parameters, j.created_at, j.created_by,
	       COALESCE(
	           json_agg(json_build_object('at', l.at, 'message', l.msg) ORDER BY l.job_log_id)
	               FILTER (WHERE l.job_log_id IS NOT NULL),
	           '[]'::json
	       ) AS log
	FROM job j
	LEFT JOIN job_log l ON l.job_id = j.job_id
`

const groupJobsClause = `
	GROUP BY j.job_id
	ORDER BY j.job_id
`

// sqlFilter accumulates WHERE conditions with positional arguments.
type sqlFilter struct {
	conds []string
	args  []interface{}
}

func (f *sqlFilter) add(cond string, args ...interface{}) {
	for _, arg := range args {
		f.args = append(f.args, arg)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(f.args)), 1)
	}
	f.conds = append(f.conds, cond)
}

func (f *sqlFilter) where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(f.conds, " AND ")
}

func terminalStatusList() string {
	quoted := make([]string, 0, len(models.TerminalJobStatuses))
	for _, s := range models.TerminalJobStatuses {
		quoted = append(quoted, "'"+string(s)+"'")
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}

// jobsQuery builds the listing query for GET /jobs.
func jobsQuery(datastoreID int64, q models.GetJobsQuery) (string, []interface{}) {
	f := &sqlFilter{}
	f.add("j.datastore_id = ?", datastoreID)
	if q.Status != nil {
		f.add("j.status = ?", string(*q.Status))
	}
	if len(q.Operations) > 0 {
		ops := make([]string, 0, len(q.Operations))
		for _, op := range q.Operations {
			ops = append(ops, string(op))
		}
		f.add("j.parameters->>'operation' = ANY(?)", pq.Array(ops))
	}
	if q.IgnoreCompleted {
		f.add("j.status NOT IN " + terminalStatusList())
	}
	return selectJobsQuery + f.where() + groupJobsClause, f.args
}

// jobsForTargetQuery matches jobs on the target itself and BUMP jobs whose
// manifest lists the target among its data structure updates.
func jobsForTargetQuery(datastoreID int64, name string) (string, []interface{}, error) {
	probe, err := json.Marshal([]map[string]string{{"name": name}})
	if err != nil {
		return "", nil, err
	}
	f := &sqlFilter{}
	f.add("j.datastore_id = ?", datastoreID)
	f.add("(j.target = ? OR j.parameters->'bumpManifesto'->'dataStructureUpdates' @> ?::jsonb)", name, string(probe))
	return selectJobsQuery + f.where() + groupJobsClause, f.args, nil
}

func jobByIDQuery(datastoreID, jobID int64) (string, []interface{}) {
	f := &sqlFilter{}
	f.add("j.datastore_id = ?", datastoreID)
	f.add("j.job_id = ?", jobID)
	return selectJobsQuery + f.where() + groupJobsClause, f.args
}
