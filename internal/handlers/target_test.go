package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/datastore/job-service/internal/models"
)

func TestListTargets(t *testing.T) {
	backends, repo := newBackends(t)
	h := NewTargetHandler(backends, nopLogger)

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.EXPECT().GetTargets(gomock.Any()).Return([]models.Target{{
		Name:          "PERSON_INCOME",
		Status:        models.JobStatusCompleted,
		Action:        []string{"SET_STATUS", "PENDING_RELEASE"},
		LastUpdatedAt: at,
		LastUpdatedBy: testUser,
	}}, nil)

	rec := httptest.NewRecorder()
	h.ListTargets(rec, newRequest(t, http.MethodGet, "/targets", nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{
		"name":"PERSON_INCOME",
		"status":"completed",
		"action":["SET_STATUS","PENDING_RELEASE"],
		"lastUpdatedAt":"2024-03-01T12:00:00Z",
		"lastUpdatedBy":{"userId":"u-1","firstName":"Ada","lastName":"Lovelace"}
	}]`, rec.Body.String())
}

func TestListTargetJobs(t *testing.T) {
	backends, repo := newBackends(t)
	h := NewTargetHandler(backends, nopLogger)

	repo.EXPECT().GetJobsForTarget(gomock.Any(), "PERSON_INCOME").Return(nil, nil)

	rec := httptest.NewRecorder()
	h.ListTargetJobs(rec, newRequest(t, http.MethodGet, "/targets/PERSON_INCOME/jobs", nil, map[string]string{"name": "PERSON_INCOME"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
