package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastore/job-service/internal/models"
)

func TestJSONColumnRoundTrip(t *testing.T) {
	description := "bump to 2.0.0"
	from, to := "1.0.0", "2.0.0"
	in := models.JobParameters{
		Operation:       models.OperationBump,
		Target:          models.DatastoreTarget,
		Description:     &description,
		BumpFromVersion: &from,
		BumpToVersion:   &to,
		BumpManifesto: &models.DatastoreVersion{
			Version: "2.0.0.0",
			DataStructureUpdates: []models.DataStructureUpdate{
				{Name: "A", Operation: "ADD", ReleaseStatus: models.ReleaseStatusPendingRelease},
			},
		},
	}

	value, err := jsonb(&in).Value()
	require.NoError(t, err)
	encoded, ok := value.(string)
	require.True(t, ok)
	assert.Contains(t, encoded, `"bumpManifesto"`)
	assert.Contains(t, encoded, `"dataStructureUpdates"`)
	assert.Contains(t, encoded, `"releaseStatus":"PENDING_RELEASE"`)

	var out models.JobParameters
	require.NoError(t, jsonb(&out).Scan([]byte(encoded)))
	assert.Equal(t, in, out)
}

func TestJSONColumnScanLogs(t *testing.T) {
	var logs []models.Log
	raw := `[{"at":"2024-03-01T12:00:00.123456+00:00","message":"Set status: initiated"},` +
		`{"at":"2024-03-01T12:00:01+00:00","message":"note"}]`

	require.NoError(t, jsonb(&logs).Scan(raw))

	require.Len(t, logs, 2)
	assert.Equal(t, "Set status: initiated", logs[0].Message)
	assert.Equal(t, "note", logs[1].Message)
	assert.True(t, logs[0].At.Equal(time.Date(2024, 3, 1, 12, 0, 0, 123456000, time.UTC)))
}

func TestJSONColumnScanNull(t *testing.T) {
	user := models.UserInfo{UserID: "keep"}

	require.NoError(t, jsonb(&user).Scan(nil))
	assert.Equal(t, "keep", user.UserID)
	assert.Error(t, jsonb(&user).Scan(42))
}
