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

func TestSetMaintenanceStatus(t *testing.T) {
	backends, repo := newBackends(t)
	h := NewMaintenanceHandler(backends, nopLogger)

	at := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	repo.EXPECT().
		SetMaintenanceStatus(gomock.Any(), models.MaintenanceStatusRequest{Msg: "upgrading", Paused: true}).
		Return(models.MaintenanceStatus{Msg: "upgrading", Paused: true, Timestamp: at}, nil)

	rec := httptest.NewRecorder()
	h.SetStatus(rec, newRequest(t, http.MethodPost, "/maintenance-status", `{"msg":"upgrading","paused":true}`, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"upgrading","paused":true,"timestamp":"2024-05-02T08:30:00Z"}`, rec.Body.String())
}

func TestSetMaintenanceStatusValidation(t *testing.T) {
	cases := []struct {
		Name string
		Body string
	}{
		{"blank message", `{"msg":"  ","paused":false}`},
		{"missing message", `{"paused":true}`},
		{"unknown field", `{"msg":"x","paused":true,"until":"tomorrow"}`},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			backends, _ := newBackends(t)
			h := NewMaintenanceHandler(backends, nopLogger)

			rec := httptest.NewRecorder()
			h.SetStatus(rec, newRequest(t, http.MethodPost, "/maintenance-status", c.Body, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetMaintenanceStatus(t *testing.T) {
	backends, repo := newBackends(t)
	h := NewMaintenanceHandler(backends, nopLogger)

	repo.EXPECT().GetLatestMaintenanceStatus(gomock.Any()).
		Return(models.MaintenanceStatus{Msg: models.DefaultMaintenanceMessage}, nil)

	rec := httptest.NewRecorder()
	h.GetStatus(rec, newRequest(t, http.MethodGet, "/maintenance-status", nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	status := decodeResponse[models.MaintenanceStatus](t, rec)
	assert.Equal(t, models.DefaultMaintenanceMessage, status.Msg)
	assert.False(t, status.Paused)
}

func TestMaintenanceHistory(t *testing.T) {
	backends, repo := newBackends(t)
	h := NewMaintenanceHandler(backends, nopLogger)

	newer := models.MaintenanceStatus{Msg: "back", Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	older := models.MaintenanceStatus{Msg: "down", Paused: true, Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo.EXPECT().GetMaintenanceHistory(gomock.Any()).Return([]models.MaintenanceStatus{newer, older}, nil)

	rec := httptest.NewRecorder()
	h.History(rec, newRequest(t, http.MethodGet, "/maintenance-history", nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	history := decodeResponse[[]models.MaintenanceStatus](t, rec)
	require.Len(t, history, 2)
	assert.Equal(t, "back", history[0].Msg)
	assert.Equal(t, "down", history[1].Msg)
}
