package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/datastore/job-service/internal/mocks/repository_mock"
	"github.com/datastore/job-service/internal/repository"
)

func newSwappableBackends(t *testing.T) *repository.Switch {
	t.Helper()
	ctrl := gomock.NewController(t)
	primary := repository_mock.NewMockJobRepository(ctrl)
	primary.EXPECT().Name().Return(repository.BackendMongo).AnyTimes()
	secondary := repository_mock.NewMockJobRepository(ctrl)
	secondary.EXPECT().Name().Return(repository.BackendPostgres).AnyTimes()
	return repository.NewSwitch(primary, secondary, testAPIKey)
}

func TestBackendSwap(t *testing.T) {
	backends := newSwappableBackends(t)
	sink := &recordingSink{}
	h := NewBackendHandler(backends, sink, nopLogger)

	rec := httptest.NewRecorder()
	h.Current(rec, newRequest(t, http.MethodGet, "/backend", nil, nil))
	assert.JSONEq(t, `{"backend":"mongodb"}`, rec.Body.String())

	req := newRequest(t, http.MethodPost, "/backend/swap", nil, nil)
	req.Header.Set(apiKeyHeader, testAPIKey)
	rec = httptest.NewRecorder()
	h.Swap(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"backend":"postgres"}`, rec.Body.String())
	assert.Equal(t, repository.BackendPostgres, backends.Current().Name())
	assert.Equal(t, []string{repository.BackendPostgres}, sink.swapped)
}

func TestBackendSwapRejectsBadKey(t *testing.T) {
	cases := []struct {
		Name string
		Key  string
	}{
		{"missing key", ""},
		{"wrong key", "guess"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			backends := newSwappableBackends(t)
			h := NewBackendHandler(backends, &recordingSink{}, nopLogger)

			req := newRequest(t, http.MethodPost, "/backend/swap", nil, nil)
			if c.Key != "" {
				req.Header.Set(apiKeyHeader, c.Key)
			}
			rec := httptest.NewRecorder()
			h.Swap(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, repository.BackendMongo, backends.Current().Name())
		})
	}
}

func TestHealth(t *testing.T) {
	cases := []struct {
		Name    string
		PingErr error
		Status  int
		Body    string
	}{
		{"ready", nil, http.StatusOK, `"I'm ready!"`},
		{"backend down", errors.New("server selection timeout"), http.StatusServiceUnavailable, `{"message":"Backend mongodb is not ready"}`},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			backends, repo := newBackends(t)
			h := NewHealthHandler(backends, nopLogger)
			repo.EXPECT().Ping(gomock.Any()).Return(c.PingErr)

			rec := httptest.NewRecorder()
			h.Ready(rec, newRequest(t, http.MethodGet, "/health/ready", nil, nil))

			assert.Equal(t, c.Status, rec.Code)
			assert.JSONEq(t, c.Body, rec.Body.String())
		})
	}

	backends, _ := newBackends(t)
	rec := httptest.NewRecorder()
	NewHealthHandler(backends, nopLogger).Alive(rec, newRequest(t, http.MethodGet, "/health/alive", nil, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"I'm alive!"`, rec.Body.String())
}
