package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/datastore/job-service/internal/mocks/repository_mock"
	"github.com/datastore/job-service/internal/repository"
)

const testAPIKey = "swap-key"

var nopLogger = zerolog.Nop()

type recordingSink struct {
	mu       sync.Mutex
	created  []string
	rejected []string
	updated  []string
	swapped  []string
}

func (s *recordingSink) RequestObserved(string, string, int, time.Duration) {}

func (s *recordingSink) JobCreated(_ string, operation string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, operation)
}

func (s *recordingSink) JobRejected(_ string, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejected = append(s.rejected, reason)
}

func (s *recordingSink) JobUpdated(_ string, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = append(s.updated, status)
}

func (s *recordingSink) BackendSwapped(backend string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swapped = append(s.swapped, backend)
}

// newBackends returns a switch whose active backend is a mock named "mongodb".
func newBackends(t *testing.T) (*repository.Switch, *repository_mock.MockJobRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := repository_mock.NewMockJobRepository(ctrl)
	repo.EXPECT().Name().Return(repository.BackendMongo).AnyTimes()
	return repository.NewSwitch(repo, nil, testAPIKey), repo
}

func newRequest(t *testing.T, method, target string, body interface{}, vars map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
