package repository

import (
	"crypto/subtle"
	"sync/atomic"

	"github.com/datastore/job-service/internal/apperrors"
)

type slot struct {
	repo JobRepository
}

// Switch holds the active backend. Handlers resolve Current on every request;
// Swap replaces the reference atomically so no request sees a half-swapped
// state. Swapping never moves data.
type Switch struct {
	primary   JobRepository
	secondary JobRepository
	apiKey    []byte
	active    atomic.Pointer[slot]
}

// NewSwitch starts on primary. An empty apiKey disables swapping.
func NewSwitch(primary, secondary JobRepository, apiKey string) *Switch {
	s := &Switch{primary: primary, secondary: secondary, apiKey: []byte(apiKey)}
	s.active.Store(&slot{repo: primary})
	return s
}

func (s *Switch) Current() JobRepository {
	return s.active.Load().repo
}

// Swap toggles to the other backend when apiKey matches the configured
// migration key, and returns the newly active backend.
func (s *Switch) Swap(apiKey string) (JobRepository, error) {
	if len(s.apiKey) == 0 || subtle.ConstantTimeCompare([]byte(apiKey), s.apiKey) != 1 {
		return nil, apperrors.Auth("Invalid api key", nil)
	}
	if s.secondary == nil {
		return nil, apperrors.Validation("backend", "No secondary backend configured")
	}

	for {
		old := s.active.Load()
		next := s.primary
		if old.repo == s.primary {
			next = s.secondary
		}
		if s.active.CompareAndSwap(old, &slot{repo: next}) {
			return next, nil
		}
	}
}

// Backends returns every configured backend, active one first.
func (s *Switch) Backends() []JobRepository {
	current := s.Current()
	backends := []JobRepository{current}
	for _, b := range []JobRepository{s.primary, s.secondary} {
		if b != nil && b != current {
			backends = append(backends, b)
		}
	}
	return backends
}
