package server

import (
	"errors"
	"sync"

	"specview/internal/spec"
)

// ErrLoadInFlight is returned when a load is initiated while another one
// is still running; the store admits one load at a time.
var ErrLoadInFlight = errors.New("a specification load is already in progress")

// Store holds the currently installed model. The model itself is
// immutable; the store only swaps the pointer. A failed load leaves the
// previously installed model untouched, so a broken reload never destroys
// a working specification.
type Store struct {
	mu      sync.RWMutex
	current *spec.ApiSpec
	loading bool
}

func NewStore() *Store { return &Store{} }

// Current returns the installed model, or nil when none is loaded.
func (s *Store) Current() *spec.ApiSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Load runs fn under the single-load gate and installs its result on
// success.
func (s *Store) Load(fn func() (*spec.ApiSpec, error)) (*spec.ApiSpec, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, ErrLoadInFlight
	}
	s.loading = true
	s.mu.Unlock()

	api, err := fn()

	s.mu.Lock()
	s.loading = false
	if err == nil && api != nil {
		s.current = api
	}
	s.mu.Unlock()
	return api, err
}

// Reset clears the installed model.
func (s *Store) Reset() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Endpoint looks up an endpoint by its stable identifier.
func (s *Store) Endpoint(id string) (*spec.ApiSpec, *spec.Endpoint, bool) {
	api := s.Current()
	if api == nil {
		return nil, nil, false
	}
	for i := range api.Endpoints {
		if api.Endpoints[i].ID == id {
			return api, &api.Endpoints[i], true
		}
	}
	return api, nil, false
}
