package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/metrics"
)

// MemoryStore keeps the registry in a map guarded by a single RWMutex.
// Every mutation is one check-then-write under the write lock.
type MemoryStore struct {
	mu         sync.RWMutex
	activities model.Catalog
	seed       model.Catalog
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore builds a store populated from the seed table (DefaultCatalog
// unless WithSeed is given). The seed is validated and copied.
func NewMemoryStore(_ context.Context, opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed == nil {
		s.seed = DefaultCatalog()
	}
	if err := ValidateCatalog(s.seed); err != nil {
		return nil, err
	}
	s.activities = s.seed.Clone()

	metrics.UpdateActivitiesTotal(len(s.activities))
	for name, a := range s.activities {
		metrics.UpdateActivityParticipants(name, len(a.Participants))
	}
	return s, nil
}

// List returns a snapshot of all activities.
func (s *MemoryStore) List(_ context.Context) (model.Catalog, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities.Clone(), nil
}

// Get returns a copy of one activity.
func (s *MemoryStore) Get(_ context.Context, name string) (model.Activity, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[name]
	if !ok {
		metrics.RecordErrorByComponent("repository", "activity_not_found")
		return model.Activity{}, fmt.Errorf("%q: %w", name, model.ErrActivityNotFound)
	}
	return a.Clone(), nil
}

// AddParticipant appends email to the named activity.
func (s *MemoryStore) AddParticipant(_ context.Context, name, email string) error {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		metrics.RecordErrorByComponent("repository", "activity_not_found")
		return fmt.Errorf("%q: %w", name, model.ErrActivityNotFound)
	}
	if a.Has(email) {
		metrics.RecordErrorByComponent("repository", "already_signed_up")
		return fmt.Errorf("%s in %q: %w", email, name, model.ErrAlreadySignedUp)
	}

	// Copy before append so no earlier snapshot shares the backing array.
	roster := make([]string, len(a.Participants), len(a.Participants)+1)
	copy(roster, a.Participants)
	a.Participants = append(roster, email)
	s.activities[name] = a

	metrics.UpdateActivityParticipants(name, len(a.Participants))
	return nil
}

// RemoveParticipant drops email from the named activity.
func (s *MemoryStore) RemoveParticipant(_ context.Context, name, email string) error {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		metrics.RecordErrorByComponent("repository", "activity_not_found")
		return fmt.Errorf("%q: %w", name, model.ErrActivityNotFound)
	}
	if !a.Has(email) {
		metrics.RecordErrorByComponent("repository", "participant_not_found")
		return fmt.Errorf("%s in %q: %w", email, name, model.ErrParticipantNotFound)
	}
	a.Participants = a.Without(email)
	s.activities[name] = a

	metrics.UpdateActivityParticipants(name, len(a.Participants))
	return nil
}

// Count returns the number of activities in the registry.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}
