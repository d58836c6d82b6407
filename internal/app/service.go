// Package service provides the activity registry service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	repository "github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

// Service implements the activity registry on top of a repository.Store.
type Service struct {
	mu sync.RWMutex

	store repository.Store
	seed  model.Catalog

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a store; New then ignores WithSeed.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSeed replaces the built-in activity table of the default store.
func WithSeed(seed model.Catalog) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// New constructs a Service. Without WithStore it builds an in-memory store
// from the seed table.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		store, err := repository.NewMemoryStore(ctx, repository.WithSeed(s.seed))
		if err != nil {
			return nil, fmt.Errorf("build activity store: %w", err)
		}
		s.store = store
	}
	return s, nil
}

// Start marks the service ready and publishes the initial gauges.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	count := s.store.Count(ctx)
	metrics.UpdateActivitiesTotal(count)

	s.started = true
	s.logger.Info(ctx, "activity registry started", logger.Int("activities", count))
	return nil
}

// Stop marks the service stopped. State is process-scoped and is not flushed anywhere.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "activity registry stopped")
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}

// ListActivities returns a snapshot of every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (model.Catalog, error) {
	return s.store.List(ctx)
}

// GetActivity returns a single activity by name.
func (s *Service) GetActivity(ctx context.Context, name string) (model.Activity, error) {
	return s.store.Get(ctx, name)
}

// Signup enrolls email in the named activity. Capacity is not checked:
// max_participants is informational.
func (s *Service) Signup(ctx context.Context, activity, email string) (model.Confirmation, error) {
	if err := s.store.AddParticipant(ctx, activity, email); err != nil {
		reason := rejectionReason(err)
		metrics.RecordRejection("signup", reason)
		s.log().Debug(ctx, "signup rejected",
			logger.String("activity", activity),
			logger.String("email", email),
			logger.String("reason", reason),
		)
		return model.Confirmation{}, err
	}

	metrics.RecordSignup(activity)
	s.log().Info(ctx, "student signed up",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return model.Confirmation{
		Activity: activity,
		Email:    email,
		Message:  fmt.Sprintf("Signed up %s for %s", email, activity),
	}, nil
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, activity, email string) (model.Confirmation, error) {
	if err := s.store.RemoveParticipant(ctx, activity, email); err != nil {
		reason := rejectionReason(err)
		metrics.RecordRejection("unregister", reason)
		s.log().Debug(ctx, "unregister rejected",
			logger.String("activity", activity),
			logger.String("email", email),
			logger.String("reason", reason),
		)
		return model.Confirmation{}, err
	}

	metrics.RecordUnregistration(activity)
	s.log().Info(ctx, "student unregistered",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return model.Confirmation{
		Activity: activity,
		Email:    email,
		Message:  fmt.Sprintf("Unregistered %s from %s", email, activity),
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":    started,
		"activities": s.store.Count(ctx),
	}

	if all, err := s.store.List(ctx); err == nil {
		stats["participants"] = all.ParticipantCount()
	}
	return stats
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, model.ErrActivityNotFound):
		return "activity_not_found"
	case errors.Is(err, model.ErrAlreadySignedUp):
		return "already_signed_up"
	case errors.Is(err, model.ErrParticipantNotFound):
		return "participant_not_found"
	default:
		return "internal"
	}
}
