// Package repository defines the activity store interface and its in-memory implementation.
package repository

import (
	"context"

	"github.com/okian/mergington/internal/domain/model"
)

// Store provides read/write access to the activity registry.
type Store interface {
	// List returns a deep copy of every activity keyed by name.
	List(ctx context.Context) (model.Catalog, error)

	// Get returns a copy of a single activity.
	// Returns model.ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// AddParticipant appends email to the activity roster.
	// Returns model.ErrActivityNotFound or model.ErrAlreadySignedUp; the store
	// is left unchanged on error.
	AddParticipant(ctx context.Context, name, email string) error

	// RemoveParticipant drops email from the activity roster.
	// Returns model.ErrActivityNotFound or model.ErrParticipantNotFound; the
	// store is left unchanged on error.
	RemoveParticipant(ctx context.Context, name, email string) error

	// Count returns the number of activities.
	Count(ctx context.Context) int
}
