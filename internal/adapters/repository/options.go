// Package repository defines the activity store interface and its in-memory implementation.
package repository

import "github.com/okian/mergington/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithSeed replaces the built-in activity table. A nil or empty catalog is
// ignored.
func WithSeed(seed model.Catalog) Option {
	return func(s *MemoryStore) {
		if len(seed) > 0 {
			s.seed = seed
		}
	}
}
