package store

import (
	"context"

	"github.com/trililingo/trililingo-api/internal/domain"
)

// RepetitionStateStore persists per-item spaced-repetition state. States
// are created once per item by the seeder and then only replaced, never
// deleted.
type RepetitionStateStore interface {
	// Get returns the state for an item.
	// Returns ErrNotFound if no state exists.
	Get(ctx context.Context, itemID string) (domain.RepetitionState, error)

	// GetAll returns the states for the given item ids keyed by item id;
	// ids without a state are simply absent from the map.
	GetAll(ctx context.Context, itemIDs []string) (map[string]domain.RepetitionState, error)

	// Upsert inserts or replaces a state.
	Upsert(ctx context.Context, state domain.RepetitionState) error

	// InsertMissing creates default states for any of the given ids that
	// do not have one yet, leaving existing states untouched.
	InsertMissing(ctx context.Context, states []domain.RepetitionState) error
}
