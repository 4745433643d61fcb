package store

import (
	"context"

	"github.com/trililingo/trililingo-api/internal/domain"
)

// SyncEventStore persists the queued analytics-like sync events.
type SyncEventStore interface {
	// Append queues one event.
	Append(ctx context.Context, event domain.SyncEvent) error

	// GetPending returns up to limit pending events, oldest first.
	GetPending(ctx context.Context, limit int) ([]domain.SyncEvent, error)

	// SetState transitions one event to a new state.
	// Returns ErrNotFound if the event does not exist.
	SetState(ctx context.Context, eventID string, state domain.SyncEventState) error

	// CountByState returns how many events are in the given state.
	CountByState(ctx context.Context, state domain.SyncEventState) (int, error)
}
