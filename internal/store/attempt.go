package store

import (
	"context"

	"github.com/trililingo/trililingo-api/internal/domain"
)

// AttemptStore persists the append-only attempt log. There is no update
// or delete: attempts are immutable once written.
type AttemptStore interface {
	// Append writes one attempt record.
	Append(ctx context.Context, attempt domain.Attempt) error

	// BySession returns a session's attempts in submission order.
	BySession(ctx context.Context, sessionID string) ([]domain.Attempt, error)

	// CountBySession returns how many attempts a session has recorded.
	CountBySession(ctx context.Context, sessionID string) (int, error)
}
