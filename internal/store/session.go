package store

import (
	"context"

	"github.com/trililingo/trililingo-api/internal/domain"
)

// SessionStore persists study sessions.
type SessionStore interface {
	// Create saves a new open session.
	Create(ctx context.Context, session *domain.StudySession) error

	// Get returns a session by id.
	// Returns ErrSessionNotFound if it does not exist.
	Get(ctx context.Context, sessionID string) (*domain.StudySession, error)

	// Finish finalizes a session with its aggregates and abandoned flag.
	// Returns ErrSessionNotFound if it does not exist.
	Finish(ctx context.Context, sessionID string, endedAtMs int64, totals domain.SessionTotals, abandoned bool) error

	// Latest returns the most recently started sessions, newest first.
	Latest(ctx context.Context, limit int) ([]domain.StudySession, error)
}
