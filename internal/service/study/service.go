// Package study orchestrates quiz sessions: challenge loading, answer
// evaluation and scoring, spaced-repetition updates, session lifecycle,
// and sync-event enqueueing.
package study

import (
	"context"
	"errors"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/domain/srs"
	"github.com/trililingo/trililingo-api/internal/store"
)

// Service-level errors returned to the API layer.
var (
	// ErrSessionClosed is returned when an operation targets a session
	// that was already finalized.
	ErrSessionClosed = errors.New("session already finalized")
)

// PrefsAccess is the slice of the prefs service the study flow needs.
type PrefsAccess interface {
	GetDailySelection(ctx context.Context, language, skill string) (domain.DailySelection, error)
	SetDailySelection(ctx context.Context, language, skill string, enabled bool, itemIDs []string) error
	AddXPAndUpdateStreak(ctx context.Context, xpEarned int) error
}

// Config carries the session tuning knobs.
type Config struct {
	DailyLength    int
	PracticeLength int
	OptionCount    int
}

// Service implements the study flows on top of the stores, the
// selection/scoring engine, and an SRS strategy.
type Service struct {
	items    store.ItemStore
	states   store.RepetitionStateStore
	sessions store.SessionStore
	attempts store.AttemptStore
	events   store.SyncEventStore
	prefs    PrefsAccess
	strategy srs.Strategy
	cfg      Config
	nowMs    func() int64
	logger   *slog.Logger
}

// NewService creates a study service with all required dependencies.
func NewService(
	items store.ItemStore,
	states store.RepetitionStateStore,
	sessions store.SessionStore,
	attempts store.AttemptStore,
	events store.SyncEventStore,
	prefsAccess PrefsAccess,
	strategy srs.Strategy,
	cfg Config,
	nowMs func() int64,
	logger *slog.Logger,
) *Service {
	if items == nil || states == nil || sessions == nil || attempts == nil || events == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("study service stores cannot be nil")
	}
	if prefsAccess == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("prefs access cannot be nil")
	}
	if strategy == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("srs strategy cannot be nil")
	}
	if nowMs == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("nowMs cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DailyLength <= 0 {
		cfg.DailyLength = 10
	}
	if cfg.PracticeLength <= 0 {
		cfg.PracticeLength = 7
	}
	if cfg.OptionCount <= 1 {
		cfg.OptionCount = 4
	}
	return &Service{
		items:    items,
		states:   states,
		sessions: sessions,
		attempts: attempts,
		events:   events,
		prefs:    prefsAccess,
		strategy: strategy,
		cfg:      cfg,
		nowMs:    nowMs,
		logger:   logger.With(slog.String("component", "study_service")),
	}
}
