// Package prefs manages the user preferences blob: XP/streak
// aggregates, the active language, and the per-(language, skill)
// daily-challenge selections.
package prefs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/engine"
	"github.com/trililingo/trililingo-api/internal/store"
)

// Service reads and updates user preferences. Updates are
// read-modify-write on the single blob; the app's single-writer model
// makes that safe without row locking.
type Service struct {
	prefs  store.PrefsStore
	nowMs  func() int64
	logger *slog.Logger
}

// NewService creates a prefs service. nowMs supplies the current epoch
// millis and exists so tests can pin time.
func NewService(prefsStore store.PrefsStore, nowMs func() int64, logger *slog.Logger) *Service {
	if prefsStore == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("prefs store cannot be nil")
	}
	if nowMs == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("nowMs cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		prefs:  prefsStore,
		nowMs:  nowMs,
		logger: logger.With(slog.String("component", "prefs_service")),
	}
}

// Get returns the current preferences.
func (s *Service) Get(ctx context.Context) (domain.UserPrefs, error) {
	return s.prefs.Get(ctx)
}

// SetActiveLanguage records the user's active language.
func (s *Service) SetActiveLanguage(ctx context.Context, language string) error {
	return s.update(ctx, func(p *domain.UserPrefs) {
		p.ActiveLanguage = language
	})
}

// GetDailySelection returns the pinned daily selection for a
// (language, skill) pair; a zero selection when none was saved.
func (s *Service) GetDailySelection(ctx context.Context, language, skill string) (domain.DailySelection, error) {
	p, err := s.prefs.Get(ctx)
	if err != nil {
		return domain.DailySelection{}, err
	}
	return p.DailySelectionFor(language, skill), nil
}

// SetDailySelection saves a daily selection, deduplicating the ids.
func (s *Service) SetDailySelection(ctx context.Context, language, skill string, enabled bool, itemIDs []string) error {
	clean := dedupe(itemIDs)
	return s.update(ctx, func(p *domain.UserPrefs) {
		if p.DailySelections == nil {
			p.DailySelections = make(map[string]domain.DailySelection)
		}
		p.DailySelections[domain.DailySelectionKey(language, skill)] = domain.DailySelection{
			Enabled:     enabled,
			ItemIDs:     clean,
			UpdatedAtMs: s.nowMs(),
		}
	})
}

// ClearDailySelection removes the daily selection for a (language,
// skill) pair.
func (s *Service) ClearDailySelection(ctx context.Context, language, skill string) error {
	return s.update(ctx, func(p *domain.UserPrefs) {
		delete(p.DailySelections, domain.DailySelectionKey(language, skill))
	})
}

// AddXPAndUpdateStreak adds earned XP to the total and advances the
// streak: studying on consecutive days grows it, a gap resets it to 1,
// and multiple sessions on the same day keep it unchanged.
func (s *Service) AddXPAndUpdateStreak(ctx context.Context, xpEarned int) error {
	today := engine.EpochDay(s.nowMs())
	return s.update(ctx, func(p *domain.UserPrefs) {
		switch {
		case p.LastStudyEpochDay == 0:
			p.StreakCount = 1
		case today == p.LastStudyEpochDay:
			// Same day: streak unchanged.
		case today == p.LastStudyEpochDay+1:
			p.StreakCount++
		default:
			p.StreakCount = 1
		}
		p.TotalXP += int64(xpEarned)
		p.LastStudyEpochDay = today
	})
}

// update runs a read-modify-write cycle on the prefs blob.
func (s *Service) update(ctx context.Context, mutate func(*domain.UserPrefs)) error {
	p, err := s.prefs.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load prefs: %w", err)
	}
	mutate(&p)
	if err := s.prefs.Save(ctx, p); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
