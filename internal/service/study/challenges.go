package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/engine"
)

// LoadChallenges assembles the challenge set for one session: it selects
// the item ids for the mode, then builds the multiple-choice options for
// each. Daily mode is deterministic for the calendar day; practice mode
// surfaces the most overdue items. An empty catalog yields an empty
// slice, not an error.
func (s *Service) LoadChallenges(ctx context.Context, language, skill string, mode domain.StudyMode) ([]domain.Challenge, error) {
	pool, err := s.items.GetBySkill(ctx, language, skill)
	if err != nil {
		return nil, fmt.Errorf("failed to load item pool: %w", err)
	}
	if len(pool) == 0 {
		s.logger.InfoContext(ctx, "no items for skill",
			slog.String("language", language),
			slog.String("skill", skill))
		return []domain.Challenge{}, nil
	}

	ids := make([]string, len(pool))
	for i, item := range pool {
		ids[i] = item.ID
	}
	states, err := s.states.GetAll(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load repetition states: %w", err)
	}

	nowMs := s.nowMs()
	in := engine.SelectInput{
		Pool:     pool,
		States:   states,
		Mode:     mode,
		Language: language,
		Skill:    skill,
		NowMs:    nowMs,
		Limit:    s.cfg.PracticeLength,
	}
	if mode == domain.StudyModeDaily {
		in.Limit = s.cfg.DailyLength
		sel, err := s.prefs.GetDailySelection(ctx, language, skill)
		if err != nil {
			return nil, fmt.Errorf("failed to load daily selection: %w", err)
		}
		if len(sel.ItemIDs) > 0 {
			in.Selection = &sel
		}
	}

	result := engine.SelectItems(in)

	if result.ReenabledSelection {
		// The pinned selection was disabled but still valid; self-heal
		// the flag so the UI reflects what actually drove the pick.
		if err := s.prefs.SetDailySelection(ctx, language, skill, true, result.Universe); err != nil {
			s.logger.WarnContext(ctx, "failed to re-enable daily selection",
				slog.String("language", language),
				slog.String("skill", skill),
				slog.String("error", err.Error()))
		}
	}

	return s.buildChallenges(pool, result, mode, nowMs), nil
}

// buildChallenges turns the selected ids into renderable challenges. The
// distractor candidate pool is restricted to the daily-selection universe
// when one applied, so the options never leak items the user excluded.
func (s *Service) buildChallenges(pool []domain.LearnableItem, result engine.SelectResult, mode domain.StudyMode, nowMs int64) []domain.Challenge {
	byID := make(map[string]domain.LearnableItem, len(pool))
	for _, item := range pool {
		byID[item.ID] = item
	}

	optionPool := pool
	if result.Universe != nil {
		universeSet := make(map[string]struct{}, len(result.Universe))
		for _, id := range result.Universe {
			universeSet[id] = struct{}{}
		}
		optionPool = make([]domain.LearnableItem, 0, len(result.Universe))
		for _, item := range pool {
			if _, ok := universeSet[item.ID]; ok {
				optionPool = append(optionPool, item)
			}
		}
	}

	poolAnswers := make([]string, 0, len(optionPool))
	for _, item := range optionPool {
		poolAnswers = append(poolAnswers, item.Answer)
	}

	dayKey := engine.DayKey(nowMs)
	challenges := make([]domain.Challenge, 0, len(result.ItemIDs))
	for _, id := range result.ItemIDs {
		item, ok := byID[id]
		if !ok {
			continue
		}

		preferred := make([]string, 0, len(item.DistractorIDs))
		for _, did := range item.DistractorIDs {
			if d, ok := byID[did]; ok {
				preferred = append(preferred, d.Answer)
			}
		}

		seedKey := item.ID + "|" + dayKey + "|" + string(mode)
		options := engine.BuildOptions(item.Answer, preferred, poolAnswers, seedKey, s.cfg.OptionCount)

		challenges = append(challenges, domain.Challenge{
			ItemID:      item.ID,
			Prompt:      item.Prompt,
			MeaningHint: item.Meaning,
			Options:     options,
			Correct:     item.Answer,
		})
	}
	return challenges
}
