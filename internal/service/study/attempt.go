package study

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/engine"
	"github.com/trililingo/trililingo-api/internal/store"
)

// AttemptInput is one answer submission from the client.
type AttemptInput struct {
	SessionID    string
	ItemID       string
	ChosenAnswer string
	ResponseMs   int64
	HintCount    int
}

// AttemptResult is what the client gets back: the evaluation verdict,
// the persisted attempt record, and the repetition state the item moved
// to (unchanged when the scheduler failed).
type AttemptResult struct {
	Evaluation engine.Evaluation      `json:"evaluation"`
	Attempt    domain.Attempt         `json:"attempt"`
	State      domain.RepetitionState `json:"state"`
}

// RecordAttempt processes one answer: evaluates it, scores it, appends
// the immutable attempt record, advances the item's repetition state,
// and queues a sync event.
//
// The scheduler update is best-effort: if the strategy errors the
// previous state is kept and the attempt still counts. The sync enqueue
// is also best-effort; losing an analytics event never fails a quiz
// answer.
func (s *Service) RecordAttempt(ctx context.Context, in AttemptInput) (*AttemptResult, error) {
	session, err := s.sessions.Get(ctx, in.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.EndedAtMs != 0 {
		return nil, ErrSessionClosed
	}

	items, err := s.items.GetByIDs(ctx, []string{in.ItemID})
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if len(items) == 0 {
		return nil, store.ErrItemNotFound
	}
	item := items[0]

	responseMs := in.ResponseMs
	if responseMs < 0 {
		responseMs = 0
	}

	ev := engine.Evaluate(in.ChosenAnswer, item.Answer)
	baseXP := engine.Score(ev.IsCorrect, responseMs)
	multiplier := engine.HintMultiplier(in.HintCount)
	awarded := engine.FinalXP(baseXP, multiplier, ev.IsCorrect)

	nowMs := s.nowMs()
	attempt := domain.NewAttempt(in.SessionID, in.ItemID)
	attempt.IsCorrect = ev.IsCorrect
	attempt.ResponseMs = responseMs
	attempt.ChosenAnswer = in.ChosenAnswer
	attempt.CorrectAnswer = item.Answer
	attempt.HintCount = in.HintCount
	attempt.BaseXP = baseXP
	attempt.XPMultiplier = multiplier
	attempt.XPAwarded = awarded
	attempt.CreatedAtMs = nowMs

	if err := attempt.Validate(); err != nil {
		return nil, fmt.Errorf("invalid attempt: %w", err)
	}
	if err := s.attempts.Append(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to append attempt: %w", err)
	}

	state := s.advanceState(ctx, in.ItemID, ev.IsCorrect, nowMs, responseMs)

	s.enqueueEvent(ctx, domain.SyncEventTypeAttempt, attempt, nowMs)

	return &AttemptResult{Evaluation: ev, Attempt: attempt, State: state}, nil
}

// advanceState runs the SRS strategy and persists the result. Any
// failure is logged and leaves the previous state in place; the quiz
// must keep working even if scheduling breaks.
func (s *Service) advanceState(ctx context.Context, itemID string, isCorrect bool, nowMs, responseMs int64) domain.RepetitionState {
	prev, err := s.states.Get(ctx, itemID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to load repetition state, keeping default",
				slog.String("item_id", itemID),
				slog.String("error", err.Error()))
		}
		prev = domain.NewRepetitionState(itemID)
	}

	next, err := s.strategy.UpdateState(prev, isCorrect, nowMs, responseMs)
	if err != nil {
		s.logger.WarnContext(ctx, "srs update failed, keeping previous state",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()))
		return prev
	}

	if err := s.states.Upsert(ctx, next); err != nil {
		s.logger.WarnContext(ctx, "failed to persist repetition state",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()))
		return prev
	}
	return next
}

// enqueueEvent queues a sync event with the payload marshaled to JSON.
func (s *Service) enqueueEvent(ctx context.Context, eventType string, payload any, nowMs int64) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to marshal sync payload",
			slog.String("type", eventType),
			slog.String("error", err.Error()))
		return
	}
	event := domain.NewSyncEvent(eventType, string(raw), nowMs)
	if err := s.events.Append(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to enqueue sync event",
			slog.String("type", eventType),
			slog.String("error", err.Error()))
	}
}
