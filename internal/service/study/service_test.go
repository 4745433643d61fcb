package study

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/domain/srs"
	"github.com/trililingo/trililingo-api/internal/store"
)

// failingStrategy always errors, for exercising the best-effort SRS path.
type failingStrategy struct{}

func (failingStrategy) UpdateState(
	state domain.RepetitionState,
	isCorrect bool,
	nowMs int64,
	responseMs int64,
) (domain.RepetitionState, error) {
	return domain.RepetitionState{}, errors.New("scheduler broken")
}

type fixture struct {
	svc      *Service
	items    *memItemStore
	states   *memStateStore
	sessions *memSessionStore
	attempts *memAttemptStore
	events   *memEventStore
	prefs    *memPrefs
	now      time.Time
}

func newFixture(t *testing.T, itemCount int, strategy srs.Strategy) *fixture {
	t.Helper()

	items := &memItemStore{}
	for i := 0; i < itemCount; i++ {
		items.items = append(items.items, domain.LearnableItem{
			ID:       fmt.Sprintf("item-%02d", i),
			Language: "JA",
			Skill:    "HIRAGANA",
			Prompt:   fmt.Sprintf("prompt-%d", i),
			Answer:   fmt.Sprintf("answer-%d", i),
			Meaning:  fmt.Sprintf("meaning-%d", i),
		})
	}

	f := &fixture{
		items:    items,
		states:   newMemStateStore(),
		sessions: newMemSessionStore(),
		attempts: &memAttemptStore{},
		events:   &memEventStore{},
		prefs:    newMemPrefs(),
		now:      time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC),
	}
	if strategy == nil {
		strategy = srs.NewDefaultStrategy()
	}
	f.svc = NewService(
		f.items, f.states, f.sessions, f.attempts, f.events, f.prefs,
		strategy,
		Config{DailyLength: 10, PracticeLength: 7, OptionCount: 4},
		func() int64 { return f.now.UnixMilli() },
		nil,
	)
	return f
}

func (f *fixture) startSession(t *testing.T) *domain.StudySession {
	t.Helper()
	session, err := f.svc.StartSession(context.Background(), "JA", "LESSON")
	require.NoError(t, err)
	return session
}

func TestLoadChallengesEmptyCatalog(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 0, nil)
	challenges, err := f.svc.LoadChallenges(context.Background(), "JA", "HIRAGANA", domain.StudyModeDaily)
	require.NoError(t, err)
	assert.Empty(t, challenges, "empty pool is a valid empty session, not an error")
}

func TestLoadChallengesDailyDeterministic(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 20, nil)

	first, err := f.svc.LoadChallenges(context.Background(), "JA", "HIRAGANA", domain.StudyModeDaily)
	require.NoError(t, err)
	second, err := f.svc.LoadChallenges(context.Background(), "JA", "HIRAGANA", domain.StudyModeDaily)
	require.NoError(t, err)

	require.Len(t, first, 10)
	assert.Equal(t, first, second, "daily challenges must be reproducible within a day")
}

func TestLoadChallengesOptionsWellFormed(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 20, nil)
	challenges, err := f.svc.LoadChallenges(context.Background(), "JA", "HIRAGANA", domain.StudyModePractice)
	require.NoError(t, err)
	require.Len(t, challenges, 7)

	for _, ch := range challenges {
		assert.Len(t, ch.Options, 4)
		assert.Contains(t, ch.Options, ch.Correct, "options for %s must include the answer", ch.ItemID)

		seen := map[string]struct{}{}
		for _, opt := range ch.Options {
			_, dup := seen[opt]
			assert.False(t, dup, "duplicate option %q for %s", opt, ch.ItemID)
			seen[opt] = struct{}{}
		}
	}
}

func TestLoadChallengesReenablesValidDisabledSelection(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 20, nil)

	ids := make([]string, 10)
	for i := range ids {
		ids[i] = fmt.Sprintf("item-%02d", i)
	}
	require.NoError(t, f.prefs.SetDailySelection(context.Background(), "JA", "HIRAGANA", false, ids))

	challenges, err := f.svc.LoadChallenges(context.Background(), "JA", "HIRAGANA", domain.StudyModeDaily)
	require.NoError(t, err)
	require.Len(t, challenges, 10)

	sel, err := f.prefs.GetDailySelection(context.Background(), "JA", "HIRAGANA")
	require.NoError(t, err)
	assert.True(t, sel.Enabled, "a valid disabled selection that drove the pick gets re-enabled")

	idSet := map[string]struct{}{}
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	for _, ch := range challenges {
		_, ok := idSet[ch.ItemID]
		assert.True(t, ok, "picked %s outside the pinned selection", ch.ItemID)
	}
}

func TestRecordAttemptCorrectAnswer(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, nil)
	session := f.startSession(t)

	result, err := f.svc.RecordAttempt(context.Background(), AttemptInput{
		SessionID:    session.SessionID,
		ItemID:       "item-01",
		ChosenAnswer: "answer-1",
		ResponseMs:   900,
	})
	require.NoError(t, err)

	assert.True(t, result.Evaluation.IsCorrect)
	assert.Equal(t, 16, result.Attempt.BaseXP)
	assert.Equal(t, 16, result.Attempt.XPAwarded)
	assert.Equal(t, 1.0, result.Attempt.XPMultiplier)
	assert.Equal(t, "answer-1", result.Attempt.CorrectAnswer)

	// Scheduler advanced the item.
	assert.Equal(t, 1, result.State.Repetitions)
	assert.Equal(t, 1, result.State.IntervalDays)
	persisted, err := f.states.Get(context.Background(), "item-01")
	require.NoError(t, err)
	assert.Equal(t, result.State, persisted)

	// One sync event queued.
	pending, err := f.events.GetPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.SyncEventTypeAttempt, pending[0].Type)
	assert.Contains(t, pending[0].PayloadJSON, result.Attempt.AttemptID)
}

func TestRecordAttemptWrongAnswerAwardsNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, nil)
	session := f.startSession(t)

	result, err := f.svc.RecordAttempt(context.Background(), AttemptInput{
		SessionID:    session.SessionID,
		ItemID:       "item-01",
		ChosenAnswer: "answer-3",
		ResponseMs:   400,
	})
	require.NoError(t, err)

	assert.False(t, result.Evaluation.IsCorrect)
	assert.Zero(t, result.Attempt.BaseXP)
	assert.Zero(t, result.Attempt.XPAwarded)
	assert.Equal(t, 1, result.State.Lapses)
}

func TestRecordAttemptHintsReduceXP(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, nil)
	session := f.startSession(t)

	result, err := f.svc.RecordAttempt(context.Background(), AttemptInput{
		SessionID:    session.SessionID,
		ItemID:       "item-01",
		ChosenAnswer: "answer-1",
		ResponseMs:   900,
		HintCount:    1,
	})
	require.NoError(t, err)

	assert.Equal(t, 16, result.Attempt.BaseXP)
	assert.Equal(t, 0.35, result.Attempt.XPMultiplier)
	assert.Equal(t, 6, result.Attempt.XPAwarded)
}

func TestRecordAttemptTolerantMatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, nil)
	f.items.items[1].Answer = "nǐ hǎo"
	session := f.startSession(t)

	result, err := f.svc.RecordAttempt(context.Background(), AttemptInput{
		SessionID:    session.SessionID,
		ItemID:       "item-01",
		ChosenAnswer: "ni  hao",
		ResponseMs:   900,
	})
	require.NoError(t, err)

	assert.True(t, result.Evaluation.IsCorrect)
	assert.NotEmpty(t, result.Evaluation.ToleranceNote)
}

func TestRecordAttemptSchedulerFailureKeepsState(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, failingStrategy{})
	session := f.startSession(t)

	prior := domain.RepetitionState{
		ItemID: "item-01", Ease: 2.7, IntervalDays: 6, Repetitions: 3, DueAtMs: 42,
	}
	require.NoError(t, f.states.Upsert(context.Background(), prior))

	result, err := f.svc.RecordAttempt(context.Background(), AttemptInput{
		SessionID:    session.SessionID,
		ItemID:       "item-01",
		ChosenAnswer: "answer-1",
		ResponseMs:   900,
	})
	require.NoError(t, err, "a broken scheduler must not fail the attempt")

	assert.Equal(t, prior, result.State, "state returned unchanged on scheduler failure")
	persisted, err := f.states.Get(context.Background(), "item-01")
	require.NoError(t, err)
	assert.Equal(t, prior, persisted, "state persisted unchanged on scheduler failure")

	// The attempt itself still counts.
	count, err := f.attempts.CountBySession(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordAttemptUnknownSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, nil)
	_, err := f.svc.RecordAttempt(context.Background(), AttemptInput{
		SessionID: "nope", ItemID: "item-01",
	})
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestRecordAttemptUnknownItem(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, nil)
	session := f.startSession(t)

	_, err := f.svc.RecordAttempt(context.Background(), AttemptInput{
		SessionID: session.SessionID, ItemID: "missing",
	})
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestRecordAttemptOnClosedSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, nil)
	session := f.startSession(t)
	_, err := f.svc.FinishSession(context.Background(), session.SessionID)
	require.NoError(t, err)

	_, err = f.svc.RecordAttempt(context.Background(), AttemptInput{
		SessionID: session.SessionID, ItemID: "item-01", ChosenAnswer: "answer-1",
	})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestFinishSessionAggregatesAndCredits(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, nil)
	session := f.startSession(t)

	submit := func(item, answer string, responseMs int64) {
		_, err := f.svc.RecordAttempt(context.Background(), AttemptInput{
			SessionID:    session.SessionID,
			ItemID:       item,
			ChosenAnswer: answer,
			ResponseMs:   responseMs,
		})
		require.NoError(t, err)
	}
	submit("item-00", "answer-0", 1000) // correct, 16 XP
	submit("item-01", "answer-1", 2000) // correct, 13 XP
	submit("item-02", "wrong", 3000)    // wrong, 0 XP

	f.now = f.now.Add(5 * time.Minute)
	finished, err := f.svc.FinishSession(context.Background(), session.SessionID)
	require.NoError(t, err)

	assert.Equal(t, 29, finished.XPGained)
	assert.Equal(t, 2, finished.CorrectCount)
	assert.Equal(t, 1, finished.WrongCount)
	assert.Equal(t, int64(2000), finished.AvgResponseMs)
	assert.False(t, finished.Abandoned)
	assert.NotZero(t, finished.EndedAtMs)

	// Profile credited exactly once with the session total.
	require.Len(t, f.prefs.xpCredits, 1)
	assert.Equal(t, 29, f.prefs.xpCredits[0])

	// SESSION_END event queued after the three attempt events.
	pending, err := f.events.GetPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 4)
	assert.Equal(t, domain.SyncEventTypeSessionEnd, pending[3].Type)
}

func TestAbortSessionDoesNotCreditProfile(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, nil)
	session := f.startSession(t)

	_, err := f.svc.RecordAttempt(context.Background(), AttemptInput{
		SessionID:    session.SessionID,
		ItemID:       "item-00",
		ChosenAnswer: "answer-0",
		ResponseMs:   1000,
	})
	require.NoError(t, err)

	aborted, err := f.svc.AbortSession(context.Background(), session.SessionID)
	require.NoError(t, err)

	assert.True(t, aborted.Abandoned)
	assert.Equal(t, 16, aborted.XPGained, "aggregates still reflect recorded attempts")
	assert.Empty(t, f.prefs.xpCredits, "aborted sessions earn no profile credit")

	pending, err := f.events.GetPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, domain.SyncEventTypeSessionAbort, pending[1].Type)
}

func TestFinalizeTwiceRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, nil)
	session := f.startSession(t)

	_, err := f.svc.FinishSession(context.Background(), session.SessionID)
	require.NoError(t, err)

	_, err = f.svc.FinishSession(context.Background(), session.SessionID)
	assert.ErrorIs(t, err, ErrSessionClosed)
	_, err = f.svc.AbortSession(context.Background(), session.SessionID)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestAttemptsForSessionUnknownSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5, nil)
	_, err := f.svc.AttemptsForSession(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
