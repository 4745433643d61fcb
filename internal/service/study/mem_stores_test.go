package study

import (
	"context"
	"sort"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/store"
)

// In-memory store fakes for service tests. They honor the store
// contracts (sentinel errors, ordering) without a database.

type memItemStore struct {
	items []domain.LearnableItem
}

func (m *memItemStore) GetBySkill(ctx context.Context, language, skill string) ([]domain.LearnableItem, error) {
	var out []domain.LearnableItem
	for _, item := range m.items {
		if item.Language == language && item.Skill == skill {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memItemStore) GetByIDs(ctx context.Context, ids []string) ([]domain.LearnableItem, error) {
	want := map[string]struct{}{}
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []domain.LearnableItem
	for _, item := range m.items {
		if _, ok := want[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memItemStore) UpsertAll(ctx context.Context, items []domain.LearnableItem) error {
	m.items = append([]domain.LearnableItem(nil), items...)
	return nil
}

func (m *memItemStore) CountAll(ctx context.Context) (int, error) {
	return len(m.items), nil
}

type memStateStore struct {
	states map[string]domain.RepetitionState
	getErr error
}

func newMemStateStore() *memStateStore {
	return &memStateStore{states: map[string]domain.RepetitionState{}}
}

func (m *memStateStore) Get(ctx context.Context, itemID string) (domain.RepetitionState, error) {
	if m.getErr != nil {
		return domain.RepetitionState{}, m.getErr
	}
	st, ok := m.states[itemID]
	if !ok {
		return domain.RepetitionState{}, store.ErrNotFound
	}
	return st, nil
}

func (m *memStateStore) GetAll(ctx context.Context, itemIDs []string) (map[string]domain.RepetitionState, error) {
	out := map[string]domain.RepetitionState{}
	for _, id := range itemIDs {
		if st, ok := m.states[id]; ok {
			out[id] = st
		}
	}
	return out, nil
}

func (m *memStateStore) Upsert(ctx context.Context, state domain.RepetitionState) error {
	m.states[state.ItemID] = state
	return nil
}

func (m *memStateStore) InsertMissing(ctx context.Context, states []domain.RepetitionState) error {
	for _, st := range states {
		if _, ok := m.states[st.ItemID]; !ok {
			m.states[st.ItemID] = st
		}
	}
	return nil
}

type memSessionStore struct {
	sessions map[string]domain.StudySession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]domain.StudySession{}}
}

func (m *memSessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	m.sessions[session.SessionID] = *session
	return nil
}

func (m *memSessionStore) Get(ctx context.Context, sessionID string) (*domain.StudySession, error) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	copied := s
	return &copied, nil
}

func (m *memSessionStore) Finish(ctx context.Context, sessionID string, endedAtMs int64, totals domain.SessionTotals, abandoned bool) error {
	s, ok := m.sessions[sessionID]
	if !ok {
		return store.ErrSessionNotFound
	}
	s.EndedAtMs = endedAtMs
	s.XPGained = totals.XPGained
	s.AvgResponseMs = totals.AvgResponseMs
	s.CorrectCount = totals.CorrectCount
	s.WrongCount = totals.WrongCount
	s.Abandoned = abandoned
	m.sessions[sessionID] = s
	return nil
}

func (m *memSessionStore) Latest(ctx context.Context, limit int) ([]domain.StudySession, error) {
	out := make([]domain.StudySession, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAtMs > out[j].StartedAtMs
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memAttemptStore struct {
	attempts []domain.Attempt
}

func (m *memAttemptStore) Append(ctx context.Context, attempt domain.Attempt) error {
	m.attempts = append(m.attempts, attempt)
	return nil
}

func (m *memAttemptStore) BySession(ctx context.Context, sessionID string) ([]domain.Attempt, error) {
	var out []domain.Attempt
	for _, a := range m.attempts {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAttemptStore) CountBySession(ctx context.Context, sessionID string) (int, error) {
	got, _ := m.BySession(ctx, sessionID)
	return len(got), nil
}

type memEventStore struct {
	events []domain.SyncEvent
}

func (m *memEventStore) Append(ctx context.Context, event domain.SyncEvent) error {
	m.events = append(m.events, event)
	return nil
}

func (m *memEventStore) GetPending(ctx context.Context, limit int) ([]domain.SyncEvent, error) {
	var out []domain.SyncEvent
	for _, e := range m.events {
		if e.State == domain.SyncEventPending {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memEventStore) SetState(ctx context.Context, eventID string, state domain.SyncEventState) error {
	for i := range m.events {
		if m.events[i].EventID == eventID {
			m.events[i].State = state
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memEventStore) CountByState(ctx context.Context, state domain.SyncEventState) (int, error) {
	n := 0
	for _, e := range m.events {
		if e.State == state {
			n++
		}
	}
	return n, nil
}

// memPrefs implements PrefsAccess in memory.
type memPrefs struct {
	selections map[string]domain.DailySelection
	xpCredits  []int
	streakHits int
}

func newMemPrefs() *memPrefs {
	return &memPrefs{selections: map[string]domain.DailySelection{}}
}

func (m *memPrefs) GetDailySelection(ctx context.Context, language, skill string) (domain.DailySelection, error) {
	return m.selections[domain.DailySelectionKey(language, skill)], nil
}

func (m *memPrefs) SetDailySelection(ctx context.Context, language, skill string, enabled bool, itemIDs []string) error {
	m.selections[domain.DailySelectionKey(language, skill)] = domain.DailySelection{
		Enabled: enabled,
		ItemIDs: itemIDs,
	}
	return nil
}

func (m *memPrefs) AddXPAndUpdateStreak(ctx context.Context, xpEarned int) error {
	m.xpCredits = append(m.xpCredits, xpEarned)
	m.streakHits++
	return nil
}
