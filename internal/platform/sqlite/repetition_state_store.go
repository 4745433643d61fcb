package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/store"
)

// RepetitionStateStore implements store.RepetitionStateStore on SQLite.
type RepetitionStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewRepetitionStateStore creates a SQLite-backed repetition state store.
func NewRepetitionStateStore(db store.DBTX, logger *slog.Logger) *RepetitionStateStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RepetitionStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "repetition_state_store")),
	}
}

// Ensure RepetitionStateStore implements store.RepetitionStateStore
var _ store.RepetitionStateStore = (*RepetitionStateStore)(nil)

// WithTx returns a copy of the store bound to the given transaction.
func (s *RepetitionStateStore) WithTx(tx *sql.Tx) *RepetitionStateStore {
	return &RepetitionStateStore{db: tx, logger: s.logger}
}

// Get implements store.RepetitionStateStore.Get.
func (s *RepetitionStateStore) Get(ctx context.Context, itemID string) (domain.RepetitionState, error) {
	query := `SELECT item_id, ease, interval_days, repetitions, lapses, due_at_ms
		FROM srs_states WHERE item_id = ?`

	var state domain.RepetitionState
	err := s.db.QueryRowContext(ctx, query, itemID).Scan(
		&state.ItemID, &state.Ease, &state.IntervalDays,
		&state.Repetitions, &state.Lapses, &state.DueAtMs)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RepetitionState{}, store.ErrNotFound
	}
	if err != nil {
		return domain.RepetitionState{}, fmt.Errorf("failed to get repetition state: %w", err)
	}
	return state, nil
}

// GetAll implements store.RepetitionStateStore.GetAll.
func (s *RepetitionStateStore) GetAll(ctx context.Context, itemIDs []string) (map[string]domain.RepetitionState, error) {
	states := make(map[string]domain.RepetitionState, len(itemIDs))
	if len(itemIDs) == 0 {
		return states, nil
	}

	query := `SELECT item_id, ease, interval_days, repetitions, lapses, due_at_ms
		FROM srs_states WHERE item_id IN (` + placeholders(len(itemIDs)) + `)`

	args := make([]any, len(itemIDs))
	for i, id := range itemIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query repetition states: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var state domain.RepetitionState
		if err := rows.Scan(&state.ItemID, &state.Ease, &state.IntervalDays,
			&state.Repetitions, &state.Lapses, &state.DueAtMs); err != nil {
			return nil, fmt.Errorf("failed to scan repetition state row: %w", err)
		}
		states[state.ItemID] = state
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate repetition state rows: %w", err)
	}
	return states, nil
}

// Upsert implements store.RepetitionStateStore.Upsert.
func (s *RepetitionStateStore) Upsert(ctx context.Context, state domain.RepetitionState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("invalid repetition state for %q: %w", state.ItemID, err)
	}

	query := `INSERT INTO srs_states (item_id, ease, interval_days, repetitions, lapses, due_at_ms)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (item_id) DO UPDATE SET
			ease = excluded.ease,
			interval_days = excluded.interval_days,
			repetitions = excluded.repetitions,
			lapses = excluded.lapses,
			due_at_ms = excluded.due_at_ms`

	_, err := s.db.ExecContext(ctx, query,
		state.ItemID, state.Ease, state.IntervalDays,
		state.Repetitions, state.Lapses, state.DueAtMs)
	if err != nil {
		return fmt.Errorf("failed to upsert repetition state: %w", err)
	}
	return nil
}

// InsertMissing implements store.RepetitionStateStore.InsertMissing.
// Existing states are left untouched.
func (s *RepetitionStateStore) InsertMissing(ctx context.Context, states []domain.RepetitionState) error {
	query := `INSERT INTO srs_states (item_id, ease, interval_days, repetitions, lapses, due_at_ms)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (item_id) DO NOTHING`

	for _, state := range states {
		if err := state.Validate(); err != nil {
			return fmt.Errorf("invalid repetition state for %q: %w", state.ItemID, err)
		}
		_, err := s.db.ExecContext(ctx, query,
			state.ItemID, state.Ease, state.IntervalDays,
			state.Repetitions, state.Lapses, state.DueAtMs)
		if err != nil {
			return fmt.Errorf("failed to insert repetition state for %q: %w", state.ItemID, err)
		}
	}
	return nil
}
