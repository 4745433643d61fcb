package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/store"
)

// SyncEventStore implements store.SyncEventStore on SQLite.
type SyncEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSyncEventStore creates a SQLite-backed sync event store.
func NewSyncEventStore(db store.DBTX, logger *slog.Logger) *SyncEventStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "sync_event_store")),
	}
}

// Ensure SyncEventStore implements store.SyncEventStore
var _ store.SyncEventStore = (*SyncEventStore)(nil)

// Append implements store.SyncEventStore.Append.
func (s *SyncEventStore) Append(ctx context.Context, event domain.SyncEvent) error {
	query := `INSERT INTO sync_events (event_id, type, payload_json, created_at_ms, state)
		VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		event.EventID, event.Type, event.PayloadJSON, event.CreatedAtMs, string(event.State))
	if err != nil {
		return fmt.Errorf("failed to append sync event: %w", err)
	}
	return nil
}

// GetPending implements store.SyncEventStore.GetPending.
func (s *SyncEventStore) GetPending(ctx context.Context, limit int) ([]domain.SyncEvent, error) {
	query := `SELECT event_id, type, payload_json, created_at_ms, state
		FROM sync_events
		WHERE state = ?
		ORDER BY created_at_ms ASC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, string(domain.SyncEventPending), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending sync events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []domain.SyncEvent
	for rows.Next() {
		var ev domain.SyncEvent
		var state string
		if err := rows.Scan(&ev.EventID, &ev.Type, &ev.PayloadJSON, &ev.CreatedAtMs, &state); err != nil {
			return nil, fmt.Errorf("failed to scan sync event row: %w", err)
		}
		ev.State = domain.SyncEventState(state)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync event rows: %w", err)
	}
	return events, nil
}

// SetState implements store.SyncEventStore.SetState.
func (s *SyncEventStore) SetState(ctx context.Context, eventID string, state domain.SyncEventState) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sync_events SET state = ? WHERE event_id = ?`, string(state), eventID)
	if err != nil {
		return fmt.Errorf("failed to update sync event state: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check sync event update result: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// CountByState implements store.SyncEventStore.CountByState.
func (s *SyncEventStore) CountByState(ctx context.Context, state domain.SyncEventState) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sync_events WHERE state = ?`, string(state)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sync events: %w", err)
	}
	return count, nil
}
