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

// SessionStore implements store.SessionStore on SQLite.
type SessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSessionStore creates a SQLite-backed session store.
func NewSessionStore(db store.DBTX, logger *slog.Logger) *SessionStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure SessionStore implements store.SessionStore
var _ store.SessionStore = (*SessionStore)(nil)

// Create implements store.SessionStore.Create.
func (s *SessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}

	query := `INSERT INTO study_sessions
		(session_id, language, activity_type, started_at_ms, ended_at_ms,
		 xp_gained, avg_response_ms, correct_count, wrong_count, abandoned)
		VALUES (?, ?, ?, ?, NULL, 0, 0, 0, 0, 0)`

	_, err := s.db.ExecContext(ctx, query,
		session.SessionID, session.Language, session.ActivityType, session.StartedAtMs)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Get implements store.SessionStore.Get.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.StudySession, error) {
	query := `SELECT session_id, language, activity_type, started_at_ms,
		COALESCE(ended_at_ms, 0), xp_gained, avg_response_ms,
		correct_count, wrong_count, abandoned
		FROM study_sessions WHERE session_id = ?`

	var session domain.StudySession
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(
		&session.SessionID, &session.Language, &session.ActivityType, &session.StartedAtMs,
		&session.EndedAtMs, &session.XPGained, &session.AvgResponseMs,
		&session.CorrectCount, &session.WrongCount, &session.Abandoned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// Finish implements store.SessionStore.Finish.
func (s *SessionStore) Finish(ctx context.Context, sessionID string, endedAtMs int64, totals domain.SessionTotals, abandoned bool) error {
	query := `UPDATE study_sessions SET
		ended_at_ms = ?, xp_gained = ?, avg_response_ms = ?,
		correct_count = ?, wrong_count = ?, abandoned = ?
		WHERE session_id = ?`

	result, err := s.db.ExecContext(ctx, query,
		endedAtMs, totals.XPGained, totals.AvgResponseMs,
		totals.CorrectCount, totals.WrongCount, abandoned, sessionID)
	if err != nil {
		return fmt.Errorf("failed to finish session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check finish result: %w", err)
	}
	if affected == 0 {
		return store.ErrSessionNotFound
	}
	return nil
}

// Latest implements store.SessionStore.Latest.
func (s *SessionStore) Latest(ctx context.Context, limit int) ([]domain.StudySession, error) {
	query := `SELECT session_id, language, activity_type, started_at_ms,
		COALESCE(ended_at_ms, 0), xp_gained, avg_response_ms,
		correct_count, wrong_count, abandoned
		FROM study_sessions
		ORDER BY started_at_ms DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []domain.StudySession
	for rows.Next() {
		var session domain.StudySession
		if err := rows.Scan(
			&session.SessionID, &session.Language, &session.ActivityType, &session.StartedAtMs,
			&session.EndedAtMs, &session.XPGained, &session.AvgResponseMs,
			&session.CorrectCount, &session.WrongCount, &session.Abandoned); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}
	return sessions, nil
}
