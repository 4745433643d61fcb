package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/store"
)

// AttemptStore implements store.AttemptStore on SQLite. The table is
// append-only; there are deliberately no update or delete statements.
type AttemptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAttemptStore creates a SQLite-backed attempt store.
func NewAttemptStore(db store.DBTX, logger *slog.Logger) *AttemptStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttemptStore{
		db:     db,
		logger: logger.With(slog.String("component", "attempt_store")),
	}
}

// Ensure AttemptStore implements store.AttemptStore
var _ store.AttemptStore = (*AttemptStore)(nil)

// Append implements store.AttemptStore.Append.
func (s *AttemptStore) Append(ctx context.Context, attempt domain.Attempt) error {
	if err := attempt.Validate(); err != nil {
		return fmt.Errorf("invalid attempt: %w", err)
	}

	query := `INSERT INTO activity_attempts
		(attempt_id, session_id, item_id, is_correct, response_ms,
		 chosen_answer, correct_answer, hint_count, base_xp,
		 xp_multiplier, xp_awarded, created_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		attempt.AttemptID, attempt.SessionID, attempt.ItemID, attempt.IsCorrect,
		attempt.ResponseMs, attempt.ChosenAnswer, attempt.CorrectAnswer,
		attempt.HintCount, attempt.BaseXP, attempt.XPMultiplier,
		attempt.XPAwarded, attempt.CreatedAtMs)
	if err != nil {
		return fmt.Errorf("failed to append attempt: %w", err)
	}
	return nil
}

// BySession implements store.AttemptStore.BySession.
func (s *AttemptStore) BySession(ctx context.Context, sessionID string) ([]domain.Attempt, error) {
	query := `SELECT attempt_id, session_id, item_id, is_correct, response_ms,
		chosen_answer, correct_answer, hint_count, base_xp,
		xp_multiplier, xp_awarded, created_at_ms
		FROM activity_attempts
		WHERE session_id = ?
		ORDER BY created_at_ms ASC`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var attempts []domain.Attempt
	for rows.Next() {
		var a domain.Attempt
		if err := rows.Scan(
			&a.AttemptID, &a.SessionID, &a.ItemID, &a.IsCorrect, &a.ResponseMs,
			&a.ChosenAnswer, &a.CorrectAnswer, &a.HintCount, &a.BaseXP,
			&a.XPMultiplier, &a.XPAwarded, &a.CreatedAtMs); err != nil {
			return nil, fmt.Errorf("failed to scan attempt row: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempt rows: %w", err)
	}
	return attempts, nil
}

// CountBySession implements store.AttemptStore.CountBySession.
func (s *AttemptStore) CountBySession(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activity_attempts WHERE session_id = ?`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return count, nil
}
