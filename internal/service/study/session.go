package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
)

// StartSession opens a new study session.
func (s *Service) StartSession(ctx context.Context, language, activityType string) (*domain.StudySession, error) {
	session, err := domain.NewStudySession(language, activityType, s.nowMs())
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.logger.InfoContext(ctx, "session started",
		slog.String("session_id", session.SessionID),
		slog.String("language", language),
		slog.String("activity_type", activityType))
	return session, nil
}

// FinishSession finalizes a session as completed, with aggregates
// derived from the attempt log, and credits the earned XP and streak.
func (s *Service) FinishSession(ctx context.Context, sessionID string) (*domain.StudySession, error) {
	session, err := s.finalize(ctx, sessionID, false)
	if err != nil {
		return nil, err
	}

	// XP and streak credit happens only on a completed session; an
	// aborted one earns nothing extra.
	if err := s.prefs.AddXPAndUpdateStreak(ctx, session.XPGained); err != nil {
		s.logger.WarnContext(ctx, "failed to credit xp and streak",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
	}

	s.enqueueEvent(ctx, domain.SyncEventTypeSessionEnd, session, session.EndedAtMs)
	return session, nil
}

// AbortSession finalizes a session as abandoned. Attempts already
// recorded keep their XP in the session aggregates, but nothing is
// credited to the profile.
func (s *Service) AbortSession(ctx context.Context, sessionID string) (*domain.StudySession, error) {
	session, err := s.finalize(ctx, sessionID, true)
	if err != nil {
		return nil, err
	}
	s.enqueueEvent(ctx, domain.SyncEventTypeSessionAbort, session, session.EndedAtMs)
	return session, nil
}

// finalize computes the aggregates from the attempt log and closes the
// session exactly once.
func (s *Service) finalize(ctx context.Context, sessionID string, abandoned bool) (*domain.StudySession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.EndedAtMs != 0 {
		return nil, ErrSessionClosed
	}

	attempts, err := s.attempts.BySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}
	totals := computeTotals(attempts)

	endedAtMs := s.nowMs()
	if err := s.sessions.Finish(ctx, sessionID, endedAtMs, totals, abandoned); err != nil {
		return nil, fmt.Errorf("failed to finalize session: %w", err)
	}

	session.EndedAtMs = endedAtMs
	session.XPGained = totals.XPGained
	session.AvgResponseMs = totals.AvgResponseMs
	session.CorrectCount = totals.CorrectCount
	session.WrongCount = totals.WrongCount
	session.Abandoned = abandoned

	s.logger.InfoContext(ctx, "session finalized",
		slog.String("session_id", sessionID),
		slog.Bool("abandoned", abandoned),
		slog.Int("xp_gained", totals.XPGained),
		slog.Int("correct", totals.CorrectCount),
		slog.Int("wrong", totals.WrongCount))
	return session, nil
}

// computeTotals folds the attempt log into session aggregates. The log
// is the source of truth; clients never supply totals.
func computeTotals(attempts []domain.Attempt) domain.SessionTotals {
	var totals domain.SessionTotals
	var responseSum int64
	for _, a := range attempts {
		totals.XPGained += a.XPAwarded
		responseSum += a.ResponseMs
		if a.IsCorrect {
			totals.CorrectCount++
		} else {
			totals.WrongCount++
		}
	}
	if n := len(attempts); n > 0 {
		totals.AvgResponseMs = responseSum / int64(n)
	}
	return totals
}

// Session returns one session by id.
func (s *Service) Session(ctx context.Context, sessionID string) (*domain.StudySession, error) {
	return s.sessions.Get(ctx, sessionID)
}

// LatestSessions returns the most recently started sessions, newest
// first.
func (s *Service) LatestSessions(ctx context.Context, limit int) ([]domain.StudySession, error) {
	return s.sessions.Latest(ctx, limit)
}

// AttemptsForSession returns a session's attempts in submission order.
func (s *Service) AttemptsForSession(ctx context.Context, sessionID string) ([]domain.Attempt, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.attempts.BySession(ctx, sessionID)
}
