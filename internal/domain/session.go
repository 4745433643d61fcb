package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Common validation errors for StudySession
var (
	ErrSessionLanguageEmpty = errors.New("session language cannot be empty")
	ErrSessionActivityEmpty = errors.New("session activity type cannot be empty")
)

// StudySession is one quiz run. It is created when the user starts a
// session and finalized exactly once, either as completed or abandoned,
// with the aggregates accumulated up to that point.
type StudySession struct {
	SessionID     string `json:"session_id"`
	Language      string `json:"language"`
	ActivityType  string `json:"activity_type"` // "LESSON", "DAILY", ...
	StartedAtMs   int64  `json:"started_at_ms"`
	EndedAtMs     int64  `json:"ended_at_ms,omitempty"` // 0 while the session is open
	XPGained      int    `json:"xp_gained"`
	AvgResponseMs int64  `json:"avg_response_ms"`
	CorrectCount  int    `json:"correct_count"`
	WrongCount    int    `json:"wrong_count"`
	Abandoned     bool   `json:"abandoned"`
}

// NewStudySession creates an open session with a fresh ID.
func NewStudySession(language, activityType string, nowMs int64) (*StudySession, error) {
	s := &StudySession{
		SessionID:    uuid.New().String(),
		Language:     language,
		ActivityType: activityType,
		StartedAtMs:  nowMs,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the StudySession has valid data.
func (s *StudySession) Validate() error {
	if s.Language == "" {
		return ErrSessionLanguageEmpty
	}
	if s.ActivityType == "" {
		return ErrSessionActivityEmpty
	}
	return nil
}

// SessionTotals are the aggregates a session is finalized with. They are
// derived from the attempt log, never supplied by the client.
type SessionTotals struct {
	XPGained      int
	AvgResponseMs int64
	CorrectCount  int
	WrongCount    int
}
