package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Common validation errors for Attempt
var (
	ErrAttemptSessionIDEmpty = errors.New("attempt session ID cannot be empty")
	ErrAttemptItemIDEmpty    = errors.New("attempt item ID cannot be empty")
	ErrAttemptInconsistentXP = errors.New("xp awarded must be 0 for an incorrect attempt")
)

// Attempt is one answer submission. The attempt log is append-only:
// attempts are immutable once written.
//
// Invariant: XPAwarded == 0 when IsCorrect == false; otherwise it is
// round(BaseXP * clamp(XPMultiplier, 0..1)), floored at 1 when the
// multiplier is below 1 and BaseXP is positive.
type Attempt struct {
	AttemptID     string  `json:"attempt_id"`
	SessionID     string  `json:"session_id"`
	ItemID        string  `json:"item_id"`
	IsCorrect     bool    `json:"is_correct"`
	ResponseMs    int64   `json:"response_ms"`
	ChosenAnswer  string  `json:"chosen_answer"`
	CorrectAnswer string  `json:"correct_answer"`
	HintCount     int     `json:"hint_count"`
	BaseXP        int     `json:"base_xp"`
	XPMultiplier  float64 `json:"xp_multiplier"`
	XPAwarded     int     `json:"xp_awarded"`
	CreatedAtMs   int64   `json:"created_at_ms"`
}

// NewAttempt creates an attempt record with a fresh ID.
func NewAttempt(sessionID, itemID string) Attempt {
	return Attempt{
		AttemptID: uuid.New().String(),
		SessionID: sessionID,
		ItemID:    itemID,
	}
}

// Validate checks if the Attempt has valid data.
func (a *Attempt) Validate() error {
	if a.SessionID == "" {
		return ErrAttemptSessionIDEmpty
	}
	if a.ItemID == "" {
		return ErrAttemptItemIDEmpty
	}
	if !a.IsCorrect && a.XPAwarded != 0 {
		return ErrAttemptInconsistentXP
	}
	return nil
}
