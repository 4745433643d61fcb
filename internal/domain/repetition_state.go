package domain

import "errors"

// Default values for a repetition state that has never been reviewed.
const (
	DefaultEase = 2.5
)

// Common validation errors for RepetitionState
var (
	ErrStateItemIDEmpty = errors.New("repetition state item ID cannot be empty")
	ErrStateInvalidEase = errors.New("ease must be greater than 1.0")
	ErrStateNegative    = errors.New("interval, repetitions and lapses must be >= 0")
)

// RepetitionState tracks spaced-repetition progress for a single item.
// Exactly one state exists per seeded item; it is never deleted, only
// replaced by the value returned from the repetition strategy.
type RepetitionState struct {
	ItemID       string  `json:"itemId"`
	Ease         float64 `json:"ease"`         // interval growth multiplier, starts at 2.5
	IntervalDays int     `json:"intervalDays"` // days until the next due date
	Repetitions  int     `json:"repetitions"`  // consecutive correct reviews
	Lapses       int     `json:"lapses"`       // incorrect answers after having been learned
	DueAtMs      int64   `json:"dueAtMs"`      // epoch millis when the item is due again
}

// NewRepetitionState returns the default state for an item that has never
// been seen: due immediately, default ease, no history.
func NewRepetitionState(itemID string) RepetitionState {
	return RepetitionState{
		ItemID:       itemID,
		Ease:         DefaultEase,
		IntervalDays: 0,
		Repetitions:  0,
		Lapses:       0,
		DueAtMs:      0,
	}
}

// Validate checks if the RepetitionState has valid data.
func (s *RepetitionState) Validate() error {
	if s.ItemID == "" {
		return ErrStateItemIDEmpty
	}
	if s.Ease <= 1.0 {
		return ErrStateInvalidEase
	}
	if s.IntervalDays < 0 || s.Repetitions < 0 || s.Lapses < 0 {
		return ErrStateNegative
	}
	return nil
}
