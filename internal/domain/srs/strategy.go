// Package srs implements the spaced-repetition scheduling strategy.
// The strategy is pluggable: callers depend on the Strategy interface
// and treat update failures as a no-op, keeping the previous state.
package srs

import (
	"errors"

	"github.com/trililingo/trililingo-api/internal/domain"
)

// Common errors
var (
	ErrEmptyItemID = errors.New("repetition state item ID cannot be empty")
)

// Strategy computes the next repetition state for an item after an
// attempt. Implementations must be pure: they return a new state and
// never mutate the input.
//
// Contract: on success the new due time is never earlier than nowMs;
// on failure lapses grow by exactly 1 and the interval does not grow.
type Strategy interface {
	UpdateState(
		state domain.RepetitionState,
		isCorrect bool,
		nowMs int64,
		responseMs int64,
	) (domain.RepetitionState, error)
}
