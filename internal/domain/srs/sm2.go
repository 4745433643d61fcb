package srs

import (
	"math"

	"github.com/trililingo/trililingo-api/internal/domain"
)

const dayMs = 24 * 60 * 60 * 1000

// Params holds the tunable constants of the default SM-2 variant.
type Params struct {
	// MinEase and MaxEase clamp the ease factor.
	MinEase float64
	MaxEase float64

	// EaseReward is added to ease on a correct answer.
	EaseReward float64

	// EasePenalty is subtracted from ease on an incorrect answer.
	EasePenalty float64

	// SlowPenalty is an extra ease reduction applied when the response
	// took longer than SlowResponseMs.
	SlowPenalty    float64
	SlowResponseMs int64
}

// NewDefaultParams returns the default SM-2 parameters.
func NewDefaultParams() Params {
	return Params{
		MinEase:        1.3,
		MaxEase:        2.9,
		EaseReward:     0.06,
		EasePenalty:    0.20,
		SlowPenalty:    0.05,
		SlowResponseMs: 4000,
	}
}

// sm2Strategy is the default Strategy implementation: an SM-2 variant
// with short fixed early intervals (1 and 3 days) and a mild
// slow-response ease penalty.
type sm2Strategy struct {
	params Params
}

// NewDefaultStrategy creates the default SM-2 strategy.
func NewDefaultStrategy() Strategy {
	return &sm2Strategy{params: NewDefaultParams()}
}

// NewStrategyWithParams creates an SM-2 strategy with custom parameters.
func NewStrategyWithParams(params Params) Strategy {
	return &sm2Strategy{params: params}
}

// UpdateState implements Strategy.
//
// Correct: repetitions grow, ease drifts up (down when slow), and the
// interval follows 1 day, 3 days, then round(interval * ease). Incorrect:
// lapses grow by one, repetitions reset, ease drops, interval resets to
// one day. The new due time is always nowMs + interval.
func (s *sm2Strategy) UpdateState(
	state domain.RepetitionState,
	isCorrect bool,
	nowMs int64,
	responseMs int64,
) (domain.RepetitionState, error) {
	if state.ItemID == "" {
		return state, ErrEmptyItemID
	}

	p := s.params

	slowPenalty := 0.0
	if responseMs > p.SlowResponseMs {
		slowPenalty = p.SlowPenalty
	}

	next := state

	if isCorrect {
		next.Repetitions++
		next.Ease = clamp(state.Ease+p.EaseReward-slowPenalty, p.MinEase, p.MaxEase)

		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 3
		default:
			grown := int(math.Round(float64(state.IntervalDays) * next.Ease))
			if grown < 1 {
				grown = 1
			}
			next.IntervalDays = grown
		}
	} else {
		next.Lapses++
		next.Repetitions = 0
		next.Ease = clamp(state.Ease-(p.EasePenalty+slowPenalty), p.MinEase, p.MaxEase)
		next.IntervalDays = 1
	}

	next.DueAtMs = nowMs + int64(next.IntervalDays)*dayMs
	return next, nil
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
