package engine

import "math"

// Score returns the base XP for an attempt: nothing for a wrong answer,
// 10 plus a speed bonus for a correct one.
func Score(isCorrect bool, responseMs int64) int {
	if !isCorrect {
		return 0
	}

	base := 10
	var speedBonus int
	switch {
	case responseMs <= 1200:
		speedBonus = 6
	case responseMs <= 2200:
		speedBonus = 3
	case responseMs <= 4000:
		speedBonus = 1
	default:
		speedBonus = 0
	}
	return base + speedBonus
}

// HintMultiplier maps the number of revealed hints to an XP multiplier.
// The curve is a fixed design constant, monotonically decreasing.
func HintMultiplier(hintCount int) float64 {
	if hintCount < 0 {
		hintCount = 0
	}
	switch hintCount {
	case 0:
		return 1.00
	case 1:
		return 0.35
	case 2:
		return 0.25
	case 3:
		return 0.18
	default:
		return 0.12
	}
}

// FinalXP applies the hint multiplier to the base XP. A correct answer
// with positive base XP always earns at least 1 XP, even under the
// maximal hint penalty; a wrong answer always earns 0.
func FinalXP(baseXP int, multiplier float64, isCorrect bool) int {
	if !isCorrect {
		return 0
	}

	safe := multiplier
	if safe < 0 {
		safe = 0
	}
	if safe >= 1.0 {
		return baseXP
	}

	xp := int(math.Round(float64(baseXP) * safe))
	if xp < 1 && baseXP > 0 {
		return 1
	}
	return xp
}
