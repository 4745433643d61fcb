package engine

// DefaultOptionCount is how many answer choices a challenge carries,
// the correct one included.
const DefaultOptionCount = 4

// BuildOptions assembles the multiple-choice options for one challenge.
//
// The correct answer is always present exactly once. Distractors named by
// the item's metadata are preferred; the rest is filled from the pool's
// distinct answers. seedKey must combine the item id, the day key, and
// the mode so options are stable per item per day but vary across items
// and days. When fewer distinct candidates exist than desired, the
// result is simply shorter; the function never pads and never errors.
func BuildOptions(correct string, preferredDistractors, poolAnswers []string, seedKey string, desired int) []string {
	rng := newRNG(seedKey)

	picks := make([]string, 0, desired)
	picks = append(picks, correct)
	seen := map[string]struct{}{correct: {}}

	preferred := make([]string, 0, len(preferredDistractors))
	for _, a := range distinct(preferredDistractors) {
		if a != correct {
			preferred = append(preferred, a)
		}
	}
	for _, a := range shuffled(preferred, rng) {
		if len(picks) >= desired {
			break
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		picks = append(picks, a)
	}

	pool := make([]string, 0, len(poolAnswers))
	for _, a := range distinct(poolAnswers) {
		if a != correct {
			pool = append(pool, a)
		}
	}
	for _, a := range shuffled(pool, rng) {
		if len(picks) >= desired {
			break
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		picks = append(picks, a)
	}

	return truncate(shuffled(picks, rng), desired)
}
