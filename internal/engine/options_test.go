package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOptionsContainsCorrectExactlyOnce(t *testing.T) {
	t.Parallel()

	pool := []string{"a", "i", "u", "e", "o", "ka", "ki", "ku"}
	options := BuildOptions("ka", nil, pool, "item-1|2024-06-10|DAILY", 4)

	require.Len(t, options, 4)
	count := 0
	for _, opt := range options {
		if opt == "ka" {
			count++
		}
	}
	assert.Equal(t, 1, count, "correct answer must appear exactly once")
}

func TestBuildOptionsNoDuplicates(t *testing.T) {
	t.Parallel()

	// Pool deliberately repeats answers.
	pool := []string{"a", "a", "i", "i", "u", "e", "o", "ka"}
	options := BuildOptions("ka", []string{"a", "a"}, pool, "item-1|2024-06-10|DAILY", 4)

	seen := map[string]struct{}{}
	for _, opt := range options {
		_, dup := seen[opt]
		assert.False(t, dup, "option %q duplicated", opt)
		seen[opt] = struct{}{}
	}
}

func TestBuildOptionsPrefersNamedDistractors(t *testing.T) {
	t.Parallel()

	pool := []string{"a", "i", "u", "e", "o", "sa", "shi", "su"}
	preferred := []string{"ki", "ko", "ku"}
	options := BuildOptions("ka", preferred, pool, "item-1|2024-06-10|DAILY", 4)

	require.Len(t, options, 4)
	preferredSeen := 0
	for _, opt := range options {
		for _, p := range preferred {
			if opt == p {
				preferredSeen++
			}
		}
	}
	assert.Equal(t, 3, preferredSeen, "all named distractors fit and must be used")
}

func TestBuildOptionsDeterministicPerSeedKey(t *testing.T) {
	t.Parallel()

	pool := make([]string, 30)
	for i := range pool {
		pool[i] = fmt.Sprintf("ans-%d", i)
	}

	first := BuildOptions("ans-0", nil, pool, "item-1|2024-06-10|DAILY", 4)
	second := BuildOptions("ans-0", nil, pool, "item-1|2024-06-10|DAILY", 4)
	assert.Equal(t, first, second, "same seed key must give the same options in the same order")

	otherDay := BuildOptions("ans-0", nil, pool, "item-1|2024-06-11|DAILY", 4)
	assert.NotEqual(t, first, otherDay, "a different day should vary the distractor draw")
}

func TestBuildOptionsShortPoolNeverPads(t *testing.T) {
	t.Parallel()

	options := BuildOptions("ka", nil, []string{"ka", "a"}, "item-1|2024-06-10|DAILY", 4)
	assert.ElementsMatch(t, []string{"ka", "a"}, options,
		"fewer candidates than desired yields a shorter set, never padding")
}

func TestBuildOptionsCorrectNeverDroppedByPreferred(t *testing.T) {
	t.Parallel()

	// Preferred distractors that collide with the correct answer are
	// filtered out, not allowed to displace it.
	options := BuildOptions("ka", []string{"ka", "ki"}, []string{"ku", "ke"}, "k|2024-06-10|PRACTICE", 3)
	assert.Contains(t, options, "ka")
	assert.Len(t, options, 3)
}
