package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"time"
)

// referenceZone anchors day keys. The app's daily challenge rolls over at
// midnight in this zone no matter where the device is; changing it would
// shift every user's daily set.
var referenceZone = loadReferenceZone()

func loadReferenceZone() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// No tzdata available. Brazil has no DST, so a fixed offset is
		// an exact replacement.
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}

// DayKey returns the calendar date of nowMs in the reference timezone,
// formatted YYYY-MM-DD. It is the anchor for daily determinism.
func DayKey(nowMs int64) string {
	return time.UnixMilli(nowMs).In(referenceZone).Format("2006-01-02")
}

// EpochDay returns the number of whole days since 1970-01-01 for the
// calendar date of nowMs in the reference timezone. Used for streak
// bookkeeping.
func EpochDay(nowMs int64) int64 {
	t := time.UnixMilli(nowMs).In(referenceZone)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / (24 * 60 * 60)
}

// StableSeed hashes a key through SHA-256 and folds the first 4 bytes,
// big-endian, into a signed 32-bit seed. The exact derivation is
// preserved bit-for-bit so that another implementation (e.g. a server
// recomputing a user's daily set) can reproduce it.
func StableSeed(key string) int32 {
	sum := sha256.Sum256([]byte(key))
	return int32(binary.BigEndian.Uint32(sum[:4]))
}

// newRNG returns a PRNG seeded from a string key via StableSeed.
func newRNG(key string) *rand.Rand {
	return rand.New(rand.NewSource(int64(StableSeed(key))))
}

// shuffled returns a shuffled copy of ids using the given PRNG. The
// input slice is never modified.
func shuffled(ids []string, rng *rand.Rand) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// distinct returns the ids with duplicates removed, first occurrence
// order preserved.
func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
