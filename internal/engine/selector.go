package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/trililingo/trililingo-api/internal/domain"
)

// SelectInput carries everything the item selector needs. States missing
// an entry for a pool item are treated as never-reviewed (due
// immediately, no lapses).
type SelectInput struct {
	Pool     []domain.LearnableItem
	States   map[string]domain.RepetitionState
	Mode     domain.StudyMode
	Language string
	Skill    string
	NowMs    int64
	Limit    int

	// Selection is the user's pinned daily subset for this
	// (language, skill), nil when none was ever saved. Only honored in
	// daily mode and only when it still has at least
	// domain.DailySelectionMinSize valid ids.
	Selection *domain.DailySelection
}

// SelectResult is the ordered pick plus what the caller needs to know
// about the daily-selection universe.
type SelectResult struct {
	// ItemIDs is the ordered session pick, at most Limit long. Empty
	// when the pool is empty; callers render that as a "no content"
	// state, not an error.
	ItemIDs []string

	// Universe is the valid daily-selection id set that restricted the
	// pick, nil when the whole pool was used. Option building should
	// restrict its candidate pool to the same universe.
	Universe []string

	// ReenabledSelection reports that a disabled selection was still
	// valid and got used; the caller should persist enabled=true to
	// self-heal the flag.
	ReenabledSelection bool
}

// SelectItems picks the ordered item-id set for a session.
//
// Items are ranked by how overdue they are (clamped at zero), ties
// broken by lapse count, so the most neglected and most-failed items
// surface first. Daily mode then applies a seeded shuffle keyed on the
// day so the set is byte-for-byte reproducible within a calendar day;
// practice mode just takes the head of the overdue ranking.
func SelectItems(in SelectInput) SelectResult {
	if len(in.Pool) == 0 {
		return SelectResult{}
	}

	allIDs := make([]string, 0, len(in.Pool))
	for _, item := range in.Pool {
		allIDs = append(allIDs, item.ID)
	}
	allIDs = distinct(allIDs)

	dueSorted := overdueRanked(allIDs, in.States, in.NowMs)

	if in.Mode != domain.StudyModeDaily {
		picked := dueSorted
		if len(picked) == 0 {
			picked = allIDs
		}
		return SelectResult{ItemIDs: truncate(picked, in.Limit)}
	}

	universe, reenabled := dailyUniverse(in.Selection, allIDs)
	if universe != nil {
		return SelectResult{
			ItemIDs:            pickDailyFromUniverse(universe, dueSorted, allIDs, in),
			Universe:           universe,
			ReenabledSelection: reenabled,
		}
	}

	return SelectResult{ItemIDs: pickDaily(dueSorted, allIDs, in)}
}

// overdueRanked sorts the pool descending by overdue time, tie-broken
// descending by lapses. The sort is stable, so fully fresh pools keep
// catalog order.
func overdueRanked(allIDs []string, states map[string]domain.RepetitionState, nowMs int64) []string {
	type ranked struct {
		id      string
		overdue int64
		lapses  int
	}

	rankedIDs := make([]ranked, 0, len(allIDs))
	for _, id := range allIDs {
		st, ok := states[id]
		if !ok {
			st = domain.NewRepetitionState(id)
		}
		overdue := nowMs - st.DueAtMs
		if overdue < 0 {
			overdue = 0
		}
		rankedIDs = append(rankedIDs, ranked{id: id, overdue: overdue, lapses: st.Lapses})
	}

	sort.SliceStable(rankedIDs, func(i, j int) bool {
		if rankedIDs[i].overdue != rankedIDs[j].overdue {
			return rankedIDs[i].overdue > rankedIDs[j].overdue
		}
		return rankedIDs[i].lapses > rankedIDs[j].lapses
	})

	out := make([]string, len(rankedIDs))
	for i, r := range rankedIDs {
		out[i] = r.id
	}
	return out
}

// dailyUniverse validates the pinned selection against the pool. It
// returns the valid id set when the selection qualifies, plus whether a
// disabled selection should be re-enabled.
func dailyUniverse(sel *domain.DailySelection, allIDs []string) ([]string, bool) {
	if sel == nil {
		return nil, false
	}

	allSet := make(map[string]struct{}, len(allIDs))
	for _, id := range allIDs {
		allSet[id] = struct{}{}
	}

	valid := make([]string, 0, len(sel.ItemIDs))
	for _, id := range distinct(sel.ItemIDs) {
		if _, ok := allSet[id]; ok {
			valid = append(valid, id)
		}
	}

	if len(valid) < domain.DailySelectionMinSize {
		return nil, false
	}
	return valid, !sel.Enabled
}

// pickDaily shuffles the overdue ranking with a day-keyed seed and takes
// up to the limit.
func pickDaily(dueSorted, allIDs []string, in SelectInput) []string {
	key := DayKey(in.NowMs) + "|" + in.Language + "|" + in.Skill
	rng := newRNG(key)

	base := dueSorted
	if len(base) == 0 {
		base = allIDs
	}
	return truncate(shuffled(base, rng), in.Limit)
}

// pickDailyFromUniverse restricts the daily pick to the selection
// universe, folding a hash of the sorted universe into the seed so two
// different selections on the same day yield different sets. When the
// universe cannot fill the limit it backfills from the rest of the
// universe, then from the global pool.
func pickDailyFromUniverse(universe, dueSorted, allIDs []string, in SelectInput) []string {
	signature := make([]string, len(universe))
	copy(signature, universe)
	sort.Strings(signature)

	key := DayKey(in.NowMs) + "|" + in.Language + "|" + in.Skill +
		"|U:" + strconv.FormatInt(int64(StableSeed(strings.Join(signature, "|"))), 10)
	rng := newRNG(key)

	universeSet := make(map[string]struct{}, len(universe))
	for _, id := range universe {
		universeSet[id] = struct{}{}
	}

	dueInUniverse := make([]string, 0, len(universe))
	for _, id := range dueSorted {
		if _, ok := universeSet[id]; ok {
			dueInUniverse = append(dueInUniverse, id)
		}
	}

	base := dueInUniverse
	if len(base) == 0 {
		base = universe
	}

	picked := shuffled(base, rng)
	picked = truncate(picked, in.Limit)

	if len(picked) < in.Limit {
		picked = backfill(picked, shuffled(universe, rng), in.Limit)
	}
	if len(picked) < in.Limit {
		picked = backfill(picked, shuffled(allIDs, rng), in.Limit)
	}
	return truncate(picked, in.Limit)
}

// backfill appends candidates not already picked until the limit.
func backfill(picked, candidates []string, limit int) []string {
	have := make(map[string]struct{}, len(picked))
	for _, id := range picked {
		have[id] = struct{}{}
	}
	for _, id := range candidates {
		if len(picked) >= limit {
			break
		}
		if _, ok := have[id]; ok {
			continue
		}
		have[id] = struct{}{}
		picked = append(picked, id)
	}
	return picked
}

func truncate(ids []string, limit int) []string {
	if limit >= 0 && len(ids) > limit {
		return ids[:limit]
	}
	return ids
}
