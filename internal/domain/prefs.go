package domain

// DailySelectionMinSize is the minimum number of valid item ids a daily
// selection must carry before the selector honors it. Smaller selections
// are ignored and the daily pick falls back to the whole pool.
const DailySelectionMinSize = 10

// DailySelection is a user-curated subset of items pinned for
// daily-challenge mode, keyed per (language, skill).
type DailySelection struct {
	Enabled     bool     `json:"enabled"`
	ItemIDs     []string `json:"itemIds"`
	UpdatedAtMs int64    `json:"updatedAtMs"`
}

// UserPrefs is the typed preferences blob: XP and streak aggregates plus
// the per-(language, skill) daily selections. It is persisted as a single
// JSON document.
type UserPrefs struct {
	TotalXP           int64                     `json:"totalXp"`
	StreakCount       int                       `json:"streakCount"`
	LastStudyEpochDay int64                     `json:"lastStudyEpochDay"`
	ActiveLanguage    string                    `json:"activeLanguage"`
	DailySelections   map[string]DailySelection `json:"dailySelections"`
}

// DailySelectionKey builds the map key for a (language, skill) pair.
func DailySelectionKey(language, skill string) string {
	return language + "|" + skill
}

// DailySelectionFor returns the selection for a (language, skill) pair,
// or a disabled empty selection when none was ever saved.
func (p *UserPrefs) DailySelectionFor(language, skill string) DailySelection {
	if p.DailySelections == nil {
		return DailySelection{}
	}
	return p.DailySelections[DailySelectionKey(language, skill)]
}
