package domain

// StudyMode selects how a session's items are picked.
type StudyMode string

// Possible study modes
const (
	// StudyModeDaily picks a set that is deterministic for the calendar
	// day, so reopening the app shows the same daily challenge.
	StudyModeDaily StudyMode = "DAILY"

	// StudyModePractice picks the most overdue items; repeated practice
	// sessions are not meant to be replayable.
	StudyModePractice StudyMode = "PRACTICE"
)

// ParseStudyMode maps a raw string to a StudyMode, defaulting to practice.
func ParseStudyMode(raw string) StudyMode {
	if StudyMode(raw) == StudyModeDaily {
		return StudyModeDaily
	}
	return StudyModePractice
}

// Challenge is one quiz question presented to the user: a prompt, the
// canonical answer, and the multiple-choice options built around it.
type Challenge struct {
	ItemID      string   `json:"item_id"`
	Prompt      string   `json:"prompt"`
	MeaningHint string   `json:"meaning_hint"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
}
