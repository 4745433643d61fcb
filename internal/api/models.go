package api

import (
	"github.com/trililingo/trililingo-api/internal/domain"
)

// ChallengesResponse carries one assembled challenge set.
type ChallengesResponse struct {
	Language   string             `json:"language"`
	Skill      string             `json:"skill"`
	Mode       string             `json:"mode"`
	Challenges []domain.Challenge `json:"challenges"`
}

// StartSessionRequest represents the request body for starting a session.
type StartSessionRequest struct {
	Language     string `json:"language"      validate:"required"`
	ActivityType string `json:"activity_type" validate:"required"`
}

// SubmitAttemptRequest represents the request body for one answer
// submission. ResponseMs and HintCount default to zero when omitted.
type SubmitAttemptRequest struct {
	ItemID       string `json:"item_id" validate:"required"`
	ChosenAnswer string `json:"chosen_answer"`
	ResponseMs   int64  `json:"response_ms"   validate:"gte=0"`
	HintCount    int    `json:"hint_count"    validate:"gte=0"`
}

// SubmitAttemptResponse is what an answer submission returns.
type SubmitAttemptResponse struct {
	IsCorrect     bool                   `json:"is_correct"`
	ToleranceNote string                 `json:"tolerance_note,omitempty"`
	XPAwarded     int                    `json:"xp_awarded"`
	BaseXP        int                    `json:"base_xp"`
	XPMultiplier  float64                `json:"xp_multiplier"`
	CorrectAnswer string                 `json:"correct_answer"`
	State         domain.RepetitionState `json:"state"`
}

// ProfileResponse is the user profile summary.
type ProfileResponse struct {
	TotalXP           int64  `json:"total_xp"`
	StreakCount       int    `json:"streak_count"`
	LastStudyEpochDay int64  `json:"last_study_epoch_day"`
	ActiveLanguage    string `json:"active_language,omitempty"`
}

// SetLanguageRequest represents the request body for changing the
// active language.
type SetLanguageRequest struct {
	Language string `json:"language" validate:"required"`
}

// DailySelectionRequest represents the request body for pinning a
// daily selection.
type DailySelectionRequest struct {
	Enabled bool     `json:"enabled"`
	ItemIDs []string `json:"item_ids" validate:"required,min=1"`
}

// DailySelectionResponse is the stored daily selection for a
// (language, skill) pair.
type DailySelectionResponse struct {
	Language    string   `json:"language"`
	Skill       string   `json:"skill"`
	Enabled     bool     `json:"enabled"`
	ItemIDs     []string `json:"item_ids"`
	UpdatedAtMs int64    `json:"updated_at_ms"`
	MinSize     int      `json:"min_size"`
}
