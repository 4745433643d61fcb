package domain

import "errors"

// Common validation errors for LearnableItem
var (
	ErrItemIDEmpty     = errors.New("item ID cannot be empty")
	ErrItemAnswerEmpty = errors.New("item answer cannot be empty")
)

// LearnableItem is a single learnable fact: a character or word with one
// canonical correct answer. Items are loaded from bundled content packs at
// startup and never mutated at runtime.
type LearnableItem struct {
	ID       string `json:"id"`
	Language string `json:"language"` // "JA" | "ZH" | "RU" ...
	Skill    string `json:"skill"`    // "HIRAGANA" | "KATAKANA" | "KANJI" | "HANZI" ...
	Prompt   string `json:"prompt"`   // the character shown (あ, 一, ...)
	Answer   string `json:"answer"`   // the reading that counts as correct (a, yī, ...)
	Meaning  string `json:"meaning"`  // hint / meaning shown after reveal

	// Optional metadata. Missing or malformed fields in the pack are
	// treated as absent, never fatal.
	Category      string   `json:"category,omitempty"`
	Difficulty    int      `json:"difficulty,omitempty"` // 1-5, 0 when unknown
	Romanization  string   `json:"romanization,omitempty"`
	Mnemonic      string   `json:"mnemonic,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	DistractorIDs []string `json:"distractor_ids,omitempty"` // preferred wrong-choice item ids
}

// Validate checks if the LearnableItem has valid data.
// Returns an error if any required field is missing.
func (i *LearnableItem) Validate() error {
	if i.ID == "" {
		return ErrItemIDEmpty
	}
	if i.Answer == "" {
		return ErrItemAnswerEmpty
	}
	return nil
}
