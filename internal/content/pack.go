// Package content loads the bundled JSON content packs, caches the
// parsed catalog keyed by a signature of the asset set, and seeds the
// database with items and default repetition states.
package content

import (
	"encoding/json"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
)

// Pack is one content-pack file: a language plus its learnable items.
type Pack struct {
	PackVersion int        `json:"packVersion"`
	Language    string     `json:"language"`
	Items       []PackItem `json:"items"`
}

// PackItem is the on-disk form of a learnable item. Everything beyond
// the core prompt/answer fields is optional metadata.
type PackItem struct {
	ID       string `json:"id"`
	Skill    string `json:"skill"`
	Prompt   string `json:"prompt"`
	Answer   string `json:"answer"`
	Meaning  string `json:"meaning"`
	Language string `json:"language"` // overrides the pack language when set

	Category      string   `json:"category"`
	Difficulty    int      `json:"difficulty"`
	Romanization  string   `json:"romanization"`
	Mnemonic      string   `json:"mnemonic"`
	Tags          []string `json:"tags"`
	DistractorIDs []string `json:"distractorIds"`
}

// requiredItem is the fallback decode target when an item carries
// malformed optional metadata: the core fields still load, the
// metadata is treated as absent.
type requiredItem struct {
	ID       string `json:"id"`
	Skill    string `json:"skill"`
	Prompt   string `json:"prompt"`
	Answer   string `json:"answer"`
	Meaning  string `json:"meaning"`
	Language string `json:"language"`
}

// decodePack parses one pack file. Items whose optional metadata does
// not decode are retained with the metadata dropped; items whose core
// fields do not decode are skipped with a warning. A malformed file as
// a whole is an error for the caller to surface.
func decodePack(raw []byte, logger *slog.Logger) (Pack, error) {
	var head struct {
		PackVersion int               `json:"packVersion"`
		Language    string            `json:"language"`
		Items       []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return Pack{}, err
	}

	pack := Pack{
		PackVersion: head.PackVersion,
		Language:    head.Language,
		Items:       make([]PackItem, 0, len(head.Items)),
	}

	for _, rawItem := range head.Items {
		var item PackItem
		if err := json.Unmarshal(rawItem, &item); err == nil {
			pack.Items = append(pack.Items, item)
			continue
		}

		var core requiredItem
		if err := json.Unmarshal(rawItem, &core); err != nil {
			logger.Warn("skipping malformed pack item", "error", err)
			continue
		}
		pack.Items = append(pack.Items, PackItem{
			ID:       core.ID,
			Skill:    core.Skill,
			Prompt:   core.Prompt,
			Answer:   core.Answer,
			Meaning:  core.Meaning,
			Language: core.Language,
		})
	}

	return pack, nil
}

// toDomain converts a pack item to the domain type, filling the
// language from the pack when the item does not override it.
func (i PackItem) toDomain(packLanguage string) domain.LearnableItem {
	language := i.Language
	if language == "" {
		language = packLanguage
	}

	difficulty := i.Difficulty
	if difficulty < 0 || difficulty > 5 {
		difficulty = 0
	}

	return domain.LearnableItem{
		ID:            i.ID,
		Language:      language,
		Skill:         i.Skill,
		Prompt:        i.Prompt,
		Answer:        i.Answer,
		Meaning:       i.Meaning,
		Category:      i.Category,
		Difficulty:    difficulty,
		Romanization:  i.Romanization,
		Mnemonic:      i.Mnemonic,
		Tags:          i.Tags,
		DistractorIDs: i.DistractorIDs,
	}
}
