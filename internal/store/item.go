package store

import (
	"context"

	"github.com/trililingo/trililingo-api/internal/domain"
)

// ItemStore persists the learnable-item catalog. Items are external
// read-only content as far as the engine is concerned; writes happen
// only when the content seeder applies a new pack signature.
type ItemStore interface {
	// GetBySkill returns all items for a (language, skill) pair in
	// catalog order.
	GetBySkill(ctx context.Context, language, skill string) ([]domain.LearnableItem, error)

	// GetByIDs returns the items whose ids are in ids; missing ids are
	// silently skipped.
	GetByIDs(ctx context.Context, ids []string) ([]domain.LearnableItem, error)

	// UpsertAll inserts or replaces the given items.
	UpsertAll(ctx context.Context, items []domain.LearnableItem) error

	// CountAll returns the total number of items in the catalog.
	CountAll(ctx context.Context) (int, error)
}
