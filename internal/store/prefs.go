package store

import (
	"context"

	"github.com/trililingo/trililingo-api/internal/domain"
)

// PrefsStore persists the typed user-preferences blob as one document.
// Reads return a zero-valued UserPrefs when nothing was saved yet.
type PrefsStore interface {
	Get(ctx context.Context) (domain.UserPrefs, error)
	Save(ctx context.Context, prefs domain.UserPrefs) error
}

// KVStore is a small string key-value store for bookkeeping values that
// do not deserve their own table, such as the last applied content-pack
// signature.
type KVStore interface {
	// Get returns the value for key. Returns ErrNotFound when the key
	// was never set.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error
}
