package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/store"
)

// signatureKey is the app_kv key remembering the last applied pack
// signature.
const signatureKey = "content_signature"

// Seeder applies the content catalog to the database: items are
// upserted and default repetition states created for ids that do not
// have one yet. Seeding is idempotent per signature — when the last
// applied signature matches the current asset set, nothing happens.
type Seeder struct {
	loader *Loader
	items  store.ItemStore
	states store.RepetitionStateStore
	kv     store.KVStore
	logger *slog.Logger
}

// NewSeeder creates a content seeder.
func NewSeeder(
	loader *Loader,
	items store.ItemStore,
	states store.RepetitionStateStore,
	kv store.KVStore,
	logger *slog.Logger,
) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		loader: loader,
		items:  items,
		states: states,
		kv:     kv,
		logger: logger.With(slog.String("component", "content_seeder")),
	}
}

// EnsureSeeded loads the catalog and applies it when the asset
// signature changed since the last run (or when force is set).
func (s *Seeder) EnsureSeeded(ctx context.Context, force bool) error {
	catalog, err := s.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load content catalog: %w", err)
	}

	last, err := s.kv.Get(ctx, signatureKey)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to read last content signature: %w", err)
	}

	if !force && last == catalog.Signature {
		s.logger.Debug("content already seeded", "signature", catalog.Signature[:12])
		return nil
	}

	if err := s.items.UpsertAll(ctx, catalog.Items); err != nil {
		return fmt.Errorf("failed to upsert catalog items: %w", err)
	}

	defaults := make([]domain.RepetitionState, 0, len(catalog.Items))
	for _, item := range catalog.Items {
		defaults = append(defaults, domain.NewRepetitionState(item.ID))
	}
	if err := s.states.InsertMissing(ctx, defaults); err != nil {
		return fmt.Errorf("failed to seed repetition states: %w", err)
	}

	if err := s.kv.Set(ctx, signatureKey, catalog.Signature); err != nil {
		return fmt.Errorf("failed to record content signature: %w", err)
	}

	s.logger.Info("content seeded",
		"items", len(catalog.Items),
		"signature", catalog.Signature[:12])
	return nil
}

// Catalog returns the loaded catalog, seeding first if needed. It is
// the read path used by services that need item metadata.
func (s *Seeder) Catalog(ctx context.Context) (*Catalog, error) {
	if err := s.EnsureSeeded(ctx, false); err != nil {
		return nil, err
	}
	return s.loader.Load()
}
