package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/store"
)

// KVStore implements store.KVStore on the app_kv table.
type KVStore struct {
	db store.DBTX
}

// NewKVStore creates a SQLite-backed key-value store.
func NewKVStore(db store.DBTX) *KVStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	return &KVStore{db: db}
}

// Ensure KVStore implements store.KVStore
var _ store.KVStore = (*KVStore)(nil)

// WithTx returns a copy of the store bound to the given transaction.
func (s *KVStore) WithTx(tx *sql.Tx) *KVStore {
	return &KVStore{db: tx}
}

// Get implements store.KVStore.Get.
func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return value, nil
}

// Set implements store.KVStore.Set.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO app_kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// prefsKey is where the user preferences document lives in app_kv.
const prefsKey = "user_prefs"

// PrefsStore implements store.PrefsStore as a single JSON document in
// the app_kv table, mirroring the typed preferences blob of the mobile
// app.
type PrefsStore struct {
	kv     store.KVStore
	logger *slog.Logger
}

// NewPrefsStore creates a preferences store backed by a KVStore.
func NewPrefsStore(kv store.KVStore, logger *slog.Logger) *PrefsStore {
	if kv == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("kv cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PrefsStore{
		kv:     kv,
		logger: logger.With(slog.String("component", "prefs_store")),
	}
}

// Ensure PrefsStore implements store.PrefsStore
var _ store.PrefsStore = (*PrefsStore)(nil)

// Get implements store.PrefsStore.Get. A missing or unreadable document
// yields zero-valued prefs, never an error the caller has to special-case.
func (s *PrefsStore) Get(ctx context.Context) (domain.UserPrefs, error) {
	raw, err := s.kv.Get(ctx, prefsKey)
	if errors.Is(err, store.ErrNotFound) {
		return domain.UserPrefs{}, nil
	}
	if err != nil {
		return domain.UserPrefs{}, fmt.Errorf("failed to load prefs: %w", err)
	}

	var prefs domain.UserPrefs
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.logger.Warn("stored prefs document is malformed, starting fresh", "error", err)
		return domain.UserPrefs{}, nil
	}
	return prefs, nil
}

// Save implements store.PrefsStore.Save.
func (s *PrefsStore) Save(ctx context.Context, prefs domain.UserPrefs) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode prefs: %w", err)
	}
	if err := s.kv.Set(ctx, prefsKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}
	return nil
}
