package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/store"
)

// ItemStore implements store.ItemStore on SQLite.
type ItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewItemStore creates a SQLite-backed item store.
func NewItemStore(db store.DBTX, logger *slog.Logger) *ItemStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure ItemStore implements store.ItemStore
var _ store.ItemStore = (*ItemStore)(nil)

// WithTx returns a copy of the store bound to the given transaction.
func (s *ItemStore) WithTx(tx *sql.Tx) *ItemStore {
	return &ItemStore{db: tx, logger: s.logger}
}

const itemColumns = `id, language, skill, prompt, answer, meaning,
	category, difficulty, romanization, mnemonic, tags, distractor_ids`

// GetBySkill implements store.ItemStore.GetBySkill.
func (s *ItemStore) GetBySkill(ctx context.Context, language, skill string) ([]domain.LearnableItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM language_items
		WHERE language = ? AND skill = ?
		ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, language, skill)
	if err != nil {
		return nil, fmt.Errorf("failed to query items by skill: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanItems(rows)
}

// GetByIDs implements store.ItemStore.GetByIDs. Missing ids are skipped.
func (s *ItemStore) GetByIDs(ctx context.Context, ids []string) ([]domain.LearnableItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + itemColumns + `
		FROM language_items
		WHERE id IN (` + placeholders(len(ids)) + `)
		ORDER BY rowid`

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items by ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanItems(rows)
}

// UpsertAll implements store.ItemStore.UpsertAll.
func (s *ItemStore) UpsertAll(ctx context.Context, items []domain.LearnableItem) error {
	query := `INSERT INTO language_items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			language = excluded.language,
			skill = excluded.skill,
			prompt = excluded.prompt,
			answer = excluded.answer,
			meaning = excluded.meaning,
			category = excluded.category,
			difficulty = excluded.difficulty,
			romanization = excluded.romanization,
			mnemonic = excluded.mnemonic,
			tags = excluded.tags,
			distractor_ids = excluded.distractor_ids`

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("invalid item %q: %w", item.ID, err)
		}
		_, err := s.db.ExecContext(ctx, query,
			item.ID, item.Language, item.Skill, item.Prompt, item.Answer, item.Meaning,
			item.Category, item.Difficulty, item.Romanization, item.Mnemonic,
			encodeStrings(item.Tags), encodeStrings(item.DistractorIDs))
		if err != nil {
			return fmt.Errorf("failed to upsert item %q: %w", item.ID, err)
		}
	}
	return nil
}

// CountAll implements store.ItemStore.CountAll.
func (s *ItemStore) CountAll(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM language_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// rowScanner is satisfied by *sql.Rows and *sql.Row.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (domain.LearnableItem, error) {
	var item domain.LearnableItem
	var tags, distractors string
	err := row.Scan(
		&item.ID, &item.Language, &item.Skill, &item.Prompt, &item.Answer, &item.Meaning,
		&item.Category, &item.Difficulty, &item.Romanization, &item.Mnemonic,
		&tags, &distractors)
	if err != nil {
		return domain.LearnableItem{}, err
	}
	item.Tags = decodeStrings(tags)
	item.DistractorIDs = decodeStrings(distractors)
	return item, nil
}

func scanItems(rows interface {
	rowScanner
	Next() bool
	Err() error
}) ([]domain.LearnableItem, error) {
	var items []domain.LearnableItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}
	return items, nil
}
