package content

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/trililingo/trililingo-api/internal/domain"
)

// Catalog is the parsed, deduplicated content of all packs, tagged with
// the signature of the asset set it was built from.
type Catalog struct {
	Signature string
	Packs     []Pack
	Items     []domain.LearnableItem

	byID map[string]domain.LearnableItem
}

// ItemByID returns the item for an id, if present.
func (c *Catalog) ItemByID(id string) (domain.LearnableItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Loader reads content packs from a filesystem and caches the parsed
// catalog keyed by a SHA-256 signature of the asset set. The cache is
// copy-on-change: it is recomputed only when the signature differs,
// never on a timer.
type Loader struct {
	fsys   fs.FS
	root   string
	logger *slog.Logger

	mu     sync.Mutex
	cached *Catalog
}

// NewLoader creates a pack loader reading *.json files under root in
// fsys.
func NewLoader(fsys fs.FS, root string, logger *slog.Logger) *Loader {
	if fsys == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("fsys cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fsys:   fsys,
		root:   root,
		logger: logger.With(slog.String("component", "content_loader")),
	}
}

// Load returns the catalog, reusing the cached parse when the asset
// signature has not changed.
func (l *Loader) Load() (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	names, err := l.packFiles()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no content packs found under %q", l.root)
	}

	signature, contents, err := l.readAndSign(names)
	if err != nil {
		return nil, err
	}

	if l.cached != nil && l.cached.Signature == signature {
		return l.cached, nil
	}

	catalog, err := l.parse(signature, names, contents)
	if err != nil {
		return nil, err
	}

	l.cached = catalog
	return catalog, nil
}

// packFiles lists the pack file names, sorted for a stable signature.
func (l *Loader) packFiles() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, l.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list content packs: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// readAndSign reads every pack file and computes the SHA-256 signature
// over the sorted names and bytes.
func (l *Loader) readAndSign(names []string) (string, map[string][]byte, error) {
	digest := sha256.New()
	contents := make(map[string][]byte, len(names))

	for _, name := range names {
		raw, err := fs.ReadFile(l.fsys, l.root+"/"+name)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read pack %q: %w", name, err)
		}
		digest.Write([]byte(name))
		digest.Write(raw)
		contents[name] = raw
	}

	return hex.EncodeToString(digest.Sum(nil)), contents, nil
}

// parse builds the catalog, deduplicating items by id (first pack wins).
func (l *Loader) parse(signature string, names []string, contents map[string][]byte) (*Catalog, error) {
	catalog := &Catalog{
		Signature: signature,
		byID:      make(map[string]domain.LearnableItem),
	}

	for _, name := range names {
		pack, err := decodePack(contents[name], l.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to parse pack %q: %w", name, err)
		}
		catalog.Packs = append(catalog.Packs, pack)

		for _, packItem := range pack.Items {
			item := packItem.toDomain(pack.Language)
			if err := item.Validate(); err != nil {
				l.logger.Warn("skipping invalid pack item",
					"pack", name, "item_id", item.ID, "error", err)
				continue
			}
			if _, exists := catalog.byID[item.ID]; exists {
				continue
			}
			catalog.byID[item.ID] = item
			catalog.Items = append(catalog.Items, item)
		}
	}

	l.logger.Info("content catalog loaded",
		"packs", len(catalog.Packs),
		"items", len(catalog.Items),
		"signature", signature[:12])
	return catalog, nil
}
