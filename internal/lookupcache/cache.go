package lookupcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"shelfmark/internal/identify"
	"shelfmark/internal/logging"
)

// Cache provides thread-safe access to lookup records. With an empty path
// the cache is memory-only and Save is a no-op.
type Cache struct {
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
	dirty  bool
	items  map[string]identify.Record
}

var _ identify.Cache = (*Cache)(nil)

// New creates a cache, loading any existing file at path. Load failures are
// logged and leave the cache empty.
func New(path string, logger *slog.Logger) *Cache {
	logger = logging.NewComponentLogger(logger, "lookupcache")

	c := &Cache{
		path:   path,
		logger: logger,
		items:  make(map[string]identify.Record),
	}

	if path == "" {
		return c
	}

	if err := c.load(); err != nil {
		logger.Warn("failed to load lookup cache; starting empty", logging.Error(err))
		c.items = make(map[string]identify.Record)
	}

	return c
}

// Get returns the cached record for key, if any. A hit may be an explicit
// no-match record.
func (c *Cache) Get(key string) (identify.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.items[key]
	return record, ok
}

// Put stores a record under key. The disk file is not touched until Save.
func (c *Cache) Put(key string, record identify.Record) {
	if key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = record
	c.dirty = true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Clear drops all entries. Callers clear when settings that affect match
// identity change.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]identify.Record)
	c.dirty = true
}

// Save rewrites the disk file wholesale. No-op when the cache is
// memory-only or unchanged since the last save.
func (c *Cache) Save() error {
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}

	if err := c.save(); err != nil {
		return fmt.Errorf("persist lookup cache: %w", err)
	}
	c.dirty = false

	c.logger.Debug("saved lookup cache",
		logging.Int("entry_count", len(c.items)),
		logging.String("path", c.path))
	return nil
}

// diskEntry is the on-disk value shape: [series, rawTitle, subtitle,
// separator] with null for absent fields.
type diskEntry [4]*string

func encodeRecord(record identify.Record) diskEntry {
	var entry diskEntry
	if record.Series != "" {
		entry[0] = &record.Series
	}
	if record.RawTitle != "" {
		entry[1] = &record.RawTitle
	}
	if record.Subtitle != "" {
		entry[2] = &record.Subtitle
	}
	separator := record.Separator
	entry[3] = &separator
	return entry
}

func decodeRecord(entry diskEntry) identify.Record {
	record := identify.NullRecord()
	if entry[0] != nil {
		record.Series = *entry[0]
	}
	if entry[1] != nil {
		record.RawTitle = *entry[1]
	}
	if entry[2] != nil {
		record.Subtitle = *entry[2]
	}
	if entry[3] != nil && *entry[3] != "" {
		record.Separator = *entry[3]
	}
	return record
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // fresh start
		}
		return fmt.Errorf("read cache file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	var entries map[string]diskEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	c.items = make(map[string]identify.Record, len(entries))
	for key, entry := range entries {
		if key == "" {
			continue
		}
		c.items[key] = decodeRecord(entry)
	}

	c.logger.Debug("loaded lookup cache",
		logging.Int("entry_count", len(c.items)),
		logging.String("path", c.path))

	return nil
}

// save writes the cache to disk atomically, holding a file lock so two
// processes never interleave a rewrite.
func (c *Cache) save() error {
	entries := make(map[string]diskEntry, len(c.items))
	for key, record := range c.items {
		entries[key] = encodeRecord(record)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(c.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	defer lock.Unlock()

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath) // cleanup on failure
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
