// Package draft implements the best-effort recovery cache for in-progress
// wizard forms. Values are namespaced under a fixed prefix, carry a savedAt
// timestamp, and are reconciled against authoritative server data with a
// remote-wins merge. Persistence failures are swallowed: the in-memory state
// stays correct even when the backing files cannot be written.
package draft

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hzerradi/avancement-api/internal/debounce"
)

const Prefix = "candidature_draft_"

// Store is the load/save/clear contract shared by the local cache and any
// remote-backed implementation.
type Store interface {
	Load(key string) (data json.RawMessage, savedAt *time.Time, ok bool)
	Save(key string, data any) time.Time
	Clear(key string)
	ClearAll()
}

type entry struct {
	Data    json.RawMessage `json:"data"`
	SavedAt time.Time       `json:"savedAt"`
}

// FileCache is a file-backed Store with debounced writes. Each key becomes
// one JSON file under dir, named Prefix + key.
type FileCache struct {
	dir   string
	delay time.Duration

	mu        sync.Mutex
	entries   map[string]entry
	debouncer map[string]*debounce.Debouncer
}

// NewFileCache creates a cache rooted at dir. Writes for a key are coalesced
// within delay (500ms mirrors a per-keystroke editing cadence).
func NewFileCache(dir string, delay time.Duration) *FileCache {
	return &FileCache{
		dir:       dir,
		delay:     delay,
		entries:   map[string]entry{},
		debouncer: map[string]*debounce.Debouncer{},
	}
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, Prefix+key+".json")
}

// Load returns the cached value for key, preferring the in-memory copy over
// the file. Missing or corrupt files read as absent.
func (c *FileCache) Load(key string) (json.RawMessage, *time.Time, bool) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		saved := e.SavedAt
		return e.Data, &saved, true
	}
	c.mu.Unlock()

	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, nil, false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, nil, false
	}
	saved := e.SavedAt
	return e.Data, &saved, true
}

// Save records data under key and schedules a debounced write to disk. The
// returned timestamp is the in-memory save time; the file write may happen
// later or not at all.
func (c *FileCache) Save(key string, data any) time.Time {
	now := time.Now()
	raw, err := json.Marshal(data)
	if err != nil {
		return now
	}

	c.mu.Lock()
	c.entries[key] = entry{Data: raw, SavedAt: now}
	d, ok := c.debouncer[key]
	if !ok {
		d = debounce.New(c.delay)
		c.debouncer[key] = d
	}
	c.mu.Unlock()

	d.Trigger(func() { c.persist(key) })
	return now
}

func (c *FileCache) persist(key string) {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return
	}
	// Best-effort cache write; errors are deliberately ignored.
	_ = os.WriteFile(c.path(key), payload, 0o644)
}

// Flush forces any pending writes to disk, for shutdown paths and tests.
func (c *FileCache) Flush() {
	c.mu.Lock()
	debouncers := make([]*debounce.Debouncer, 0, len(c.debouncer))
	for _, d := range c.debouncer {
		debouncers = append(debouncers, d)
	}
	c.mu.Unlock()
	for _, d := range debouncers {
		d.Flush()
	}
}

// Clear removes key from memory and disk. Invoked only after a confirmed
// successful server write so the cache never outlives its authoritative
// counterpart.
func (c *FileCache) Clear(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	if d, ok := c.debouncer[key]; ok {
		d.Close()
		delete(c.debouncer, key)
	}
	c.mu.Unlock()
	_ = os.Remove(c.path(key))
}

// ClearAll removes every key under the prefix. Called exactly once, on
// successful final submission.
func (c *FileCache) ClearAll() {
	c.mu.Lock()
	c.entries = map[string]entry{}
	for _, d := range c.debouncer {
		d.Close()
	}
	c.debouncer = map[string]*debounce.Debouncer{}
	c.mu.Unlock()

	files, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}
	for _, f := range files {
		if strings.HasPrefix(f.Name(), Prefix) {
			_ = os.Remove(filepath.Join(c.dir, f.Name()))
		}
	}
}
