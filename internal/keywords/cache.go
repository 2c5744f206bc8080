package keywords

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// FreshFor is how long a cached trend lookup stays valid.
const FreshFor = 7 * 24 * time.Hour

// CacheKey builds the trend cache key from a normalized product name,
// category and target region.
func CacheKey(name, category, region string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "_" + strings.ToLower(strings.TrimSpace(category)) + "_" + region
}

type cacheEntry struct {
	Keywords  []Candidate `json:"keywords"`
	Timestamp time.Time   `json:"timestamp"`
}

// Cache is a file-backed store of trend lookup results. Entries older than
// FreshFor are treated as absent even though they stay on disk until
// overwritten.
type Cache struct {
	path string

	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCache loads the trend cache from path. A missing or unreadable file
// yields an empty cache.
func NewCache(path string) *Cache {
	c := &Cache{
		path:    path,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to parse trend cache, starting empty")
		c.entries = make(map[string]cacheEntry)
	}
	return c
}

// Get returns the cached candidates for a key if the entry is younger than
// FreshFor.
func (c *Cache) Get(key string) ([]Candidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.Timestamp) >= FreshFor {
		return nil, false
	}
	return entry.Keywords, true
}

// Put stores candidates under a key and synchronously rewrites the whole
// cache file.
func (c *Cache) Put(key string, candidates []Candidate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{Keywords: candidates, Timestamp: c.now()}

	data, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("failed to encode trend cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trend cache: %w", err)
	}
	return nil
}
