package keywords

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheFreshness(t *testing.T) {
	cache := newTestCache(t)
	now := time.Now()

	candidates := []Candidate{{Phrase: "best running shoes", Score: 100, Kind: "top"}}

	// Entry written 6 days ago is served
	cache.now = func() time.Time { return now.Add(-6 * 24 * time.Hour) }
	assert.Nil(t, cache.Put("running shoes__ALL", candidates))
	cache.now = func() time.Time { return now }
	got, ok := cache.Get("running shoes__ALL")
	assert.True(t, ok)
	assert.Equal(t, candidates, got)

	// Entry written 8 days ago is treated as absent
	cache.now = func() time.Time { return now.Add(-8 * 24 * time.Hour) }
	assert.Nil(t, cache.Put("stale key", candidates))
	cache.now = func() time.Time { return now }
	_, ok = cache.Get("stale key")
	assert.False(t, ok)
}

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trends.json")

	cache := NewCache(path)
	candidates := []Candidate{
		{Phrase: "best running shoes", Score: 100, Kind: "top"},
		{Phrase: "trail shoes", Score: 75, Kind: "rising"},
	}
	assert.Nil(t, cache.Put("running shoes__GB", candidates))

	reloaded := NewCache(path)
	got, ok := reloaded.Get("running shoes__GB")
	assert.True(t, ok)
	assert.Equal(t, candidates, got)
}

func TestCacheCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trends.json")
	assert.Nil(t, os.WriteFile(path, []byte("{not json"), 0644))

	cache := NewCache(path)
	_, ok := cache.Get("anything")
	assert.False(t, ok)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "blue hoodie_hoodies_GB", CacheKey(" Blue Hoodie ", "Hoodies", "GB"))
}
