package keywords

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTrendSource struct {
	candidates []Candidate
	err        error
	calls      int
}

func (f *fakeTrendSource) RelatedQueries(ctx context.Context, terms []string, region string) ([]Candidate, error) {
	f.calls++
	return f.candidates, f.err
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return NewCache(filepath.Join(t.TempDir(), "trends.json"))
}

func TestSuggestHeuristicDeterminism(t *testing.T) {
	r := NewResearch(nil, newTestCache(t), "ALL")

	first := r.Suggest(context.Background(), "Red Running Shoes", "", true)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.Suggest(context.Background(), "Red Running Shoes", "", true))
	}
	assert.Equal(t, []string{"red", "running", "shoes", "red running", "running shoes"}, first)
}

func TestSuggestHeuristicWithCategory(t *testing.T) {
	r := NewResearch(nil, newTestCache(t), "ALL")

	got := r.Suggest(context.Background(), "Blue Hoodie", "Winter Clothing", true)
	assert.Contains(t, got, "blue")
	assert.Contains(t, got, "blue hoodie")
	assert.Contains(t, got, "winter hoodie")
	assert.Contains(t, got, "clothing hoodie")
	assert.LessOrEqual(t, len(got), 10)
}

func TestSuggestTrendsDedupAndSort(t *testing.T) {
	trends := &fakeTrendSource{candidates: []Candidate{
		{Phrase: "running shoes sale", Score: 50, Kind: "top"},
		{Phrase: "best running shoes", Score: 100, Kind: "top"},
		{Phrase: "running shoes sale", Score: 90, Kind: "rising"}, // dup, first occurrence wins
		{Phrase: "trail shoes", Score: 75, Kind: "rising"},
	}}
	r := NewResearch(trends, newTestCache(t), "GB")

	got := r.Suggest(context.Background(), "Running Shoes", "", true)
	assert.Equal(t, []string{"best running shoes", "trail shoes", "running shoes sale"}, got)
}

func TestSuggestTrendsFailureFallsBackToHeuristics(t *testing.T) {
	trends := &fakeTrendSource{err: errors.New("quota exceeded")}
	r := NewResearch(trends, newTestCache(t), "ALL")

	// The provider never raises; it degrades to heuristic phrases
	got := r.Suggest(context.Background(), "Red Running Shoes", "", true)
	assert.Equal(t, []string{"red", "running", "shoes", "red running", "running shoes"}, got)
	assert.Equal(t, 1, trends.calls)
}

func TestSuggestUsesCacheOnSecondCall(t *testing.T) {
	trends := &fakeTrendSource{candidates: []Candidate{
		{Phrase: "best running shoes", Score: 100, Kind: "top"},
	}}
	r := NewResearch(trends, newTestCache(t), "GB")

	first := r.Suggest(context.Background(), "Running Shoes", "", true)
	second := r.Suggest(context.Background(), "Running Shoes", "", true)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, trends.calls)
}

func TestSuggestTrendsDisabledSkipsSource(t *testing.T) {
	trends := &fakeTrendSource{candidates: []Candidate{
		{Phrase: "best running shoes", Score: 100, Kind: "top"},
	}}
	r := NewResearch(trends, newTestCache(t), "GB")

	got := r.Suggest(context.Background(), "Red Running Shoes", "", false)
	assert.Equal(t, []string{"red", "running", "shoes", "red running", "running shoes"}, got)
	assert.Equal(t, 0, trends.calls)
}

func TestSuggestNilTrendSourceForcesHeuristics(t *testing.T) {
	// Trends enabled but the source is unavailable: heuristic-only mode
	r := NewResearch(nil, newTestCache(t), "ALL")
	got := r.Suggest(context.Background(), "Red Running Shoes", "", true)
	assert.Contains(t, got, "running shoes")
}

func TestSuggestCapsAtTen(t *testing.T) {
	candidates := make([]Candidate, 20)
	for i := range candidates {
		candidates[i] = Candidate{Phrase: string(rune('a' + i)), Score: 20 - i, Kind: "top"}
	}
	r := NewResearch(&fakeTrendSource{candidates: candidates}, newTestCache(t), "GB")

	got := r.Suggest(context.Background(), "Anything", "", true)
	assert.Len(t, got, 10)
}
