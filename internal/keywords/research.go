package keywords

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
)

// Candidate is one ranked keyword phrase. Kind is "rising" or "top" for
// trend-derived phrases and empty for heuristic ones.
type Candidate struct {
	Phrase string `json:"phrase"`
	Score  int    `json:"score"`
	Kind   string `json:"kind,omitempty"`
}

// TrendSource returns search-popularity-ranked related phrases for a set of
// terms. It may be entirely unavailable; Research degrades to heuristics.
type TrendSource interface {
	RelatedQueries(ctx context.Context, terms []string, region string) ([]Candidate, error)
}

// Research is the keyword suggestion provider. It prefers trend data when
// requested and reachable, backed by a 7-day cache, and falls back to
// deterministic local heuristics otherwise. Suggest never returns an error.
type Research struct {
	trends TrendSource
	cache  *Cache
	region string
}

// NewResearch creates a keyword suggestion provider. A nil trends source
// forces heuristic-only mode regardless of what callers ask for.
func NewResearch(trends TrendSource, cache *Cache, region string) *Research {
	return &Research{
		trends: trends,
		cache:  cache,
		region: region,
	}
}

// Suggest returns up to maxSuggestions ranked keyword phrases for a product
// name and optional category. useTrends selects trend-backed research for
// this call; false goes straight to the heuristics.
func (r *Research) Suggest(ctx context.Context, name, category string, useTrends bool) []string {
	candidates := r.candidates(ctx, name, category, useTrends)
	phrases := make([]string, 0, maxSuggestions)
	for _, c := range candidates {
		phrases = append(phrases, c.Phrase)
		if len(phrases) == maxSuggestions {
			break
		}
	}
	return phrases
}

const maxSuggestions = 10

func (r *Research) candidates(ctx context.Context, name, category string, useTrends bool) []Candidate {
	if !useTrends || r.trends == nil {
		return heuristicCandidates(name, category)
	}

	key := CacheKey(name, category, r.region)
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			log.Debug().Str("key", key).Msg("trend cache hit")
			return cached
		}
	}

	candidates, err := r.queryTrends(ctx, name, category)
	if err != nil {
		log.Warn().Err(err).Str("name", name).Msg("trend lookup failed, falling back to heuristics")
	} else if len(candidates) > 0 {
		if r.cache != nil {
			if err := r.cache.Put(key, candidates); err != nil {
				log.Warn().Err(err).Msg("failed to persist trend cache")
			}
		}
		return candidates
	}

	return heuristicCandidates(name, category)
}

func (r *Research) queryTrends(ctx context.Context, name, category string) ([]Candidate, error) {
	terms := tokenize(name)
	if category != "" {
		terms = append(terms, tokenize(category)...)
	}
	if len(terms) == 0 {
		return nil, nil
	}

	region := r.region
	if region == "ALL" {
		region = ""
	}

	candidates, err := r.trends.RelatedQueries(ctx, terms, region)
	if err != nil {
		return nil, err
	}

	// Dedup by phrase, first occurrence wins in server-returned order, then
	// sort by descending score.
	seen := make(map[string]struct{}, len(candidates))
	unique := candidates[:0]
	for _, c := range candidates {
		if _, ok := seen[c.Phrase]; ok {
			continue
		}
		seen[c.Phrase] = struct{}{}
		unique = append(unique, c)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Score > unique[j].Score
	})

	return unique, nil
}
