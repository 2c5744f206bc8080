package keywords

import "strings"

// stopWords are excluded from heuristic keyword tokens.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "for": {}, "in": {}, "of": {},
	"on": {}, "or": {}, "the": {}, "to": {}, "with": {},
}

// tokenize splits a name into lowercase words with stop words removed.
func tokenize(s string) []string {
	var tokens []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,!?:;()\"'")
		if w == "" {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// heuristicCandidates derives keyword phrases from the product name and
// category alone: single words, adjacent-word bigrams, and category plus the
// name's last word. Deterministic, unscored, capped at maxSuggestions.
func heuristicCandidates(name, category string) []Candidate {
	tokens := tokenize(name)

	var phrases []string
	phrases = append(phrases, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		phrases = append(phrases, tokens[i]+" "+tokens[i+1])
	}
	if category != "" && len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		for _, ct := range tokenize(category) {
			if ct != last {
				phrases = append(phrases, ct+" "+last)
			}
		}
	}

	seen := make(map[string]struct{}, len(phrases))
	var candidates []Candidate
	for _, p := range phrases {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		candidates = append(candidates, Candidate{Phrase: p})
		if len(candidates) == maxSuggestions {
			break
		}
	}
	return candidates
}
