package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Store is the file-backed result ledger. Appends synchronously rewrite the
// whole file, which keeps the persisted state a single reloadable document
// at the cost of O(history) per append. Resumability depends on that
// serialization; do not batch appends.
type Store struct {
	path string

	mu      sync.Mutex
	results []Result
}

// NewStore creates a ledger backed by the given file and loads any existing
// history. A missing or unparsable file yields an empty ledger rather than
// a startup failure.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, &s.results); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("failed to parse ledger, starting empty")
		s.results = nil
	}
}

// Append records a result and persists the full ledger synchronously.
func (s *Store) Append(r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, r)

	data, err := json.MarshalIndent(s.results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// All returns a copy of all results ordered by timestamp ascending.
func (s *Store) All() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Result, len(s.results))
	copy(out, s.results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// ProcessedIDs returns the product identifiers that count as already
// processed for skip purposes. Preview entries are excluded so a dry run
// never blocks a later real run.
func (s *Store) ProcessedIDs() map[int]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make(map[int]struct{}, len(s.results))
	for _, r := range s.results {
		if r.Status == StatusPreview {
			continue
		}
		ids[r.ProductID] = struct{}{}
	}
	return ids
}

// Clear drops all results and deletes the backing file if present.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete ledger file: %w", err)
	}
	return nil
}
