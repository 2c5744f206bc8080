package llm

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/rs/zerolog/log"
)

// CompletionStore persists completion responses keyed by a request hash.
type CompletionStore interface {
	GetCompletion(hash string) (string, bool, error)
	SetCompletion(hash, response string) error
}

// CachedCompleter wraps a Completer with persistent caching, so re-runs over
// the same catalog items do not pay for identical prompts twice.
type CachedCompleter struct {
	inner Completer
	store CompletionStore
}

// NewCachedCompleter creates a cached completer. A nil store disables
// caching.
func NewCachedCompleter(inner Completer, store CompletionStore) *CachedCompleter {
	return &CachedCompleter{inner: inner, store: store}
}

// hashRequest creates a SHA256 hash over all request inputs. Length prefixes
// prevent boundary collisions between system and prompt.
func hashRequest(system, prompt string, temperature float32, maxTokens int32) string {
	h := sha256.New()
	binary.Write(h, binary.LittleEndian, int64(len(system)))
	h.Write([]byte(system))
	binary.Write(h, binary.LittleEndian, int64(len(prompt)))
	h.Write([]byte(prompt))
	binary.Write(h, binary.LittleEndian, math.Float32bits(temperature))
	binary.Write(h, binary.LittleEndian, maxTokens)
	return hex.EncodeToString(h.Sum(nil))
}

// Complete implements the Completer interface with caching.
func (c *CachedCompleter) Complete(ctx context.Context, system, prompt string, temperature float32, maxTokens int32) (string, error) {
	hash := hashRequest(system, prompt, temperature, maxTokens)

	if c.store != nil {
		cached, ok, err := c.store.GetCompletion(hash)
		if err != nil {
			log.Warn().Err(err).Msg("failed to check completion cache")
		} else if ok {
			log.Debug().Str("hash", hash[:16]).Msg("completion cache hit")
			return cached, nil
		}
	}

	result, err := c.inner.Complete(ctx, system, prompt, temperature, maxTokens)
	if err != nil {
		return "", err
	}

	if c.store != nil {
		if err := c.store.SetCompletion(hash, result); err != nil {
			log.Warn().Err(err).Msg("failed to cache completion")
		}
	}

	return result, nil
}
