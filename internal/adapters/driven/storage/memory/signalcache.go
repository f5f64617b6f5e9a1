package memory

import (
	"context"
	"sync"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
)

// Ensure SignalCache implements the interface.
var _ driven.SignalCache = (*SignalCache)(nil)

// cacheEntry is one cached analyzer run.
type cacheEntry struct {
	signature   string
	fingerprint string
	signals     []domain.Signal
}

// SignalCache is an in-memory implementation of driven.SignalCache.
type SignalCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewSignalCache creates a new in-memory signal cache.
func NewSignalCache() *SignalCache {
	return &SignalCache{
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached signals for key when both signature and
// fingerprint match the stored entry.
func (c *SignalCache) Get(_ context.Context, key, signature, fingerprint string) ([]domain.Signal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || entry.signature != signature || entry.fingerprint != fingerprint {
		return nil, false, nil
	}

	signals := make([]domain.Signal, len(entry.signals))
	copy(signals, entry.signals)
	return signals, true, nil
}

// Put stores the signals for key, replacing any previous entry.
func (c *SignalCache) Put(_ context.Context, key, signature, fingerprint string, signals []domain.Signal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]domain.Signal, len(signals))
	copy(stored, signals)
	c.entries[key] = cacheEntry{
		signature:   signature,
		fingerprint: fingerprint,
		signals:     stored,
	}
	return nil
}

// Prune removes entries whose key is not in keep.
func (c *SignalCache) Prune(_ context.Context, keep []string) error {
	keepSet := make(map[string]bool, len(keep))
	for _, key := range keep {
		keepSet[key] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if !keepSet[key] {
			delete(c.entries, key)
		}
	}
	return nil
}

// Close is a no-op for the in-memory cache.
func (c *SignalCache) Close() error {
	return nil
}
