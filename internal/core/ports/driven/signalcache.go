package driven

import (
	"context"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

// SignalCache stores analyzer output between runs so unchanged
// repositories skip re-analysis.
//
// Entries are keyed by analyzer name and validated against two digests:
// the signature (analyzer configuration) and the fingerprint (manifest
// content). A mismatch on either means the cached signals are stale.
type SignalCache interface {
	// Get returns the cached signals for key when both signature and
	// fingerprint match the stored entry. The boolean reports a hit.
	Get(ctx context.Context, key, signature, fingerprint string) ([]domain.Signal, bool, error)

	// Put stores the signals for key, replacing any previous entry.
	Put(ctx context.Context, key, signature, fingerprint string, signals []domain.Signal) error

	// Prune removes entries whose key is not in keep.
	Prune(ctx context.Context, keep []string) error

	// Close releases the backing store.
	Close() error
}
