package driving

import (
	"context"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

// SignalCollector runs the registered analyzers over a repository and
// returns their signals, consulting the signal cache when one is
// configured.
type SignalCollector interface {
	// Collect scans the repository and returns analyzer signals.
	Collect(ctx context.Context, root string) ([]domain.Signal, error)

	// CollectFromManifest runs analyzers over an existing manifest,
	// avoiding a second scan when the caller already has one.
	CollectFromManifest(ctx context.Context, manifest *domain.Manifest) ([]domain.Signal, error)
}
