package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
	"github.com/Saechaoc/docgen/internal/core/ports/driving"
	"github.com/Saechaoc/docgen/internal/logger"
)

// Ensure SignalCollector implements the interface.
var _ driving.SignalCollector = (*SignalCollector)(nil)

// signalSchemaVersion feeds each analyzer's cache signature. Bump it when
// analyzer output changes shape so stale entries stop matching.
const signalSchemaVersion = "1"

// SignalCollector runs registered analyzers over a repository manifest and
// gathers their signals.
//
// With a cache configured, each analyzer's output is stored under its name
// and reused while both the analyzer signature and the manifest fingerprint
// still match. Cache trouble is never fatal: a failed read or write just
// means the analyzer runs directly.
type SignalCollector struct {
	repo     driven.Repository
	registry driven.AnalyzerRegistry
	cache    driven.SignalCache
}

// SignalCollectorOption customises a SignalCollector.
type SignalCollectorOption func(*SignalCollector)

// WithSignalCache enables caching of analyzer output. A nil cache is
// ignored.
func WithSignalCache(cache driven.SignalCache) SignalCollectorOption {
	return func(c *SignalCollector) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// NewSignalCollector creates a new signal collector.
func NewSignalCollector(repo driven.Repository, registry driven.AnalyzerRegistry, opts ...SignalCollectorOption) *SignalCollector {
	collector := &SignalCollector{
		repo:     repo,
		registry: registry,
	}
	for _, opt := range opts {
		opt(collector)
	}
	return collector
}

// Collect scans the repository and returns analyzer signals.
func (c *SignalCollector) Collect(ctx context.Context, root string) ([]domain.Signal, error) {
	manifest, err := c.repo.Scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("scan repository: %w", err)
	}
	return c.CollectFromManifest(ctx, manifest)
}

// CollectFromManifest runs analyzers over an existing manifest.
func (c *SignalCollector) CollectFromManifest(ctx context.Context, manifest *domain.Manifest) ([]domain.Signal, error) {
	if manifest == nil {
		return nil, fmt.Errorf("%w: nil manifest", domain.ErrInvalidInput)
	}

	var fingerprint string
	if c.cache != nil {
		fingerprint = manifestFingerprint(manifest)
	}

	var signals []domain.Signal
	for _, analyzer := range c.registry.Analyzers() {
		name := analyzer.Name()
		if !analyzer.Supports(manifest) {
			logger.Debug("Analyzer %s skipped: repository not supported", name)
			continue
		}

		if c.cache != nil {
			cached, ok, err := c.cache.Get(ctx, name, analyzerSignature(name), fingerprint)
			if err != nil {
				logger.Debug("Signal cache read for %s failed: %v", name, err)
			} else if ok {
				logger.Debug("Analyzer %s served from cache", name)
				signals = append(signals, cached...)
				continue
			}
		}

		found, err := analyzer.Analyze(ctx, manifest, c.repo)
		if err != nil {
			// One broken parser must not sink the whole collection.
			logger.Warn("Analyzer %s failed: %v", name, err)
			continue
		}
		signals = append(signals, found...)

		if c.cache != nil {
			if err := c.cache.Put(ctx, name, analyzerSignature(name), fingerprint, found); err != nil {
				logger.Debug("Signal cache write for %s failed: %v", name, err)
			}
		}
	}

	if c.cache != nil {
		if err := c.cache.Prune(ctx, c.registry.Names()); err != nil {
			logger.Debug("Signal cache prune failed: %v", err)
		}
	}

	return signals, nil
}

// analyzerSignature digests an analyzer's identity for cache validation.
func analyzerSignature(name string) string {
	sum := sha256.Sum256([]byte(name + "@" + signalSchemaVersion))
	return hex.EncodeToString(sum[:])
}

// manifestFingerprint digests the scanned tree as sorted path:hash lines,
// so any content or layout change invalidates cached signals.
func manifestFingerprint(manifest *domain.Manifest) string {
	lines := make([]string, 0, len(manifest.Files))
	for _, file := range manifest.Files {
		lines = append(lines, file.Path+":"+file.Hash)
	}
	sort.Strings(lines)

	digest := sha256.New()
	for _, line := range lines {
		digest.Write([]byte(line))
		digest.Write([]byte("\n"))
	}
	return hex.EncodeToString(digest.Sum(nil))
}
