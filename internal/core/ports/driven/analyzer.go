package driven

import (
	"context"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

// Analyzer derives signals from a scanned repository. Each analyzer covers
// one concern (language detection, dependencies, build tooling).
//
// Analyzers read file content through the Repository port so they stay
// independent of how the tree is accessed.
type Analyzer interface {
	// Name identifies the analyzer and namespaces its signals.
	Name() string

	// Supports reports whether the analyzer applies to the manifest.
	// Unsupported analyzers are skipped without error.
	Supports(manifest *domain.Manifest) bool

	// Analyze inspects the manifest and returns derived signals.
	Analyze(ctx context.Context, manifest *domain.Manifest, repo Repository) ([]domain.Signal, error)
}

// AnalyzerRegistry holds the registered analyzers in registration order.
// It is a plain container: running analyzers, caching their output and
// handling failures is the signal collector's job.
type AnalyzerRegistry interface {
	// Register adds an analyzer. Later registrations run later.
	Register(analyzer Analyzer)

	// Analyzers returns the registered analyzers in order.
	Analyzers() []Analyzer

	// Names returns the registered analyzer names in order.
	Names() []string
}
