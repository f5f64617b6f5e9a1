package analyzers

import (
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.AnalyzerRegistry = (*Registry)(nil)

// Registry holds analyzers in registration order.
type Registry struct {
	analyzers []driven.Analyzer
}

// NewRegistry creates an empty analyzer registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an analyzer. Later registrations run later.
func (r *Registry) Register(analyzer driven.Analyzer) {
	r.analyzers = append(r.analyzers, analyzer)
}

// Analyzers returns the registered analyzers in order.
func (r *Registry) Analyzers() []driven.Analyzer {
	out := make([]driven.Analyzer, len(r.analyzers))
	copy(out, r.analyzers)
	return out
}

// Names returns the registered analyzer names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.analyzers))
	for _, analyzer := range r.analyzers {
		names = append(names, analyzer.Name())
	}
	return names
}
