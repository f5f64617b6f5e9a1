package mcp

import (
	"github.com/Saechaoc/docgen/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Context builds the embedding index and resolves section context.
	Context driving.ContextBuilder

	// Validation checks rendered sections against repository evidence.
	Validation driving.ReadmeValidator

	// Signals runs the registered repository analyzers.
	Signals driving.SignalCollector
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Context == nil {
		return ErrMissingContextBuilder
	}
	if p.Validation == nil {
		return ErrMissingValidator
	}
	if p.Signals == nil {
		return ErrMissingSignalCollector
	}
	return nil
}
