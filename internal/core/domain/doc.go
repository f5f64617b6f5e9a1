// Package domain defines the core business entities for docgen.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FileMeta/Manifest: A scanned repository file listing
//   - Chunk: An embedded span of repository text with provenance
//   - Signal: An analyzer-produced fact about the repository
//   - Section: A rendered README section under validation
//   - ValidationIssue: A grounding failure reported for one sentence
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
