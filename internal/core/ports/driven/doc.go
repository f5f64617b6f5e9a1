// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Repository: Walks and reads the repository being documented
//   - Embedder: Chunks text and produces term-frequency vectors
//   - ContextStore: Persists embedded chunks per README section
//   - ContextStoreOpener: Opens a store at a path
//   - Analyzer: Derives signals (language, dependencies, build) from a manifest
//   - AnalyzerRegistry: Holds registered analyzers in run order
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SignalCache: Caches analyzer output between runs. Without it,
//     analyzers run on every invocation.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or analyzer package
package driven
