// Package analyzers provides implementations of the Analyzer interface
// for the signal concerns docgen ships with: language makeup, declared
// dependencies, and build tooling.
//
// Analyzers are registered with the AnalyzerRegistry at startup and run
// in registration order.
package analyzers
