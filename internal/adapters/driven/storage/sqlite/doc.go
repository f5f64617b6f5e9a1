// Package sqlite provides the SQLite-backed signal cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. It persists
// analyzer output between runs so unchanged repositories skip re-analysis.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory.
//
// # Data Location
//
// By default, the database lives at .docgen/signals.db under the scanned
// repository root; callers may point it anywhere.
//
// # Thread Safety
//
// All operations are thread-safe. The cache uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
