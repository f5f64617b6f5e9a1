package driven

import (
	"github.com/Saechaoc/docgen/internal/core/domain"
)

// ContextStore persists embedded chunks keyed by README section bucket.
// A chunk added under several sections appears in each of their buckets.
// Implementations load any existing state on construction and treat a
// missing or corrupt backing file as an empty store.
//
// Stores are safe for use from a single build at a time; two concurrent
// builds against the same backing file race on Persist.
type ContextStore interface {
	// Add appends one chunk entry to every named section bucket.
	// Empty vectors and blank text are silently dropped.
	Add(sections []string, id string, vector map[string]float64, text string, meta domain.ChunkMetadata)

	// Query returns the first topK chunks of a section bucket in
	// insertion order. Chunk vectors are stored for each entry but are
	// not consulted for ranking.
	Query(section string, topK int) []domain.Chunk

	// RemovePath deletes, across every bucket, all chunks whose
	// metadata path matches.
	RemovePath(path string)

	// HasPathWithHash reports whether any stored chunk carries both the
	// path and the content hash. Used to skip re-embedding unchanged files.
	HasPathWithHash(path, hash string) bool

	// Paths returns the distinct set of paths currently stored, sorted.
	Paths() []string

	// Persist writes the store to its backing file, creating parent
	// directories as needed.
	Persist() error
}

// ContextStoreOpener opens the chunk store backed by the given file path.
// Opening never fails: unreadable or malformed state degrades to an empty
// store.
type ContextStoreOpener func(path string) ContextStore
