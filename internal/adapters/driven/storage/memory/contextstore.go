package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
)

// Ensure ContextStore implements the interface.
var _ driven.ContextStore = (*ContextStore)(nil)

// ContextStore is an in-memory implementation of driven.ContextStore.
// Persist is a no-op; state lives for the process only.
type ContextStore struct {
	mu       sync.RWMutex
	sections map[string][]domain.Chunk
}

// NewContextStore creates a new in-memory context store.
func NewContextStore() *ContextStore {
	return &ContextStore{
		sections: make(map[string][]domain.Chunk),
	}
}

// OpenContextStore adapts NewContextStore to the store opener signature,
// ignoring the path.
func OpenContextStore(_ string) driven.ContextStore {
	return NewContextStore()
}

// Add appends one chunk entry to every named section bucket. Empty vectors
// and blank text are silently dropped.
func (s *ContextStore) Add(sections []string, id string, vector map[string]float64, text string, meta domain.ChunkMetadata) {
	if len(vector) == 0 || strings.TrimSpace(text) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	chunk := domain.Chunk{
		ID:     id,
		Vector: vector,
		Text:   text,
		Metadata: domain.ChunkMetadata{
			Path: meta.Path,
			Tags: append([]string(nil), meta.Tags...),
			Hash: meta.Hash,
		},
	}
	for _, section := range sections {
		s.sections[section] = append(s.sections[section], chunk)
	}
}

// Query returns the first topK chunks of a section bucket in insertion
// order.
func (s *ContextStore) Query(section string, topK int) []domain.Chunk {
	if topK <= 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := s.sections[section]
	if len(chunks) > topK {
		chunks = chunks[:topK]
	}

	out := make([]domain.Chunk, len(chunks))
	copy(out, chunks)
	return out
}

// RemovePath deletes, across every bucket, all chunks originating from
// path.
func (s *ContextStore) RemovePath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for section, chunks := range s.sections {
		kept := chunks[:0]
		for _, chunk := range chunks {
			if chunk.Metadata.Path != path {
				kept = append(kept, chunk)
			}
		}
		if len(kept) == 0 {
			delete(s.sections, section)
			continue
		}
		s.sections[section] = kept
	}
}

// HasPathWithHash reports whether any stored chunk carries both the path
// and the content hash. An empty hash never matches.
func (s *ContextStore) HasPathWithHash(path, hash string) bool {
	if hash == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, chunks := range s.sections {
		for _, chunk := range chunks {
			if chunk.Metadata.Path == path && chunk.Metadata.Hash == hash {
				return true
			}
		}
	}
	return false
}

// Paths returns the distinct set of stored paths, sorted.
func (s *ContextStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	for _, chunks := range s.sections {
		for _, chunk := range chunks {
			seen[chunk.Metadata.Path] = true
		}
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Persist is a no-op for the in-memory store.
func (s *ContextStore) Persist() error {
	return nil
}
