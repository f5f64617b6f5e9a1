// Package jsonfile provides a JSON-file-backed context store. One file
// holds every section bucket; the whole store is read on open and written
// on Persist.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
)

// Ensure ContextStore implements the interface.
var _ driven.ContextStore = (*ContextStore)(nil)

// Ensure Open satisfies the opener signature.
var _ driven.ContextStoreOpener = Open

// storedChunk is the persisted form of one chunk entry.
type storedChunk struct {
	ID       string             `json:"id"`
	Vector   map[string]float64 `json:"vector"`
	Text     string             `json:"text"`
	Metadata storedMeta         `json:"metadata"`
}

// storedMeta is the persisted chunk provenance.
type storedMeta struct {
	Path string   `json:"path"`
	Tags []string `json:"tags"`
	Hash string   `json:"hash,omitempty"`
}

// ContextStore is a JSON-file implementation of driven.ContextStore.
// The on-disk layout is one top-level object keyed by section name, each
// value an array of chunk entries in insertion order.
type ContextStore struct {
	mu       sync.RWMutex
	filePath string
	sections map[string][]storedChunk
}

// Open loads the store backing file at path. A missing or unreadable file
// yields an empty store; the first Persist recreates it.
func Open(path string) driven.ContextStore {
	s := &ContextStore{
		filePath: path,
		sections: make(map[string][]storedChunk),
	}
	s.load()
	return s
}

// load reads the backing file, treating any failure as an empty store.
func (s *ContextStore) load() {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return
	}

	var loaded map[string][]storedChunk
	if err := json.Unmarshal(data, &loaded); err != nil {
		// Corrupt state is discarded rather than surfaced; the next
		// build re-embeds everything.
		return
	}
	if loaded == nil {
		return
	}
	s.sections = loaded
}

// Add appends one chunk entry to every named section bucket. Empty vectors
// and blank text are silently dropped.
func (s *ContextStore) Add(sections []string, id string, vector map[string]float64, text string, meta domain.ChunkMetadata) {
	if len(vector) == 0 || strings.TrimSpace(text) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := storedChunk{
		ID:     id,
		Vector: vector,
		Text:   text,
		Metadata: storedMeta{
			Path: meta.Path,
			Tags: append([]string(nil), meta.Tags...),
			Hash: meta.Hash,
		},
	}
	for _, section := range sections {
		s.sections[section] = append(s.sections[section], entry)
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

	entries := s.sections[section]
	if len(entries) > topK {
		entries = entries[:topK]
	}

	chunks := make([]domain.Chunk, 0, len(entries))
	for _, entry := range entries {
		chunks = append(chunks, domain.Chunk{
			ID:     entry.ID,
			Vector: entry.Vector,
			Text:   entry.Text,
			Metadata: domain.ChunkMetadata{
				Path: entry.Metadata.Path,
				Tags: append([]string(nil), entry.Metadata.Tags...),
				Hash: entry.Metadata.Hash,
			},
		})
	}
	return chunks
}

// RemovePath deletes, across every bucket, all chunks originating from
// path. Buckets left empty disappear from the persisted file.
func (s *ContextStore) RemovePath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for section, entries := range s.sections {
		kept := entries[:0]
		for _, entry := range entries {
			if entry.Metadata.Path != path {
				kept = append(kept, entry)
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

	for _, entries := range s.sections {
		for _, entry := range entries {
			if entry.Metadata.Path == path && entry.Metadata.Hash == hash {
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
	for _, entries := range s.sections {
		for _, entry := range entries {
			seen[entry.Metadata.Path] = true
		}
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Persist writes the store to its backing file, creating parent
// directories as needed.
func (s *ContextStore) Persist() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(s.sections, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return err
	}

	// The store quotes repository text; keep it owner-only.
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the backing file path.
func (s *ContextStore) Path() string {
	return s.filePath
}
