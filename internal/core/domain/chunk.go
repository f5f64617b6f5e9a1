package domain

// Chunk is an embedded span of repository text held by the context store.
// Chunks never leave the store layer except as query results; the rest of
// the system consumes their Text.
type Chunk struct {
	// ID identifies the chunk within its source file ("path#ordinal").
	ID string

	// Vector is the L2-normalised term-frequency vector of Text.
	Vector map[string]float64

	// Text is the chunk content handed to prompt construction.
	Text string

	// Metadata carries the chunk's provenance.
	Metadata ChunkMetadata
}

// ChunkMetadata records where a chunk came from and how it was classified.
type ChunkMetadata struct {
	// Path is the originating file, relative to the repository root.
	Path string

	// Tags classify the file (readme, docs, source, language, ...).
	Tags []string

	// Hash is the content hash of the file at index time, empty when
	// the source was unhashed.
	Hash string
}

// HasTag returns true if the chunk carries the given tag.
func (c Chunk) HasTag(tag string) bool {
	for _, t := range c.Metadata.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
