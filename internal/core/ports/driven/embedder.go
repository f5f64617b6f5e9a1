package driven

// Embedder splits text into chunks and converts text into sparse
// term-frequency vectors. Both operations are pure: the same input always
// yields the same output, and neither ever fails.
type Embedder interface {
	// Chunk splits text into overlapping word-count windows, in order.
	// Blank input yields no chunks; input shorter than one window yields
	// exactly one chunk.
	Chunk(text string) []string

	// Embed lower-cases the text, tokenizes on alphanumeric/underscore
	// boundaries, and returns term frequencies divided by the vector's
	// L2 norm. Text with no qualifying tokens yields an empty map.
	Embed(text string) map[string]float64
}
