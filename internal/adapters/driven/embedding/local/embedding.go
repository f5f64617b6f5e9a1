// Package local provides a dependency-free chunker and bag-of-words
// embedder. It trades retrieval quality for zero setup: no model download,
// no API key, no network.
package local

import (
	"math"
	"regexp"
	"strings"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
)

// Ensure Embedder implements the interface.
var _ driven.Embedder = (*Embedder)(nil)

// MinChunkSize is the smallest usable chunk length in words. Smaller
// windows fragment sentences badly enough that retrieval stops working.
const MinChunkSize = 50

// wordPattern matches embedding tokens: alphanumeric runs with underscores,
// so identifiers like snake_case survive as single terms.
var wordPattern = regexp.MustCompile(`[A-Za-z0-9_]+`)

// Embedder splits text into overlapping word windows and embeds text as
// L2-normalised term-frequency vectors.
type Embedder struct {
	chunkSize int
	overlap   int
}

// Option configures the embedder.
type Option func(*Embedder)

// WithChunkSize sets the chunk size in words.
func WithChunkSize(size int) Option {
	return func(e *Embedder) {
		if size > 0 {
			e.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in words.
func WithOverlap(overlap int) Option {
	return func(e *Embedder) {
		if overlap >= 0 {
			e.overlap = overlap
		}
	}
}

// New creates a new local embedder with the given options.
func New(opts ...Option) *Embedder {
	e := &Embedder{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.chunkSize < MinChunkSize {
		e.chunkSize = MinChunkSize
	}

	// Ensure overlap leaves room to advance
	if e.overlap > e.chunkSize/2 {
		e.overlap = e.chunkSize / 2
	}

	return e
}

// Chunk splits text into word windows of the configured size, each
// overlapping the previous by the configured word count. Whitespace-only
// input yields no chunks.
func (e *Embedder) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, len(words)/(e.chunkSize-e.overlap)+1)

	start := 0
	for start < len(words) {
		end := start + e.chunkSize
		if end > len(words) {
			end = len(words)
		}

		chunks = append(chunks, strings.Join(words[start:end], " "))

		if end == len(words) {
			break
		}
		start = end - e.overlap
	}

	return chunks
}

// Embed lower-cases the text, tokenizes it, and returns term frequencies
// divided by the vector's L2 norm. Text with no qualifying tokens yields
// an empty map.
func (e *Embedder) Embed(text string) map[string]float64 {
	tokens := wordPattern.FindAllString(text, -1)
	if len(tokens) == 0 {
		return map[string]float64{}
	}

	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[strings.ToLower(token)]++
	}

	var sum float64
	for _, count := range counts {
		sum += count * count
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		norm = 1.0
	}

	for token, count := range counts {
		counts[token] = count / norm
	}

	return counts
}
