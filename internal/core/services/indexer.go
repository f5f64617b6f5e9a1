package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
	"github.com/Saechaoc/docgen/internal/core/ports/driving"
	"github.com/Saechaoc/docgen/internal/logger"
)

// Ensure ContextIndexer implements the interface.
var _ driving.ContextBuilder = (*ContextIndexer)(nil)

const (
	// maxSnippetsPerSection caps how many chunk texts a section receives.
	maxSnippetsPerSection = 3

	// sourceHeadChars bounds how much of a source file is embedded.
	// Heads carry the imports, declarations, and doc comments that
	// matter for README context.
	sourceHeadChars = 2000

	// readmePath is the root README, indexed ahead of the docs pass.
	readmePath = "README.md"
)

// ContextIndexer refreshes the chunk store against the current repository
// state and resolves per-section context snippets.
//
// Builds are synchronous and assume exclusive access to the store file;
// nothing here locks across processes.
type ContextIndexer struct {
	repo           driven.Repository
	embedder       driven.Embedder
	openStore      driven.ContextStoreOpener
	maxSourceFiles int
	storePath      string
}

// ContextIndexerOption customises a ContextIndexer.
type ContextIndexerOption func(*ContextIndexer)

// WithMaxSourceFiles caps how many source files are indexed, largest
// first. Values below one are ignored.
func WithMaxSourceFiles(n int) ContextIndexerOption {
	return func(i *ContextIndexer) {
		if n > 0 {
			i.maxSourceFiles = n
		}
	}
}

// WithStorePath overrides the store location relative to the repository
// root. Empty values are ignored.
func WithStorePath(rel string) ContextIndexerOption {
	return func(i *ContextIndexer) {
		if rel != "" {
			i.storePath = rel
		}
	}
}

// NewContextIndexer creates a new indexer.
func NewContextIndexer(repo driven.Repository, embedder driven.Embedder, openStore driven.ContextStoreOpener, opts ...ContextIndexerOption) *ContextIndexer {
	indexer := &ContextIndexer{
		repo:           repo,
		embedder:       embedder,
		openStore:      openStore,
		maxSourceFiles: domain.DefaultMaxSourceFiles,
		storePath:      domain.DefaultStorePath,
	}
	for _, opt := range opts {
		opt(indexer)
	}
	return indexer
}

type buildStats struct {
	indexed int
	skipped int
}

// BuildContexts scans the repository, refreshes the store, prunes deleted
// paths, persists, and resolves contexts for the requested sections.
// Indexing an unchanged repository is a no-op apart from the re-persist:
// every file hits the hash check and the resulting contexts are identical.
func (i *ContextIndexer) BuildContexts(ctx context.Context, root string, sections []string) (*driving.ContextResult, error) {
	if len(sections) == 0 {
		sections = domain.DefaultSections()
	}

	logger.Section("Context Index Build")
	logger.Info("Scanning %s", root)

	manifest, err := i.repo.Scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("scan repository: %w", err)
	}

	storePath := filepath.Join(root, filepath.FromSlash(i.storePath))
	store := i.openStore(storePath)

	visited := make(map[string]bool)
	var stats buildStats

	// 1. README, docs, then the largest source files
	i.indexReadme(ctx, manifest, store, visited, &stats)
	i.indexDocs(ctx, manifest, store, visited, &stats)
	i.indexSourceFiles(ctx, manifest, store, visited, &stats)

	// 2. Prune paths that vanished from the repository
	pruned := 0
	for _, existing := range store.Paths() {
		if !visited[existing] {
			store.RemovePath(existing)
			pruned++
		}
	}

	// 3. Persist
	if err := store.Persist(); err != nil {
		return nil, fmt.Errorf("persist store: %w", err)
	}

	// 4. Resolve per-section contexts in insertion order
	contexts := make(map[string][]string, len(sections))
	for _, section := range sections {
		snippets := make([]string, 0, maxSnippetsPerSection)
		for _, chunk := range store.Query(section, maxSnippetsPerSection) {
			if text := strings.TrimSpace(chunk.Text); text != "" {
				snippets = append(snippets, text)
			}
		}
		contexts[section] = snippets
	}

	logger.Info("Index build complete: %d files embedded, %d unchanged, %d pruned",
		stats.indexed, stats.skipped, pruned)

	return &driving.ContextResult{
		Contexts:     contexts,
		StorePath:    storePath,
		FilesIndexed: stats.indexed,
		FilesSkipped: stats.skipped,
		PathsPruned:  pruned,
	}, nil
}

// indexReadme embeds the root README. The manifest supplies the content
// hash; a README outside the manifest is hashed directly.
func (i *ContextIndexer) indexReadme(ctx context.Context, manifest *domain.Manifest, store driven.ContextStore, visited map[string]bool, stats *buildStats) {
	text, err := i.repo.ReadText(ctx, manifest.Root, readmePath)
	if err != nil {
		logger.Debug("Skipping %s: %v", readmePath, err)
		return
	}
	if text == "" {
		return
	}

	hash := ""
	if meta := manifest.FindPath(readmePath); meta != nil {
		hash = meta.Hash
	}
	if hash == "" {
		hash = hashText(text)
	}

	visited[readmePath] = true
	if store.HasPathWithHash(readmePath, hash) {
		stats.skipped++
		return
	}
	store.RemovePath(readmePath)
	i.addChunks(store, text, readmePath, []string{"readme"}, hash)
	stats.indexed++
}

// indexDocs embeds documentation and example files: anything with a docs
// or examples role, plus everything under docs/.
func (i *ContextIndexer) indexDocs(ctx context.Context, manifest *domain.Manifest, store driven.ContextStore, visited map[string]bool, stats *buildStats) {
	for _, meta := range manifest.Files {
		if meta.Role != domain.RoleDocs && meta.Role != domain.RoleExamples && !strings.HasPrefix(meta.Path, "docs/") {
			continue
		}
		// indexReadme owns the root README
		if meta.Path == readmePath {
			continue
		}

		text, err := i.repo.ReadText(ctx, manifest.Root, meta.Path)
		if err != nil {
			logger.Debug("Skipping %s: %v", meta.Path, err)
			continue
		}
		if text == "" {
			continue
		}

		tags := []string{"docs"}
		lowerPath := strings.ToLower(meta.Path)
		if strings.HasPrefix(lowerPath, "docs/troubleshooting") {
			tags = append(tags, "troubleshooting")
		}
		if strings.HasPrefix(lowerPath, "docs/faq") {
			tags = append(tags, "faq")
		}

		hash := meta.Hash
		if hash == "" {
			hash = hashText(text)
		}

		visited[meta.Path] = true
		if store.HasPathWithHash(meta.Path, hash) {
			stats.skipped++
			continue
		}
		store.RemovePath(meta.Path)
		i.addChunks(store, text, meta.Path, tags, hash)
		stats.indexed++
	}
}

// indexSourceFiles embeds the heads of the N largest source files with a
// known language. The stable sort keeps manifest order for equal sizes.
func (i *ContextIndexer) indexSourceFiles(ctx context.Context, manifest *domain.Manifest, store driven.ContextStore, visited map[string]bool, stats *buildStats) {
	var sourceFiles []domain.FileMeta
	for _, meta := range manifest.Files {
		if meta.Role == domain.RoleSource && meta.Language != "" {
			sourceFiles = append(sourceFiles, meta)
		}
	}
	sort.SliceStable(sourceFiles, func(a, b int) bool {
		return sourceFiles[a].Size > sourceFiles[b].Size
	})
	if len(sourceFiles) > i.maxSourceFiles {
		sourceFiles = sourceFiles[:i.maxSourceFiles]
	}

	for _, meta := range sourceFiles {
		text, err := i.repo.ReadText(ctx, manifest.Root, meta.Path)
		if err != nil {
			logger.Debug("Skipping %s: %v", meta.Path, err)
			continue
		}
		text = headChars(text, sourceHeadChars)
		if text == "" {
			continue
		}

		tags := []string{"source", strings.ToLower(meta.Language)}

		hash := meta.Hash
		if hash == "" {
			// Over-limit files carry no manifest hash; hash the head we
			// actually embed so unchanged heads still skip.
			hash = hashText(text)
		}

		visited[meta.Path] = true
		if store.HasPathWithHash(meta.Path, hash) {
			stats.skipped++
			continue
		}
		store.RemovePath(meta.Path)
		i.addChunks(store, text, meta.Path, tags, hash)
		stats.indexed++
	}
}

// addChunks chunks and embeds one file, fanning each chunk out to every
// section bucket its tags map to. Chunk IDs stay stable across builds for
// unchanged content ("path#ordinal").
func (i *ContextIndexer) addChunks(store driven.ContextStore, text, source string, tags []string, hash string) {
	sections := domain.SectionsForTags(tags)
	for idx, chunk := range i.embedder.Chunk(text) {
		vector := i.embedder.Embed(chunk)
		id := fmt.Sprintf("%s#%d", source, idx)
		meta := domain.ChunkMetadata{
			Path: source,
			Tags: append([]string(nil), tags...),
			Hash: hash,
		}
		store.Add(sections, id, vector, chunk, meta)
	}
}

func headChars(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
