// Package filesystem provides the repository scanner and file reader for
// local directory trees.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
	"github.com/Saechaoc/docgen/internal/logger"
)

// Ensure Repository implements the interface.
var _ driven.Repository = (*Repository)(nil)

// DefaultMaxHashSize is the largest file the scanner reads and hashes.
// Bigger files stay in the manifest with an empty hash.
const DefaultMaxHashSize = 1 << 20 // 1 MiB

// skipDirs are directory names never descended into.
var skipDirs = map[string]struct{}{
	"node_modules": {}, "vendor": {}, "dist": {}, "target": {},
	"__pycache__": {}, ".git": {}, ".docgen": {}, ".venv": {},
}

// binaryExts are extensions skipped without reading.
var binaryExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}, ".svg": {}, ".ico": {},
	".pdf": {}, ".zip": {}, ".gz": {}, ".tar": {}, ".xz": {}, ".7z": {},
	".mp4": {}, ".mov": {}, ".mp3": {}, ".woff": {}, ".woff2": {}, ".ttf": {},
	".so": {}, ".dylib": {}, ".dll": {}, ".exe": {}, ".wasm": {},
}

// Repository scans local directory trees into manifests and reads file
// content back out.
type Repository struct {
	excludes    []string
	maxHashSize int64
}

// Option configures the repository.
type Option func(*Repository)

// WithExcludes adds glob patterns skipped during walks, matched against
// the slash-separated root-relative path.
func WithExcludes(patterns []string) Option {
	return func(r *Repository) {
		r.excludes = append(r.excludes, patterns...)
	}
}

// WithMaxHashSize overrides the read-and-hash size cap in bytes.
func WithMaxHashSize(n int64) Option {
	return func(r *Repository) {
		if n > 0 {
			r.maxHashSize = n
		}
	}
}

// New creates a new filesystem repository.
func New(opts ...Option) *Repository {
	r := &Repository{
		maxHashSize: DefaultMaxHashSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scan walks the tree rooted at root and returns a manifest of its files.
// Hidden files and directories, the built-in skip list, gitignored paths,
// and configured exclude globs are left out. Unreadable files are skipped
// with a debug log; only a failure to walk at all is an error.
func (r *Repository) Scan(ctx context.Context, root string) (*domain.Manifest, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrScanFailed, root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrScanFailed, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrScanFailed, root)
	}

	ignore := loadGitignore(absRoot)
	cache := loadHashCache(absRoot)
	fresh := newHashCache()

	manifest := &domain.Manifest{Root: absRoot}

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal
			logger.Debug("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			rel := relSlash(absRoot, path)
			if ignore.Match(rel, true) || matchAny(rel+"/", r.excludes) || matchAny(rel, r.excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if _, deny := binaryExts[strings.ToLower(filepath.Ext(name))]; deny {
			return nil
		}

		rel := relSlash(absRoot, path)
		if ignore.Match(rel, false) || matchAny(rel, r.excludes) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			logger.Debug("Skipping %s: %v", rel, err)
			return nil
		}

		meta := domain.FileMeta{
			Path:     rel,
			Size:     fi.Size(),
			Language: detectLanguage(rel),
			Role:     detectRole(rel),
		}

		if fi.Size() <= r.maxHashSize {
			hash, ok := r.hashFile(path, fi, rel, cache, fresh)
			if !ok {
				// Binary content
				return nil
			}
			meta.Hash = hash
		}

		manifest.Files = append(manifest.Files, meta)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrScanFailed, root, walkErr)
	}

	fresh.save(absRoot)

	return manifest, nil
}

// hashFile returns the content hash for one file, reusing the cached
// digest when size and mtime are unchanged. The boolean is false for
// binary content.
func (r *Repository) hashFile(path string, fi fs.FileInfo, rel string, cache, fresh *hashCache) (string, bool) {
	if hash, ok := cache.lookup(rel, fi); ok {
		fresh.record(rel, fi, hash)
		return hash, true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("Hashing %s failed: %v", rel, err)
		return "", true
	}
	if looksBinary(data) {
		return "", false
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	fresh.record(rel, fi, hash)
	return hash, true
}

// ReadText returns the decoded text content of one file identified by its
// root-relative path. Missing files report ErrNotFound; paths escaping the
// root and binary content are rejected.
func (r *Repository) ReadText(ctx context.Context, root, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q escapes repository", domain.ErrInvalidInput, path)
	}

	data, err := os.ReadFile(filepath.Join(root, clean))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if looksBinary(data) {
		return "", fmt.Errorf("%w: %s is binary", domain.ErrInvalidInput, path)
	}
	return string(data), nil
}

// looksBinary reports whether content contains a NUL byte in its first
// 8000 bytes.
func looksBinary(b []byte) bool {
	n := len(b)
	if n > 8000 {
		n = 8000
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// relSlash returns the slash-separated path of child relative to root.
func relSlash(root, child string) string {
	rel, err := filepath.Rel(root, child)
	if err != nil {
		return filepath.ToSlash(child)
	}
	return filepath.ToSlash(rel)
}

// matchAny reports whether the relative path matches any pattern. Patterns
// ending in "/" match whole directory subtrees; slashless patterns match
// the base name as well as the full path.
func matchAny(rel string, patterns []string) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.HasSuffix(pattern, "/") {
			if rel == strings.TrimSuffix(pattern, "/") || strings.HasPrefix(rel, pattern) {
				return true
			}
			continue
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := filepath.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}
