package filesystem

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Saechaoc/docgen/internal/logger"
)

// cacheRelPath locates the scan hash cache under the repository root.
const cacheRelPath = ".docgen/manifest_cache.json"

// cacheVersion guards the on-disk layout; a mismatch discards the cache.
const cacheVersion = 1

// cachedFile is one remembered digest keyed by size and mtime.
type cachedFile struct {
	Size  int64  `json:"size"`
	MTime int64  `json:"mtime"`
	Hash  string `json:"hash"`
}

// cacheFile is the on-disk cache layout.
type cacheFile struct {
	Version int                   `json:"version"`
	Files   map[string]cachedFile `json:"files"`
}

// hashCache avoids re-reading files whose size and mtime are unchanged
// since the previous scan. Everything about it is best-effort: load and
// save failures degrade to hashing every file.
type hashCache struct {
	files map[string]cachedFile
}

func newHashCache() *hashCache {
	return &hashCache{files: make(map[string]cachedFile)}
}

// loadHashCache reads the cache under root. Missing, corrupt, or
// version-mismatched caches come back empty.
func loadHashCache(root string) *hashCache {
	c := newHashCache()

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(cacheRelPath)))
	if err != nil {
		return c
	}

	var loaded cacheFile
	if err := json.Unmarshal(data, &loaded); err != nil || loaded.Version != cacheVersion {
		return c
	}
	if loaded.Files != nil {
		c.files = loaded.Files
	}
	return c
}

// lookup returns the cached hash when size and mtime still match.
func (c *hashCache) lookup(rel string, fi fs.FileInfo) (string, bool) {
	entry, ok := c.files[rel]
	if !ok || entry.Hash == "" {
		return "", false
	}
	if entry.Size != fi.Size() || entry.MTime != fi.ModTime().UnixNano() {
		return "", false
	}
	return entry.Hash, true
}

// record remembers one file's digest for the next scan.
func (c *hashCache) record(rel string, fi fs.FileInfo, hash string) {
	if hash == "" {
		return
	}
	c.files[rel] = cachedFile{
		Size:  fi.Size(),
		MTime: fi.ModTime().UnixNano(),
		Hash:  hash,
	}
}

// save writes the cache under root, replacing stale entries wholesale.
func (c *hashCache) save(root string) {
	target := filepath.Join(root, filepath.FromSlash(cacheRelPath))

	data, err := json.Marshal(cacheFile{Version: cacheVersion, Files: c.files})
	if err != nil {
		logger.Debug("Encoding scan cache failed: %v", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(target), 0700); err != nil {
		logger.Debug("Writing scan cache failed: %v", err)
		return
	}
	if err := os.WriteFile(target, data, 0600); err != nil {
		logger.Debug("Writing scan cache failed: %v", err)
	}
}
