package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".docgen", "embeddings.json")
}

func addChunk(s *ContextStore, sections []string, id, path, hash string) {
	s.Add(sections, id, map[string]float64{"term": 1.0}, "text for "+id, domain.ChunkMetadata{
		Path: path,
		Tags: []string{"docs"},
		Hash: hash,
	})
}

func TestOpen_MissingFile(t *testing.T) {
	store := Open(storePath(t))
	require.NotNil(t, store)
	assert.Empty(t, store.Paths())
}

func TestOpen_CorruptFile(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := Open(path)
	require.NotNil(t, store)
	assert.Empty(t, store.Paths())
}

func TestContextStore_AddAndQuery(t *testing.T) {
	store := Open(storePath(t)).(*ContextStore)

	addChunk(store, []string{"intro", "features"}, "README.md#0", "README.md", "h1")
	addChunk(store, []string{"intro"}, "README.md#1", "README.md", "h1")

	intro := store.Query("intro", 5)
	require.Len(t, intro, 2)
	assert.Equal(t, "README.md#0", intro[0].ID)
	assert.Equal(t, "README.md#1", intro[1].ID)

	features := store.Query("features", 5)
	require.Len(t, features, 1)
	assert.Equal(t, "README.md#0", features[0].ID)
}

func TestContextStore_Query_TopK(t *testing.T) {
	store := Open(storePath(t)).(*ContextStore)

	for i := 0; i < 5; i++ {
		addChunk(store, []string{"docs"}, string(rune('a'+i)), "doc.md", "h")
	}

	assert.Len(t, store.Query("docs", 3), 3)
	assert.Len(t, store.Query("docs", 10), 5)
	assert.Empty(t, store.Query("docs", 0))
	assert.Empty(t, store.Query("missing", 3))
}

func TestContextStore_Query_InsertionOrder(t *testing.T) {
	store := Open(storePath(t)).(*ContextStore)

	addChunk(store, []string{"intro"}, "first", "a.md", "h1")
	addChunk(store, []string{"intro"}, "second", "b.md", "h2")
	addChunk(store, []string{"intro"}, "third", "c.md", "h3")

	chunks := store.Query("intro", 2)
	require.Len(t, chunks, 2)
	assert.Equal(t, "first", chunks[0].ID)
	assert.Equal(t, "second", chunks[1].ID)
}

func TestContextStore_Add_DropsEmpty(t *testing.T) {
	store := Open(storePath(t)).(*ContextStore)

	store.Add([]string{"intro"}, "empty-vec", map[string]float64{}, "text", domain.ChunkMetadata{Path: "a.md"})
	store.Add([]string{"intro"}, "blank-text", map[string]float64{"x": 1}, "", domain.ChunkMetadata{Path: "a.md"})

	assert.Empty(t, store.Query("intro", 5))
	assert.Empty(t, store.Paths())
}

func TestContextStore_RemovePath(t *testing.T) {
	store := Open(storePath(t)).(*ContextStore)

	addChunk(store, []string{"intro", "features"}, "a#0", "a.md", "h1")
	addChunk(store, []string{"intro"}, "b#0", "b.md", "h2")

	store.RemovePath("a.md")

	intro := store.Query("intro", 5)
	require.Len(t, intro, 1)
	assert.Equal(t, "b#0", intro[0].ID)
	assert.Empty(t, store.Query("features", 5))
	assert.Equal(t, []string{"b.md"}, store.Paths())
}

func TestContextStore_HasPathWithHash(t *testing.T) {
	store := Open(storePath(t)).(*ContextStore)

	addChunk(store, []string{"intro"}, "a#0", "a.md", "h1")

	assert.True(t, store.HasPathWithHash("a.md", "h1"))
	assert.False(t, store.HasPathWithHash("a.md", "h2"))
	assert.False(t, store.HasPathWithHash("b.md", "h1"))
	assert.False(t, store.HasPathWithHash("a.md", ""))
}

func TestContextStore_Paths_Sorted(t *testing.T) {
	store := Open(storePath(t)).(*ContextStore)

	addChunk(store, []string{"intro"}, "c#0", "c.md", "h")
	addChunk(store, []string{"intro"}, "a#0", "a.md", "h")
	addChunk(store, []string{"docs"}, "a#0", "a.md", "h")
	addChunk(store, []string{"intro"}, "b#0", "b.md", "h")

	assert.Equal(t, []string{"a.md", "b.md", "c.md"}, store.Paths())
}

func TestContextStore_PersistAndReload(t *testing.T) {
	path := storePath(t)

	store := Open(path).(*ContextStore)
	addChunk(store, []string{"intro", "quickstart"}, "README.md#0", "README.md", "h1")
	require.NoError(t, store.Persist())

	// File exists with restricted permissions
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded := Open(path)
	chunks := reloaded.Query("intro", 5)
	require.Len(t, chunks, 1)
	assert.Equal(t, "README.md#0", chunks[0].ID)
	assert.Equal(t, "README.md", chunks[0].Metadata.Path)
	assert.Equal(t, "h1", chunks[0].Metadata.Hash)
	assert.Equal(t, []string{"docs"}, chunks[0].Metadata.Tags)
	assert.True(t, reloaded.HasPathWithHash("README.md", "h1"))
}

// TestContextStore_Persist_FileLayout pins the on-disk shape: section
// names are the top-level keys, with no envelope around them.
func TestContextStore_Persist_FileLayout(t *testing.T) {
	path := storePath(t)

	store := Open(path).(*ContextStore)
	addChunk(store, []string{"intro"}, "README.md#0", "README.md", "h1")
	require.NoError(t, store.Persist())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var onDisk map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &onDisk))
	require.Contains(t, onDisk, "intro")
	require.Len(t, onDisk["intro"], 1)

	entry := onDisk["intro"][0]
	assert.Equal(t, "README.md#0", entry["id"])
	assert.Contains(t, entry, "vector")
	assert.Contains(t, entry, "text")
	meta, ok := entry["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "README.md", meta["path"])
}

func TestContextStore_Persist_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "store.json")

	store := Open(path).(*ContextStore)
	addChunk(store, []string{"intro"}, "a#0", "a.md", "h")
	require.NoError(t, store.Persist())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestContextStore_RemoveThenPersist_DropsEmptyBuckets(t *testing.T) {
	path := storePath(t)

	store := Open(path).(*ContextStore)
	addChunk(store, []string{"intro"}, "a#0", "a.md", "h")
	store.RemovePath("a.md")
	require.NoError(t, store.Persist())

	reloaded := Open(path)
	assert.Empty(t, reloaded.Paths())
	assert.Empty(t, reloaded.Query("intro", 5))
}
