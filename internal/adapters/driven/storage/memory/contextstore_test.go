package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

func addChunk(s *ContextStore, sections []string, id, path, hash string) {
	s.Add(sections, id, map[string]float64{"term": 1.0}, "text for "+id, domain.ChunkMetadata{
		Path: path,
		Tags: []string{"docs"},
		Hash: hash,
	})
}

func TestNewContextStore(t *testing.T) {
	store := NewContextStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.sections)
}

func TestOpenContextStore_IgnoresPath(t *testing.T) {
	store := OpenContextStore("/does/not/matter.json")
	require.NotNil(t, store)
	assert.Empty(t, store.Paths())
	assert.NoError(t, store.Persist())
}

func TestContextStore_AddAndQuery(t *testing.T) {
	store := NewContextStore()

	addChunk(store, []string{"intro", "features"}, "README.md#0", "README.md", "h1")
	addChunk(store, []string{"intro"}, "README.md#1", "README.md", "h1")

	intro := store.Query("intro", 5)
	require.Len(t, intro, 2)
	assert.Equal(t, "README.md#0", intro[0].ID)
	assert.Equal(t, "README.md#1", intro[1].ID)

	features := store.Query("features", 5)
	require.Len(t, features, 1)
}

func TestContextStore_Query_TopK(t *testing.T) {
	store := NewContextStore()

	for i := 0; i < 5; i++ {
		addChunk(store, []string{"docs"}, string(rune('a'+i)), "doc.md", "h")
	}

	assert.Len(t, store.Query("docs", 3), 3)
	assert.Len(t, store.Query("docs", 10), 5)
	assert.Empty(t, store.Query("docs", 0))
	assert.Empty(t, store.Query("missing", 3))
}

func TestContextStore_Add_DropsEmpty(t *testing.T) {
	store := NewContextStore()

	store.Add([]string{"intro"}, "empty-vec", map[string]float64{}, "text", domain.ChunkMetadata{Path: "a.md"})
	store.Add([]string{"intro"}, "blank-text", map[string]float64{"x": 1}, "", domain.ChunkMetadata{Path: "a.md"})

	assert.Empty(t, store.Query("intro", 5))
}

func TestContextStore_RemovePath(t *testing.T) {
	store := NewContextStore()

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
	store := NewContextStore()

	addChunk(store, []string{"intro"}, "a#0", "a.md", "h1")

	assert.True(t, store.HasPathWithHash("a.md", "h1"))
	assert.False(t, store.HasPathWithHash("a.md", "h2"))
	assert.False(t, store.HasPathWithHash("b.md", "h1"))
	assert.False(t, store.HasPathWithHash("a.md", ""))
}

func TestContextStore_Paths_SortedDistinct(t *testing.T) {
	store := NewContextStore()

	addChunk(store, []string{"intro"}, "c#0", "c.md", "h")
	addChunk(store, []string{"intro"}, "a#0", "a.md", "h")
	addChunk(store, []string{"docs"}, "a#1", "a.md", "h")
	addChunk(store, []string{"intro"}, "b#0", "b.md", "h")

	assert.Equal(t, []string{"a.md", "b.md", "c.md"}, store.Paths())
}

func TestContextStore_Query_ReturnsCopy(t *testing.T) {
	store := NewContextStore()
	addChunk(store, []string{"intro"}, "a#0", "a.md", "h")

	first := store.Query("intro", 5)
	first[0].ID = "mutated"

	second := store.Query("intro", 5)
	assert.Equal(t, "a#0", second[0].ID)
}
