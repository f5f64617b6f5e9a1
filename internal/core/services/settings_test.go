package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saechaoc/docgen/internal/adapters/driven/storage/memory"
	"github.com/Saechaoc/docgen/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Settings_ReturnsDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := service.Settings()

	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Chunking.Size, settings.Chunking.Size)
	assert.Equal(t, defaults.Chunking.Overlap, settings.Chunking.Overlap)
	assert.Equal(t, defaults.Index.MaxSourceFiles, settings.Index.MaxSourceFiles)
	assert.Equal(t, defaults.Index.StorePath, settings.Index.StorePath)
	assert.Equal(t, defaults.Index.Sections, settings.Index.Sections)
	assert.Equal(t, domain.ModeBalanced, settings.Validation.Mode)
	assert.Equal(t, defaults.Validation.MinOverlap, settings.Validation.MinOverlap)
	assert.Nil(t, settings.Validation.AllowInferred)
	assert.Empty(t, settings.Scan.ExcludePaths)
	assert.Equal(t, defaults.Cache.Path, settings.Cache.Path)
	assert.False(t, settings.Cache.Disabled)
	assert.Equal(t, defaults.Watch.DebounceMillis, settings.Watch.DebounceMillis)
}

func TestSettingsService_Settings_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("chunking.size", 200)
	_ = store.Set("chunking.overlap", 0)
	_ = store.Set("index.max_source_files", 5)
	_ = store.Set("index.store_path", ".cache/chunks.json")
	_ = store.Set("index.sections", []string{"intro", "quickstart"})
	_ = store.Set("validation.mode", "strict")
	_ = store.Set("validation.allow_inferred", true)
	_ = store.Set("scan.exclude_paths", []string{"data/", "*.generated"})
	_ = store.Set("cache.disabled", true)
	_ = store.Set("watch.debounce_ms", 500)

	service := NewSettingsService(store)

	settings := service.Settings()

	assert.Equal(t, 200, settings.Chunking.Size)
	assert.Equal(t, 0, settings.Chunking.Overlap)
	assert.Equal(t, 5, settings.Index.MaxSourceFiles)
	assert.Equal(t, ".cache/chunks.json", settings.Index.StorePath)
	assert.Equal(t, []string{"intro", "quickstart"}, settings.Index.Sections)
	assert.Equal(t, domain.ModeStrict, settings.Validation.Mode)
	require.NotNil(t, settings.Validation.AllowInferred)
	assert.True(t, *settings.Validation.AllowInferred)
	assert.Equal(t, []string{"data/", "*.generated"}, settings.Scan.ExcludePaths)
	assert.True(t, settings.Cache.Disabled)
	assert.Equal(t, 500, settings.Watch.DebounceMillis)
}

func TestSettingsService_Settings_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("validation.mode", "paranoid")
	_ = store.Set("chunking.size", -10)

	service := NewSettingsService(store)

	settings := service.Settings()

	assert.Equal(t, domain.ModeBalanced, settings.Validation.Mode)
	assert.Equal(t, domain.DefaultChunkSize, settings.Chunking.Size)
}

func TestSettingsService_Get_KnownKey(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("chunking.size", 120)

	service := NewSettingsService(store)

	val, ok := service.Get("chunking.size")
	require.True(t, ok)
	assert.Equal(t, 120, val)
}

func TestSettingsService_Get_UnsetKeyReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	val, ok := service.Get("index.max_source_files")
	require.True(t, ok)
	assert.Equal(t, domain.DefaultMaxSourceFiles, val)
}

func TestSettingsService_Get_AllowInferredFollowsMode(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	// Balanced mode allows inferred evidence by default.
	val, ok := service.Get("validation.allow_inferred")
	require.True(t, ok)
	assert.Equal(t, true, val)

	_ = store.Set("validation.mode", "strict")

	val, ok = service.Get("validation.allow_inferred")
	require.True(t, ok)
	assert.Equal(t, false, val)
}

func TestSettingsService_Get_UnknownKey(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	_, ok := service.Get("llm.model")
	assert.False(t, ok)
}

func TestSettingsService_Set_Valid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  any
	}{
		{"int from int", "chunking.size", 250, 250},
		{"int from string", "watch.debounce_ms", "750", 750},
		{"zero overlap", "chunking.overlap", 0, 0},
		{"bool from bool", "cache.disabled", true, true},
		{"bool from string", "validation.allow_inferred", "false", false},
		{"path", "index.store_path", ".docgen/store.json", ".docgen/store.json"},
		{"mode normalised", "validation.mode", " Strict ", "strict"},
		{"sections from csv", "index.sections", "intro, license", []string{"intro", "license"}},
		{"patterns from slice", "scan.exclude_paths", []string{"vendor/", "*.min.js"}, []string{"vendor/", "*.min.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			require.NoError(t, err)
			stored, ok := store.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, stored)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"unknown key", "search.mode", "hybrid"},
		{"negative count", "chunking.size", -1},
		{"non-numeric count", "validation.min_overlap", "lots"},
		{"non-bool flag", "cache.disabled", "sometimes"},
		{"empty path", "cache.path", "  "},
		{"unknown mode", "validation.mode", "paranoid"},
		{"unknown section", "index.sections", "intro, changelog"},
		{"empty sections", "index.sections", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, ok := store.Get(tt.key)
			assert.False(t, ok, "invalid value must not be stored")
		})
	}
}

func TestSettingsService_Set_ThenSettings(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("validation.mode", "strict"))
	require.NoError(t, service.Set("validation.min_overlap", 2))
	require.NoError(t, service.Set("scan.exclude_paths", "build/, *.log"))

	settings := service.Settings()

	assert.Equal(t, domain.ModeStrict, settings.Validation.Mode)
	assert.Equal(t, 2, settings.Validation.MinOverlap)
	assert.Equal(t, []string{"build/", "*.log"}, settings.Scan.ExcludePaths)
}

func TestSettingsService_Entries(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("chunking.size", 175)
	_ = store.Set("cache.disabled", true)

	service := NewSettingsService(store)

	entries := service.Entries()

	require.Len(t, entries, 12)
	assert.Equal(t, "chunking.size", entries[0].Key)
	assert.Equal(t, "175", entries[0].Value)

	byKey := make(map[string]string, len(entries))
	for _, entry := range entries {
		byKey[entry.Key] = entry.Value
	}
	assert.Equal(t, "60", byKey["chunking.overlap"])
	assert.Equal(t, "balanced", byKey["validation.mode"])
	assert.Equal(t, "true", byKey["cache.disabled"])
	assert.Equal(t, ".docgen/signals.db", byKey["cache.path"])
	assert.Contains(t, byKey["index.sections"], "intro")
	assert.Contains(t, byKey["index.sections"], "license")
}

func TestSettingsService_Path(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	assert.Equal(t, ":memory:", service.Path())
}
