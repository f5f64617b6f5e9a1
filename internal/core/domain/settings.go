package domain

// Defaults applied when .docgen.toml is absent or partial.
const (
	// DefaultChunkSize is the target chunk length in words.
	DefaultChunkSize = 350

	// DefaultChunkOverlap is the word overlap between adjacent chunks.
	DefaultChunkOverlap = 60

	// DefaultMaxSourceFiles caps how many source files are indexed,
	// largest first. Bounds index build time on big repositories.
	DefaultMaxSourceFiles = 20

	// DefaultStorePath is the persisted chunk store, relative to the
	// repository root.
	DefaultStorePath = ".docgen/embeddings.json"

	// DefaultCachePath is the analyzer signal cache, relative to the
	// repository root.
	DefaultCachePath = ".docgen/signals.db"

	// DefaultMinOverlap is how many evidence tokens a sentence must
	// match to count as grounded.
	DefaultMinOverlap = 1

	// DefaultWatchDebounceMillis spaces out rebuilds in watch mode.
	DefaultWatchDebounceMillis = 2000
)

// ChunkingSettings configures the chunker/vectorizer.
type ChunkingSettings struct {
	// Size is the target chunk length in words.
	Size int

	// Overlap is the word overlap between adjacent chunks.
	Overlap int
}

// IndexSettings configures context index builds.
type IndexSettings struct {
	// MaxSourceFiles caps how many source files are indexed.
	MaxSourceFiles int

	// StorePath locates the persisted store, relative to the root.
	StorePath string

	// Sections lists the target sections; empty means all defaults.
	Sections []string
}

// ValidationSettings configures hallucination validation.
type ValidationSettings struct {
	// Mode is the tier/synonym policy.
	Mode ValidationMode

	// MinOverlap is the grounding threshold per sentence.
	MinOverlap int

	// AllowInferred overrides the mode's tier policy when non-nil.
	AllowInferred *bool
}

// ScanSettings configures repository scanning.
type ScanSettings struct {
	// ExcludePaths are glob patterns skipped during walks, in addition
	// to the built-in skip list (.git, node_modules, ...).
	ExcludePaths []string
}

// CacheSettings configures the analyzer signal cache.
type CacheSettings struct {
	// Path locates the sqlite cache, relative to the root.
	Path string

	// Disabled turns caching off; analyzers always run.
	Disabled bool
}

// WatchSettings configures watch mode.
type WatchSettings struct {
	// DebounceMillis is the minimum spacing between rebuilds.
	DebounceMillis int
}

// Settings holds all docgen configuration.
type Settings struct {
	// Chunking holds chunker/vectorizer settings.
	Chunking ChunkingSettings

	// Index holds context index settings.
	Index IndexSettings

	// Validation holds validator settings.
	Validation ValidationSettings

	// Scan holds repository scan settings.
	Scan ScanSettings

	// Cache holds signal cache settings.
	Cache CacheSettings

	// Watch holds watch mode settings.
	Watch WatchSettings
}

// DefaultSettings returns settings with sensible defaults. Every field is
// populated so loaders can overlay file values without nil checks.
func DefaultSettings() Settings {
	return Settings{
		Chunking: ChunkingSettings{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Index: IndexSettings{
			MaxSourceFiles: DefaultMaxSourceFiles,
			StorePath:      DefaultStorePath,
			Sections:       DefaultSections(),
		},
		Validation: ValidationSettings{
			Mode:       ModeBalanced,
			MinOverlap: DefaultMinOverlap,
		},
		Cache: CacheSettings{
			Path: DefaultCachePath,
		},
		Watch: WatchSettings{
			DebounceMillis: DefaultWatchDebounceMillis,
		},
	}
}
