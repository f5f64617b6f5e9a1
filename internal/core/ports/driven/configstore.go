package driven

// ConfigStore provides access to stored configuration keys. Keys use
// dot notation ("chunking.size", "validation.mode"); implementations
// handle persistence (e.g. a repository-root TOML file) and type
// conversion.
type ConfigStore interface {
	// Get returns the raw value for key and whether the key is set.
	Get(key string) (any, bool)

	// GetString returns the value for key, or "" when the key is
	// unset or holds a non-string.
	GetString(key string) string

	// GetInt returns the value for key, or 0 when the key is unset
	// or holds a non-integer.
	GetInt(key string) int

	// GetBool returns the value for key, or false when the key is
	// unset or holds a non-boolean.
	GetBool(key string) bool

	// GetStringSlice returns the value for key, or nil when the key
	// is unset or holds a non-slice.
	GetStringSlice(key string) []string

	// Set stores a value under key. The value is persisted
	// immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path reports where the configuration lives, for display.
	Path() string
}
