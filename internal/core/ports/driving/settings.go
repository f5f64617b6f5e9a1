package driving

import "github.com/Saechaoc/docgen/internal/core/domain"

// SettingEntry is one configuration key with its rendered current value.
type SettingEntry struct {
	// Key is the dot-separated configuration key.
	Key string

	// Value is the current value rendered as text.
	Value string
}

// SettingsService manages docgen configuration.
type SettingsService interface {
	// Settings returns the current typed settings, with defaults applied
	// for anything the config file leaves unset.
	Settings() domain.Settings

	// Get returns the effective value for a known key: the stored value
	// when set, the resolved default otherwise. Unknown keys report false.
	Get(key string) (any, bool)

	// Set stores and persists one value by dot-separated key.
	Set(key string, value any) error

	// Entries lists every known key with its current value, in a fixed
	// display order.
	Entries() []SettingEntry

	// Path returns the configuration file path.
	Path() string
}
