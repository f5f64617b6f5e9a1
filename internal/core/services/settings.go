package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
	"github.com/Saechaoc/docgen/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyChunkSize      = "chunking.size"
	keyChunkOverlap   = "chunking.overlap"
	keyMaxSourceFiles = "index.max_source_files"
	keyStorePath      = "index.store_path"
	keySections       = "index.sections"
	keyMode           = "validation.mode"
	keyMinOverlap     = "validation.min_overlap"
	keyAllowInferred  = "validation.allow_inferred"
	keyExcludePaths   = "scan.exclude_paths"
	keyCachePath      = "cache.path"
	keyCacheDisabled  = "cache.disabled"
	keyWatchDebounce  = "watch.debounce_ms"
)

// settingKind drives coercion and validation in Set.
type settingKind int

const (
	kindCount    settingKind = iota // non-negative integer
	kindFlag                        // boolean
	kindPath                        // non-empty string
	kindMode                        // validation mode name
	kindSections                    // canonical section names
	kindPatterns                    // glob patterns
)

// settingKinds maps every known key to its kind. Keys absent here are
// rejected by Set.
var settingKinds = map[string]settingKind{
	keyChunkSize:      kindCount,
	keyChunkOverlap:   kindCount,
	keyMaxSourceFiles: kindCount,
	keyStorePath:      kindPath,
	keySections:       kindSections,
	keyMode:           kindMode,
	keyMinOverlap:     kindCount,
	keyAllowInferred:  kindFlag,
	keyExcludePaths:   kindPatterns,
	keyCachePath:      kindPath,
	keyCacheDisabled:  kindFlag,
	keyWatchDebounce:  kindCount,
}

// settingOrder fixes the display order for Entries.
var settingOrder = []string{
	keyChunkSize,
	keyChunkOverlap,
	keyMaxSourceFiles,
	keyStorePath,
	keySections,
	keyMode,
	keyMinOverlap,
	keyAllowInferred,
	keyExcludePaths,
	keyCachePath,
	keyCacheDisabled,
	keyWatchDebounce,
}

// SettingsService resolves docgen configuration from the config store,
// overlaying stored values onto defaults.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Settings returns the current typed settings. Unset or invalid stored
// values fall back to defaults rather than failing.
func (s *SettingsService) Settings() domain.Settings {
	settings := domain.DefaultSettings()

	settings.Chunking.Size = s.getCount(keyChunkSize, settings.Chunking.Size)
	if _, ok := s.configStore.Get(keyChunkOverlap); ok {
		// Zero disables overlap, so presence matters rather than value.
		settings.Chunking.Overlap = s.configStore.GetInt(keyChunkOverlap)
	}

	settings.Index.MaxSourceFiles = s.getCount(keyMaxSourceFiles, settings.Index.MaxSourceFiles)
	settings.Index.StorePath = s.getString(keyStorePath, settings.Index.StorePath)
	if sections := s.configStore.GetStringSlice(keySections); len(sections) > 0 {
		settings.Index.Sections = sections
	}

	settings.Validation.Mode = s.getMode(settings.Validation.Mode)
	settings.Validation.MinOverlap = s.getCount(keyMinOverlap, settings.Validation.MinOverlap)
	if _, ok := s.configStore.Get(keyAllowInferred); ok {
		allowed := s.configStore.GetBool(keyAllowInferred)
		settings.Validation.AllowInferred = &allowed
	}

	settings.Scan.ExcludePaths = s.configStore.GetStringSlice(keyExcludePaths)
	settings.Cache.Path = s.getString(keyCachePath, settings.Cache.Path)
	settings.Cache.Disabled = s.configStore.GetBool(keyCacheDisabled)
	settings.Watch.DebounceMillis = s.getCount(keyWatchDebounce, settings.Watch.DebounceMillis)

	return settings
}

// Get returns the effective value for a known key: the stored value when
// set, the resolved default otherwise. Unknown keys report false.
func (s *SettingsService) Get(key string) (any, bool) {
	if _, known := settingKinds[key]; !known {
		return nil, false
	}
	if val, ok := s.configStore.Get(key); ok {
		return val, true
	}
	return s.effectiveValue(key), true
}

// Set validates, coerces, and persists one configuration value.
func (s *SettingsService) Set(key string, value any) error {
	kind, known := settingKinds[key]
	if !known {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	coerced, err := coerceSetting(key, kind, value)
	if err != nil {
		return err
	}

	if err := s.configStore.Set(key, coerced); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Entries lists every known key with its current value rendered as text,
// in display order.
func (s *SettingsService) Entries() []driving.SettingEntry {
	entries := make([]driving.SettingEntry, 0, len(settingOrder))
	for _, key := range settingOrder {
		val, _ := s.Get(key)
		entries = append(entries, driving.SettingEntry{
			Key:   key,
			Value: renderSetting(val),
		})
	}
	return entries
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// effectiveValue resolves the default for an unset key against the
// current settings, so interdependent keys (allow_inferred follows the
// mode) report their real policy.
func (s *SettingsService) effectiveValue(key string) any {
	settings := s.Settings()

	switch key {
	case keyChunkSize:
		return settings.Chunking.Size
	case keyChunkOverlap:
		return settings.Chunking.Overlap
	case keyMaxSourceFiles:
		return settings.Index.MaxSourceFiles
	case keyStorePath:
		return settings.Index.StorePath
	case keySections:
		return settings.Index.Sections
	case keyMode:
		return settings.Validation.Mode.String()
	case keyMinOverlap:
		return settings.Validation.MinOverlap
	case keyAllowInferred:
		if settings.Validation.AllowInferred != nil {
			return *settings.Validation.AllowInferred
		}
		return settings.Validation.Mode == domain.ModeBalanced
	case keyExcludePaths:
		return settings.Scan.ExcludePaths
	case keyCachePath:
		return settings.Cache.Path
	case keyCacheDisabled:
		return settings.Cache.Disabled
	case keyWatchDebounce:
		return settings.Watch.DebounceMillis
	default:
		return nil
	}
}

// coerceSetting converts raw input into the stored representation for
// the key, rejecting values that don't fit.
func coerceSetting(key string, kind settingKind, value any) (any, error) {
	switch kind {
	case kindCount:
		n, ok := toInt(value)
		if !ok || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return n, nil

	case kindFlag:
		b, ok := toBool(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return b, nil

	case kindPath:
		str, ok := value.(string)
		if !ok || strings.TrimSpace(str) == "" {
			return nil, fmt.Errorf("%w: %s must be a non-empty path", domain.ErrInvalidInput, key)
		}
		return str, nil

	case kindMode:
		str, _ := value.(string)
		mode := domain.ValidationMode(strings.ToLower(strings.TrimSpace(str)))
		if !mode.IsValid() {
			return nil, fmt.Errorf("%w: validation mode must be one of %s", domain.ErrInvalidInput, modeNames())
		}
		return mode.String(), nil

	case kindSections:
		list, ok := toStringList(value)
		if !ok || len(list) == 0 {
			return nil, fmt.Errorf("%w: %s must name at least one section", domain.ErrInvalidInput, key)
		}
		for _, section := range list {
			if !domain.KnownSection(section) {
				return nil, fmt.Errorf("%w: unknown section %q", domain.ErrInvalidInput, section)
			}
		}
		return list, nil

	case kindPatterns:
		list, ok := toStringList(value)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a list of glob patterns", domain.ErrInvalidInput, key)
		}
		return list, nil

	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// renderSetting turns a stored or effective value into display text.
func renderSetting(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, renderSetting(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func modeNames() string {
	modes := domain.AllValidationModes()
	names := make([]string, len(modes))
	for i, mode := range modes {
		names[i] = mode.String()
	}
	return strings.Join(names, ", ")
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), v == float64(int(v))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	default:
		return false, false
	}
}

func toStringList(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return compactList(v), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return compactList(out), true
	case string:
		return compactList(strings.Split(v, ",")), true
	default:
		return nil, false
	}
}

// compactList trims entries and drops empties.
func compactList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getCount(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMode(defaultVal domain.ValidationMode) domain.ValidationMode {
	val := s.configStore.GetString(keyMode)
	if val == "" {
		return defaultVal
	}
	mode := domain.ValidationMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
