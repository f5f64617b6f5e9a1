package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driving"
)

// MockContextBuilder implements driving.ContextBuilder for CLI tests.
type MockContextBuilder struct {
	result   *driving.ContextResult
	err      error
	root     string
	sections []string
	calls    int
}

func (m *MockContextBuilder) BuildContexts(_ context.Context, root string, sections []string) (*driving.ContextResult, error) {
	m.calls++
	m.root = root
	m.sections = sections
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// MockReadmeValidator implements driving.ReadmeValidator for CLI tests.
type MockReadmeValidator struct {
	issues []domain.ValidationIssue
	req    driving.ValidationRequest
	calls  int
}

func (m *MockReadmeValidator) Validate(req driving.ValidationRequest) []domain.ValidationIssue {
	m.calls++
	m.req = req
	return m.issues
}

// MockSignalCollector implements driving.SignalCollector for CLI tests.
type MockSignalCollector struct {
	signals []domain.Signal
	err     error
	root    string
}

func (m *MockSignalCollector) Collect(_ context.Context, root string) ([]domain.Signal, error) {
	m.root = root
	if m.err != nil {
		return nil, m.err
	}
	return m.signals, nil
}

func (m *MockSignalCollector) CollectFromManifest(_ context.Context, _ *domain.Manifest) ([]domain.Signal, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.signals, nil
}

// MockSettingsService implements driving.SettingsService for CLI tests.
type MockSettingsService struct {
	settings domain.Settings
	entries  []driving.SettingEntry
	values   map[string]any
	path     string
	setKey   string
	setValue any
	setErr   error
}

func (m *MockSettingsService) Settings() domain.Settings { return m.settings }

func (m *MockSettingsService) Get(key string) (any, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m *MockSettingsService) Set(key string, value any) error {
	m.setKey = key
	m.setValue = value
	return m.setErr
}

func (m *MockSettingsService) Entries() []driving.SettingEntry { return m.entries }

func (m *MockSettingsService) Path() string { return m.path }

// newMockServices builds a service bundle with benign defaults.
func newMockServices() (*Services, *MockContextBuilder, *MockReadmeValidator, *MockSignalCollector, *MockSettingsService) {
	contexts := &MockContextBuilder{result: &driving.ContextResult{Contexts: map[string][]string{}}}
	validator := &MockReadmeValidator{}
	signals := &MockSignalCollector{}
	settings := &MockSettingsService{settings: domain.DefaultSettings()}

	services := &Services{
		Contexts:  contexts,
		Validator: validator,
		Signals:   signals,
		Settings:  settings,
	}
	return services, contexts, validator, signals, settings
}

// setupCLITest installs a factory returning the given services and
// returns a restore func for use with defer.
func setupCLITest(t *testing.T, services *Services) func() {
	t.Helper()

	originalFactory := serviceFactory
	serviceFactory = func(_ string, _ ServiceOverrides) (*Services, error) {
		return services, nil
	}

	return func() {
		serviceFactory = originalFactory
		rootCmd.SetArgs(nil)
	}
}

func TestResolveRoot_DefaultsToCurrentDirectory(t *testing.T) {
	root, err := resolveRoot(nil, 0)

	require.NoError(t, err)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, root)
}

func TestResolveRoot_ResolvesRelativePath(t *testing.T) {
	dir := t.TempDir()

	root, err := resolveRoot([]string{dir}, 0)

	require.NoError(t, err)
	assert.Equal(t, dir, root)
	assert.True(t, filepath.IsAbs(root))
}

func TestResolveRoot_MissingPath(t *testing.T) {
	_, err := resolveRoot([]string{filepath.Join(t.TempDir(), "missing")}, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open repository")
}

func TestResolveRoot_FileIsNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := resolveRoot([]string{file}, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestResolveRoot_SkipsLeadingArgs(t *testing.T) {
	dir := t.TempDir()

	root, err := resolveRoot([]string{"sections.json", dir}, 1)

	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestBuildServices_NoFactoryConfigured(t *testing.T) {
	originalFactory := serviceFactory
	serviceFactory = nil
	defer func() { serviceFactory = originalFactory }()

	_, err := buildServices(t.TempDir(), ServiceOverrides{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}

func TestBuildServices_FoldsInConfigFlag(t *testing.T) {
	originalFactory := serviceFactory
	originalConfig := configFlag
	defer func() {
		serviceFactory = originalFactory
		configFlag = originalConfig
	}()

	var seen ServiceOverrides
	serviceFactory = func(_ string, overrides ServiceOverrides) (*Services, error) {
		seen = overrides
		return &Services{}, nil
	}

	configFlag = "/etc/docgen.toml"
	_, err := buildServices(t.TempDir(), ServiceOverrides{StorePath: "alt.json"})

	require.NoError(t, err)
	assert.Equal(t, "/etc/docgen.toml", seen.ConfigPath)
	assert.Equal(t, "alt.json", seen.StorePath)
}

func TestBuildServices_ExplicitConfigWins(t *testing.T) {
	originalFactory := serviceFactory
	originalConfig := configFlag
	defer func() {
		serviceFactory = originalFactory
		configFlag = originalConfig
	}()

	var seen ServiceOverrides
	serviceFactory = func(_ string, overrides ServiceOverrides) (*Services, error) {
		seen = overrides
		return &Services{}, nil
	}

	configFlag = "/etc/docgen.toml"
	_, err := buildServices(t.TempDir(), ServiceOverrides{ConfigPath: "/tmp/other.toml"})

	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.toml", seen.ConfigPath)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	// Empty input keeps the current value.
	SetVersion("")
	assert.Equal(t, "1.2.3", version)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "lon...", truncate("longer", 3))
}
