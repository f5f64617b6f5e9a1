package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driving"
)

func resetConfigFlags() {
	configListJSON = false
}

func TestConfigCmd_ListsEntries(t *testing.T) {
	services, _, _, _, settings := newMockServices()
	defer setupCLITest(t, services)()
	defer resetConfigFlags()

	settings.path = "/repo/.docgen.toml"
	settings.entries = []driving.SettingEntry{
		{Key: "chunking.size", Value: "350"},
		{Key: "validation.mode", Value: "balanced"},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "list", t.TempDir()})

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "Configuration (/repo/.docgen.toml)")
	assert.Contains(t, output, "chunking.size")
	assert.Contains(t, output, "350")
	assert.Contains(t, output, "validation.mode")
	assert.Contains(t, output, "balanced")
}

func TestConfigCmd_ListJSON(t *testing.T) {
	services, _, _, _, settings := newMockServices()
	defer setupCLITest(t, services)()
	defer resetConfigFlags()

	settings.entries = []driving.SettingEntry{
		{Key: "chunking.size", Value: "350"},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "list", t.TempDir(), "--json"})

	err := rootCmd.Execute()

	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "350", out["chunking.size"])
}

func TestConfigCmd_GetKnownKey(t *testing.T) {
	services, _, _, _, settings := newMockServices()
	defer setupCLITest(t, services)()
	defer resetConfigFlags()

	settings.values = map[string]any{"validation.mode": "strict"}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "get", "validation.mode", t.TempDir()})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "strict")
}

func TestConfigCmd_GetRendersLists(t *testing.T) {
	services, _, _, _, settings := newMockServices()
	defer setupCLITest(t, services)()
	defer resetConfigFlags()

	settings.values = map[string]any{"index.sections": []string{"intro", "features"}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "get", "index.sections", t.TempDir()})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "intro, features")
}

func TestConfigCmd_GetUnknownKey(t *testing.T) {
	services, _, _, _, _ := newMockServices()
	defer setupCLITest(t, services)()
	defer resetConfigFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "get", "no.such.key", t.TempDir()})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestConfigCmd_SetStoresValue(t *testing.T) {
	services, _, _, _, settings := newMockServices()
	defer setupCLITest(t, services)()
	defer resetConfigFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "validation.mode", "strict", t.TempDir()})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "validation.mode", settings.setKey)
	assert.Equal(t, "strict", settings.setValue)
	assert.Contains(t, buf.String(), "Set validation.mode = strict")
}

func TestConfigCmd_SetPropagatesServiceError(t *testing.T) {
	services, _, _, _, settings := newMockServices()
	defer setupCLITest(t, services)()
	defer resetConfigFlags()

	settings.setErr = fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, "bogus.key")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "set", "bogus.key", "x", t.TempDir()})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
