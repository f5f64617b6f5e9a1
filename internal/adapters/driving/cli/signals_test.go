package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

func resetSignalsFlags() {
	signalsJSON = false
}

func TestSignalsCmd_PrintsTable(t *testing.T) {
	services, _, _, collector, _ := newMockServices()
	defer setupCLITest(t, services)()
	defer resetSignalsFlags()

	collector.signals = []domain.Signal{
		{Name: "language.primary", Value: "Python", Source: "language"},
		{Name: "build.commands", Value: "", Source: "build"},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"signals", t.TempDir()})

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "language.primary")
	assert.Contains(t, output, "Python")
	assert.Contains(t, output, "build.commands")
	assert.Contains(t, output, "2 signal(s).")
}

func TestSignalsCmd_JSONIncludesMetadata(t *testing.T) {
	services, _, _, collector, _ := newMockServices()
	defer setupCLITest(t, services)()
	defer resetSignalsFlags()

	collector.signals = []domain.Signal{
		{
			Name:   "language.primary",
			Value:  "Python",
			Source: "language",
			Metadata: domain.MetaMap{
				"files": domain.Num(12),
			},
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"signals", t.TempDir(), "--json"})

	err := rootCmd.Execute()

	require.NoError(t, err)

	var out []struct {
		Name     string         `json:"name"`
		Value    string         `json:"value"`
		Source   string         `json:"source"`
		Metadata map[string]any `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "language.primary", out[0].Name)
	assert.Equal(t, "Python", out[0].Value)
	assert.Equal(t, float64(12), out[0].Metadata["files"])
}

func TestSignalsCmd_EmptyRepository(t *testing.T) {
	services, _, _, _, _ := newMockServices()
	defer setupCLITest(t, services)()
	defer resetSignalsFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"signals", t.TempDir()})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No signals detected.")
}

func TestSignalsCmd_CollectionFailure(t *testing.T) {
	services, _, _, collector, _ := newMockServices()
	defer setupCLITest(t, services)()
	defer resetSignalsFlags()

	collector.err = errors.New("walk failed")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"signals", t.TempDir()})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "collect signals")
}
