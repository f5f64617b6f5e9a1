package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

func resetIssuesFlags() {
	issuesPlain = false
}

func writeReportFile(t *testing.T, report domain.ValidationReport) string {
	t.Helper()
	data, err := json.Marshal(report)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestIssuesCmd_PlainListing(t *testing.T) {
	services, _, _, _, _ := newMockServices()
	defer setupCLITest(t, services)()
	defer resetIssuesFlags()

	path := writeReportFile(t, domain.ValidationReport{
		ID:           "report-1",
		GeneratedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Root:         "/repo",
		Mode:         domain.ModeStrict,
		SectionCount: 3,
		Issues: []domain.ValidationIssue{
			{Section: "intro", Sentence: "Deploys to the fleet.", MissingTerms: []string{"fleet"}},
			{Section: "features", Sentence: "Supports teleportation.", Detail: "No evidence found."},
		},
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"issues", path, "--plain"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "Report report-1")
	assert.Contains(t, output, "Mode:      strict")
	assert.Contains(t, output, "[intro] Deploys to the fleet.")
	assert.Contains(t, output, "missing: fleet")
	assert.Contains(t, output, "No evidence found.")
	assert.Contains(t, output, "2 issue(s) across 3 section(s).")
}

func TestIssuesCmd_EmptyReport(t *testing.T) {
	services, _, _, _, _ := newMockServices()
	defer setupCLITest(t, services)()
	defer resetIssuesFlags()

	path := writeReportFile(t, domain.ValidationReport{
		ID:           "report-2",
		GeneratedAt:  time.Now().UTC(),
		Mode:         domain.ModeBalanced,
		SectionCount: 5,
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"issues", path, "--plain"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No issues. All 5 section(s) grounded.")
}

func TestIssuesCmd_MissingFile(t *testing.T) {
	services, _, _, _, _ := newMockServices()
	defer setupCLITest(t, services)()
	defer resetIssuesFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"issues", filepath.Join(t.TempDir(), "missing.json"), "--plain"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read report file")
}

func TestIssuesCmd_MalformedFile(t *testing.T) {
	services, _, _, _, _ := newMockServices()
	defer setupCLITest(t, services)()
	defer resetIssuesFlags()

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte("not a report"), 0o600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"issues", path, "--plain"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse report file")
}
