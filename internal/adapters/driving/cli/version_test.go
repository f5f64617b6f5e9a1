package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runVersionCmd executes the version command and returns its output.
func runVersionCmd(t *testing.T) string {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

// setBuildInfo stamps version and commit for one test.
func setBuildInfo(t *testing.T, v, c string) {
	t.Helper()

	origVersion, origCommit := version, commit
	t.Cleanup(func() {
		version = origVersion
		commit = origCommit
	})
	version = v
	commit = c
}

func TestVersionCmd_Registered(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Print the docgen version", versionCmd.Short)
}

func TestVersionCmd_DevBuild(t *testing.T) {
	setBuildInfo(t, "dev", "")

	out := runVersionCmd(t)

	assert.Equal(t, "docgen version dev\n", out)
}

func TestVersionCmd_StampedVersion(t *testing.T) {
	setBuildInfo(t, "1.4.0", "")

	out := runVersionCmd(t)

	assert.Contains(t, out, "docgen version 1.4.0")
	assert.NotContains(t, out, "commit")
}

func TestVersionCmd_StampedCommit(t *testing.T) {
	setBuildInfo(t, "1.4.0", "3f9c2ab")

	out := runVersionCmd(t)

	assert.Equal(t, "docgen version 1.4.0 (commit 3f9c2ab)\n", out)
}

func TestSetCommit(t *testing.T) {
	setBuildInfo(t, "dev", "")

	SetCommit("0a1b2c3")

	assert.Equal(t, "0a1b2c3", commit)
}
