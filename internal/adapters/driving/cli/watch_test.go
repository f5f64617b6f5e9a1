package cli

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func TestSkipWatchDir(t *testing.T) {
	assert.True(t, skipWatchDir(".git"))
	assert.True(t, skipWatchDir(".docgen"))
	assert.True(t, skipWatchDir(".venv"))
	assert.True(t, skipWatchDir("node_modules"))
	assert.True(t, skipWatchDir("vendor"))
	assert.True(t, skipWatchDir("__pycache__"))

	assert.False(t, skipWatchDir("src"))
	assert.False(t, skipWatchDir("docs"))
	assert.False(t, skipWatchDir("internal"))
}

func TestRelevantChange_FiltersOps(t *testing.T) {
	root := "/repo"

	write := fsnotify.Event{Name: "/repo/main.py", Op: fsnotify.Write}
	assert.True(t, relevantChange(root, write))

	create := fsnotify.Event{Name: "/repo/docs/new.md", Op: fsnotify.Create}
	assert.True(t, relevantChange(root, create))

	remove := fsnotify.Event{Name: "/repo/old.py", Op: fsnotify.Remove}
	assert.True(t, relevantChange(root, remove))

	chmod := fsnotify.Event{Name: "/repo/main.py", Op: fsnotify.Chmod}
	assert.False(t, relevantChange(root, chmod))
}

func TestRelevantChange_IgnoresSkippedTrees(t *testing.T) {
	root := "/repo"

	// The store itself writes under .docgen; reacting to that would
	// loop forever.
	store := fsnotify.Event{Name: "/repo/.docgen/embeddings.json", Op: fsnotify.Write}
	assert.False(t, relevantChange(root, store))

	deps := fsnotify.Event{Name: "/repo/node_modules/pkg/index.js", Op: fsnotify.Write}
	assert.False(t, relevantChange(root, deps))

	git := fsnotify.Event{Name: "/repo/.git/HEAD", Op: fsnotify.Write}
	assert.False(t, relevantChange(root, git))

	src := fsnotify.Event{Name: "/repo/src/app.py", Op: fsnotify.Write}
	assert.True(t, relevantChange(root, src))
}

func TestWatchCmd_Registered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "watch [path]" {
			found = true
			break
		}
	}
	assert.True(t, found, "watch command should be registered")
}
