package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	target := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, []byte(content), 0644))
}

func seedRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	write(t, root, "src/app.py", "print('hi')\n")
	write(t, root, "tests/test_app.py", "def test_ok():\n    assert True\n")
	write(t, root, "docs/overview.md", "# Overview\n")
	write(t, root, "config/settings.yaml", "debug: true\n")
	write(t, root, "infra/Dockerfile", "FROM python:3.11-slim\n")
	write(t, root, ".venv/should_ignore.py", "print('nope')\n")
	return root
}

func manifestPaths(m *domain.Manifest) map[string]domain.FileMeta {
	paths := make(map[string]domain.FileMeta, len(m.Files))
	for _, f := range m.Files {
		paths[f.Path] = f
	}
	return paths
}

func TestRepository_Scan_RolesAndLanguage(t *testing.T) {
	root := seedRepo(t)

	manifest, err := New().Scan(context.Background(), root)
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(manifest.Root))

	paths := manifestPaths(manifest)

	require.Contains(t, paths, "src/app.py")
	assert.Equal(t, "Python", paths["src/app.py"].Language)
	assert.Equal(t, domain.RoleSource, paths["src/app.py"].Role)

	assert.Equal(t, domain.RoleTest, paths["tests/test_app.py"].Role)
	assert.Equal(t, domain.RoleDocs, paths["docs/overview.md"].Role)
	assert.Equal(t, domain.RoleConfig, paths["config/settings.yaml"].Role)
	assert.Equal(t, domain.RoleInfra, paths["infra/Dockerfile"].Role)

	assert.NotContains(t, paths, ".venv/should_ignore.py")

	sum := sha256.Sum256([]byte("print('hi')\n"))
	assert.Equal(t, hex.EncodeToString(sum[:]), paths["src/app.py"].Hash)
	assert.Equal(t, int64(len("print('hi')\n")), paths["src/app.py"].Size)
}

func TestRepository_Scan_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := New().Scan(context.Background(), missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrScanFailed))
}

func TestRepository_Scan_RespectsGitignore(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".gitignore", "build/\n*.log\n")
	write(t, root, "src/main.py", "print('ok')\n")
	write(t, root, "build/artifact.txt", "built\n")
	write(t, root, "notes.log", "ignore me\n")

	manifest, err := New().Scan(context.Background(), root)
	require.NoError(t, err)

	paths := manifestPaths(manifest)
	assert.Contains(t, paths, "src/main.py")
	assert.NotContains(t, paths, "build/artifact.txt")
	assert.NotContains(t, paths, "notes.log")
}

func TestRepository_Scan_RespectsExcludes(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/main.py", "print('ok')\n")
	write(t, root, "data/ignored.txt", "secret\n")
	write(t, root, "report.generated", "generated output\n")

	repo := New(WithExcludes([]string{"data/", "*.generated"}))
	manifest, err := repo.Scan(context.Background(), root)
	require.NoError(t, err)

	paths := manifestPaths(manifest)
	assert.Contains(t, paths, "src/main.py")
	assert.NotContains(t, paths, "data/ignored.txt")
	assert.NotContains(t, paths, "report.generated")
}

func TestRepository_Scan_SkipsBinaries(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/main.go", "package main\n")
	write(t, root, "logo.png", "not really an image")
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.bin"), []byte{0x00, 0x01, 0x02}, 0644))

	manifest, err := New().Scan(context.Background(), root)
	require.NoError(t, err)

	paths := manifestPaths(manifest)
	assert.Contains(t, paths, "src/main.go")
	assert.NotContains(t, paths, "logo.png")
	assert.NotContains(t, paths, "blob.bin")
}

func TestRepository_Scan_OversizeFilesKeptUnhashed(t *testing.T) {
	root := t.TempDir()
	write(t, root, "big.py", "x = 1\nx = 2\nx = 3\n")

	repo := New(WithMaxHashSize(4))
	manifest, err := repo.Scan(context.Background(), root)
	require.NoError(t, err)

	paths := manifestPaths(manifest)
	require.Contains(t, paths, "big.py")
	assert.Empty(t, paths["big.py"].Hash)
	assert.Equal(t, domain.RoleSource, paths["big.py"].Role)
}

func TestRepository_Scan_WritesHashCache(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/main.py", "print('ok')\n")

	_, err := New().Scan(context.Background(), root)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, ".docgen", "manifest_cache.json"))
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, float64(1), payload["version"])

	files, ok := payload["files"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, files, "src/main.py")
}

func TestRepository_Scan_ReusesCachedHash(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/main.py", "print('ok')\n")

	fi, err := os.Stat(filepath.Join(root, "src", "main.py"))
	require.NoError(t, err)

	// Seed a cache entry matching size and mtime but carrying a marker
	// hash: a reused entry surfaces the marker in the manifest.
	cache := cacheFile{
		Version: cacheVersion,
		Files: map[string]cachedFile{
			"src/main.py": {Size: fi.Size(), MTime: fi.ModTime().UnixNano(), Hash: "cached-marker"},
		},
	}
	data, err := json.Marshal(cache)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".docgen"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".docgen", "manifest_cache.json"), data, 0600))

	manifest, err := New().Scan(context.Background(), root)
	require.NoError(t, err)

	paths := manifestPaths(manifest)
	assert.Equal(t, "cached-marker", paths["src/main.py"].Hash)
}

func TestRepository_Scan_IgnoresCorruptCache(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/main.py", "print('ok')\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".docgen"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".docgen", "manifest_cache.json"), []byte("{broken"), 0600))

	manifest, err := New().Scan(context.Background(), root)
	require.NoError(t, err)

	paths := manifestPaths(manifest)
	sum := sha256.Sum256([]byte("print('ok')\n"))
	assert.Equal(t, hex.EncodeToString(sum[:]), paths["src/main.py"].Hash)
}

func TestRepository_Scan_SkipsHiddenFiles(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/main.py", "print('ok')\n")
	write(t, root, ".docgen.toml", "[index]\n")
	write(t, root, ".github/workflows/ci.yml", "on: push\n")

	manifest, err := New().Scan(context.Background(), root)
	require.NoError(t, err)

	paths := manifestPaths(manifest)
	assert.Contains(t, paths, "src/main.py")
	assert.NotContains(t, paths, ".docgen.toml")
	assert.NotContains(t, paths, ".github/workflows/ci.yml")
}

func TestRepository_ReadText(t *testing.T) {
	root := t.TempDir()
	write(t, root, "docs/guide.md", "# Guide\n")

	repo := New()
	text, err := repo.ReadText(context.Background(), root, "docs/guide.md")
	require.NoError(t, err)
	assert.Equal(t, "# Guide\n", text)
}

func TestRepository_ReadText_Missing(t *testing.T) {
	repo := New()
	_, err := repo.ReadText(context.Background(), t.TempDir(), "absent.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRepository_ReadText_RejectsEscape(t *testing.T) {
	repo := New()
	_, err := repo.ReadText(context.Background(), t.TempDir(), "../outside.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRepository_ReadText_RejectsBinary(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob"), []byte{0x00, 0x01}, 0644))

	repo := New()
	_, err := repo.ReadText(context.Background(), root, "blob")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDetectRole(t *testing.T) {
	tests := []struct {
		path string
		role domain.FileRole
	}{
		{"LICENSE", domain.RoleLicense},
		{"LICENSE.md", domain.RoleLicense},
		{"COPYING", domain.RoleLicense},
		{"Makefile", domain.RoleBuild},
		{"go.mod", domain.RoleBuild},
		{"package.json", domain.RoleBuild},
		{"requirements-dev.txt", domain.RoleBuild},
		{"Dockerfile", domain.RoleInfra},
		{"docker-compose.yaml", domain.RoleInfra},
		{"deploy/app.yaml", domain.RoleInfra},
		{"main.tf", domain.RoleInfra},
		{"tests/test_app.py", domain.RoleTest},
		{"pkg/server_test.go", domain.RoleTest},
		{"app.spec.ts", domain.RoleTest},
		{"examples/demo.py", domain.RoleExamples},
		{"README.md", domain.RoleDocs},
		{"docs/conf.py", domain.RoleDocs},
		{"config/settings.yaml", domain.RoleConfig},
		{"tsconfig.json", domain.RoleConfig},
		{"src/app.py", domain.RoleSource},
		{"cmd/main.go", domain.RoleSource},
		{"data.bin", domain.RoleOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.role, detectRole(tt.path))
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "Python", detectLanguage("src/app.py"))
	assert.Equal(t, "Go", detectLanguage("cmd/main.go"))
	assert.Equal(t, "TypeScript", detectLanguage("web/app.tsx"))
	assert.Empty(t, detectLanguage("README"))
}
