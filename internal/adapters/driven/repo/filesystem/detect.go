package filesystem

import (
	"path"
	"strings"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

// languageExts maps file extensions to language names.
var languageExts = map[string]string{
	".py":    "Python",
	".go":    "Go",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".mjs":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".rb":    "Ruby",
	".rs":    "Rust",
	".java":  "Java",
	".kt":    "Kotlin",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".cxx":   "C++",
	".hpp":   "C++",
	".cs":    "C#",
	".php":   "PHP",
	".swift": "Swift",
	".scala": "Scala",
	".sh":    "Shell",
	".bash":  "Shell",
	".pl":    "Perl",
	".ex":    "Elixir",
	".exs":   "Elixir",
	".erl":   "Erlang",
	".hs":    "Haskell",
	".lua":   "Lua",
	".r":     "R",
	".dart":  "Dart",
	".zig":   "Zig",
}

// buildFileNames are exact base names classified as build tooling.
var buildFileNames = map[string]struct{}{
	"makefile": {}, "cmakelists.txt": {}, "justfile": {},
	"setup.py": {}, "setup.cfg": {}, "pyproject.toml": {}, "tox.ini": {},
	"pipfile": {}, "pipfile.lock": {}, "poetry.lock": {},
	"package.json": {}, "package-lock.json": {}, "yarn.lock": {}, "pnpm-lock.yaml": {},
	"go.mod": {}, "go.sum": {},
	"cargo.toml": {}, "cargo.lock": {},
	"pom.xml": {}, "build.gradle": {}, "build.gradle.kts": {},
	"gemfile": {}, "gemfile.lock": {}, "rakefile": {},
}

// licenseNames are base names (extension stripped) classified as licenses.
var licenseNames = map[string]struct{}{
	"license": {}, "licence": {}, "copying": {}, "notice": {},
}

// infraSegments are directory names that mark deployment trees.
var infraSegments = map[string]struct{}{
	"infra": {}, "deploy": {}, "deployment": {}, "k8s": {},
	"kubernetes": {}, "terraform": {}, "helm": {}, "ansible": {},
}

// testSegments are directory names that mark test trees.
var testSegments = map[string]struct{}{
	"test": {}, "tests": {},
}

// exampleSegments are directory names that mark example trees.
var exampleSegments = map[string]struct{}{
	"example": {}, "examples": {}, "samples": {},
}

// docsExts are prose extensions.
var docsExts = map[string]struct{}{
	".md": {}, ".markdown": {}, ".rst": {}, ".adoc": {}, ".txt": {},
}

// configExts are configuration extensions.
var configExts = map[string]struct{}{
	".yaml": {}, ".yml": {}, ".toml": {}, ".ini": {}, ".cfg": {},
	".conf": {}, ".properties": {}, ".json": {}, ".env": {},
}

// detectLanguage returns the language for a path by extension, or "".
func detectLanguage(rel string) string {
	return languageExts[strings.ToLower(path.Ext(rel))]
}

// detectRole classifies a file by name, extension, and directory. The
// checks run most-specific first so infra yaml beats the config extension
// and build manifests beat plain json.
func detectRole(rel string) domain.FileRole {
	base := strings.ToLower(path.Base(rel))
	ext := strings.ToLower(path.Ext(rel))
	stem := strings.TrimSuffix(base, ext)

	switch {
	case isLicense(stem, base):
		return domain.RoleLicense
	case isBuildFile(base):
		return domain.RoleBuild
	case isInfra(rel, base, ext):
		return domain.RoleInfra
	case isTest(rel, base):
		return domain.RoleTest
	case hasSegment(rel, exampleSegments):
		return domain.RoleExamples
	case isDocs(rel, ext):
		return domain.RoleDocs
	case isConfigExt(ext):
		return domain.RoleConfig
	case detectLanguage(rel) != "":
		return domain.RoleSource
	default:
		return domain.RoleOther
	}
}

func isLicense(stem, base string) bool {
	if _, ok := licenseNames[stem]; ok {
		return true
	}
	_, ok := licenseNames[base]
	return ok
}

func isBuildFile(base string) bool {
	if _, ok := buildFileNames[base]; ok {
		return true
	}
	// requirements.txt, requirements-dev.txt, ...
	return strings.HasPrefix(base, "requirements") && strings.HasSuffix(base, ".txt")
}

func isInfra(rel, base, ext string) bool {
	switch {
	case strings.HasPrefix(base, "dockerfile"),
		strings.HasPrefix(base, "docker-compose"),
		base == "jenkinsfile",
		base == "procfile",
		base == "vagrantfile",
		ext == ".tf",
		ext == ".tfvars":
		return true
	}
	return hasSegment(rel, infraSegments)
}

func isTest(rel, base string) bool {
	if hasSegment(rel, testSegments) {
		return true
	}
	return strings.HasPrefix(base, "test_") ||
		strings.Contains(base, "_test.") ||
		strings.Contains(base, ".test.") ||
		strings.Contains(base, ".spec.")
}

func isDocs(rel, ext string) bool {
	if _, ok := docsExts[ext]; ok {
		return true
	}
	return hasSegment(rel, map[string]struct{}{"docs": {}, "doc": {}})
}

func isConfigExt(ext string) bool {
	_, ok := configExts[ext]
	return ok
}

// hasSegment reports whether any directory segment of rel, lowercased,
// appears in names. The final path element is the file itself and is not
// considered.
func hasSegment(rel string, names map[string]struct{}) bool {
	segments := strings.Split(rel, "/")
	for _, segment := range segments[:len(segments)-1] {
		if _, ok := names[strings.ToLower(segment)]; ok {
			return true
		}
	}
	return false
}
