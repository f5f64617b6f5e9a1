// Package language detects the languages a repository is written in and
// the frameworks its dependency manifests point at.
package language

import (
	"context"
	"sort"
	"strings"

	"github.com/Saechaoc/docgen/internal/analyzers/depfile"
	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
	"github.com/Saechaoc/docgen/internal/logger"
)

// Ensure Analyzer implements the interface.
var _ driven.Analyzer = (*Analyzer)(nil)

// Analyzer emits language.* signals: the primary language, the full
// ordered list, and framework hints per language.
type Analyzer struct{}

// New creates a new language analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Name identifies the analyzer.
func (a *Analyzer) Name() string {
	return "language"
}

// Supports reports whether the analyzer applies. Any non-empty manifest
// qualifies; repositories without recognised languages simply produce no
// signals.
func (a *Analyzer) Supports(manifest *domain.Manifest) bool {
	return manifest != nil && len(manifest.Files) > 0
}

// Analyze counts file languages and probes dependency manifests for
// framework hints.
func (a *Analyzer) Analyze(ctx context.Context, manifest *domain.Manifest, repo driven.Repository) ([]domain.Signal, error) {
	counts := make(map[string]int)
	var ordered []string
	for _, file := range manifest.Files {
		if file.Language == "" {
			continue
		}
		if counts[file.Language] == 0 {
			ordered = append(ordered, file.Language)
		}
		counts[file.Language]++
	}
	if len(ordered) == 0 {
		return nil, nil
	}

	// Most common first; ties keep first-seen order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return counts[ordered[i]] > counts[ordered[j]]
	})
	primary := ordered[0]

	countsMeta := make(domain.MetaMap, len(counts))
	for lang, n := range counts {
		countsMeta[lang] = domain.Num(float64(n))
	}

	signals := []domain.Signal{
		{
			Name:   "language.primary",
			Value:  primary,
			Source: a.Name(),
			Metadata: domain.MetaMap{
				"counts": domain.Nested(countsMeta),
			},
		},
		{
			Name:   "language.all",
			Value:  strings.Join(ordered, ", "),
			Source: a.Name(),
			Metadata: domain.MetaMap{
				"languages": domain.Strings(ordered...),
				"counts":    domain.Nested(countsMeta),
			},
		},
	}

	frameworks := a.detectFrameworks(ctx, manifest, repo)
	if len(frameworks) > 0 {
		var parts []string
		combined := make(domain.MetaMap, len(frameworks))
		for _, set := range frameworks {
			signals = append(signals, domain.Signal{
				Name:   "language.frameworks." + frameworkKey(set.Language),
				Value:  strings.Join(set.Items, ", "),
				Source: a.Name(),
				Metadata: domain.MetaMap{
					"language":   domain.Str(set.Language),
					"frameworks": domain.Strings(set.Items...),
				},
			})
			parts = append(parts, set.Language+": "+strings.Join(set.Items, ", "))
			combined[set.Language] = domain.Strings(set.Items...)
		}
		signals = append(signals, domain.Signal{
			Name:   "language.frameworks",
			Value:  strings.Join(parts, ", "),
			Source: a.Name(),
			Metadata: domain.MetaMap{
				"frameworks": domain.Nested(combined),
			},
		})
	}

	return signals, nil
}

// frameworkSet pairs a language with its detected frameworks.
type frameworkSet struct {
	Language string
	Items    []string
}

// detectFrameworks probes the dependency manifests present in the scan.
// Unreadable files count as absent.
func (a *Analyzer) detectFrameworks(ctx context.Context, manifest *domain.Manifest, repo driven.Repository) []frameworkSet {
	var sets []frameworkSet

	if items := pythonFrameworks(a.pythonPackages(ctx, manifest, repo)); len(items) > 0 {
		sets = append(sets, frameworkSet{Language: "Python", Items: items})
	}
	if items := nodeFrameworks(a.nodePackages(ctx, manifest, repo)); len(items) > 0 {
		sets = append(sets, frameworkSet{Language: "JavaScript", Items: items})
	}
	if items := javaFrameworks(a.javaDependencies(ctx, manifest, repo)); len(items) > 0 {
		sets = append(sets, frameworkSet{Language: "Java", Items: items})
	}
	if items := goFrameworks(depfile.GoModulePaths(a.readManifestFile(ctx, manifest, repo, "go.mod"))); len(items) > 0 {
		sets = append(sets, frameworkSet{Language: "Go", Items: items})
	}

	return sets
}

func (a *Analyzer) pythonPackages(ctx context.Context, manifest *domain.Manifest, repo driven.Repository) []string {
	seen := make(map[string]struct{})
	for _, name := range depfile.RequirementNames(a.readManifestFile(ctx, manifest, repo, "requirements.txt")) {
		seen[strings.ToLower(name)] = struct{}{}
	}
	for _, name := range depfile.PyprojectPackages(a.readManifestFile(ctx, manifest, repo, "pyproject.toml")) {
		seen[strings.ToLower(name)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	return out
}

func (a *Analyzer) nodePackages(ctx context.Context, manifest *domain.Manifest, repo driven.Repository) []string {
	runtime, dev := depfile.NodeDependencies(a.readManifestFile(ctx, manifest, repo, "package.json"))
	return append(runtime, dev...)
}

func (a *Analyzer) javaDependencies(ctx context.Context, manifest *domain.Manifest, repo driven.Repository) []string {
	return depfile.JavaDependencies(
		a.readManifestFile(ctx, manifest, repo, "pom.xml"),
		a.readManifestFile(ctx, manifest, repo, "build.gradle"),
		a.readManifestFile(ctx, manifest, repo, "build.gradle.kts"),
	)
}

// readManifestFile returns the content of a root-level file, or empty
// when the scan never saw it or it cannot be read.
func (a *Analyzer) readManifestFile(ctx context.Context, manifest *domain.Manifest, repo driven.Repository, path string) string {
	if manifest.FindPath(path) == nil {
		return ""
	}
	text, err := repo.ReadText(ctx, manifest.Root, path)
	if err != nil {
		logger.Debug("Skipping %s: %v", path, err)
		return ""
	}
	return text
}

// pythonFrameworkLabels maps lowercase package names to display labels.
var pythonFrameworkLabels = []struct {
	pkg   string
	label string
}{
	{"fastapi", "FastAPI"},
	{"django", "Django"},
	{"flask", "Flask"},
}

func pythonFrameworks(packages []string) []string {
	present := make(map[string]struct{}, len(packages))
	for _, pkg := range packages {
		present[strings.ToLower(pkg)] = struct{}{}
	}
	var out []string
	for _, entry := range pythonFrameworkLabels {
		if _, ok := present[entry.pkg]; ok {
			out = append(out, entry.label)
		}
	}
	return out
}

var nodeFrameworkLabels = []struct {
	pkg   string
	label string
}{
	{"express", "Express"},
	{"next", "Next.js"},
	{"react", "React"},
}

func nodeFrameworks(packages []string) []string {
	present := make(map[string]struct{}, len(packages))
	for _, pkg := range packages {
		present[strings.ToLower(pkg)] = struct{}{}
	}
	var out []string
	for _, entry := range nodeFrameworkLabels {
		if _, ok := present[entry.pkg]; ok {
			out = append(out, entry.label)
		}
	}
	return out
}

func javaFrameworks(coordinates []string) []string {
	for _, coordinate := range coordinates {
		lower := strings.ToLower(coordinate)
		if strings.Contains(lower, "spring-boot") || strings.Contains(lower, "springframework") {
			return []string{"Spring Boot"}
		}
	}
	return nil
}

// goFrameworkLabels maps module path prefixes to display labels. Prefix
// matching absorbs major-version suffixes (echo/v4, chi/v5).
var goFrameworkLabels = []struct {
	prefix string
	label  string
}{
	{"github.com/gin-gonic/gin", "Gin"},
	{"github.com/labstack/echo", "Echo"},
	{"github.com/go-chi/chi", "Chi"},
	{"github.com/gofiber/fiber", "Fiber"},
	{"github.com/spf13/cobra", "Cobra"},
}

func goFrameworks(modules []string) []string {
	var out []string
	for _, entry := range goFrameworkLabels {
		for _, module := range modules {
			if strings.HasPrefix(module, entry.prefix) {
				out = append(out, entry.label)
				break
			}
		}
	}
	return out
}

func frameworkKey(language string) string {
	return strings.ReplaceAll(strings.ToLower(language), " ", "_")
}
