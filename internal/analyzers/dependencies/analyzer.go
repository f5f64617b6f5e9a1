// Package dependencies extracts notable dependencies from the manifest
// files a repository declares them in.
package dependencies

import (
	"context"
	"strings"

	"github.com/Saechaoc/docgen/internal/analyzers/depfile"
	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
	"github.com/Saechaoc/docgen/internal/logger"
)

// Ensure Analyzer implements the interface.
var _ driven.Analyzer = (*Analyzer)(nil)

// headlineCount caps how many packages the signal value names; the full
// list rides in metadata.
const headlineCount = 5

// sourceFiles are the manifests this analyzer reads, one per ecosystem.
var sourceFiles = []string{"requirements.txt", "package.json", "go.mod"}

// Analyzer emits dependencies.<ecosystem> signals.
type Analyzer struct{}

// New creates a new dependency analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Name identifies the analyzer.
func (a *Analyzer) Name() string {
	return "dependencies"
}

// Supports reports whether any known dependency manifest was scanned.
func (a *Analyzer) Supports(manifest *domain.Manifest) bool {
	if manifest == nil {
		return false
	}
	for _, path := range sourceFiles {
		if manifest.FindPath(path) != nil {
			return true
		}
	}
	return false
}

// Analyze parses each present manifest into one signal per ecosystem, in
// a fixed order: python, node, go.
func (a *Analyzer) Analyze(ctx context.Context, manifest *domain.Manifest, repo driven.Repository) ([]domain.Signal, error) {
	var signals []domain.Signal

	if content, ok := a.read(ctx, manifest, repo, "requirements.txt"); ok {
		if specs := depfile.RequirementSpecs(content); len(specs) > 0 {
			signals = append(signals, domain.Signal{
				Name:   "dependencies.python",
				Value:  headline(specs),
				Source: a.Name(),
				Metadata: domain.MetaMap{
					"packages": domain.Strings(specs...),
				},
			})
		}
	}

	if content, ok := a.read(ctx, manifest, repo, "package.json"); ok {
		runtime, dev := depfile.NodeDependencies(content)
		if len(runtime) > 0 || len(dev) > 0 {
			signals = append(signals, domain.Signal{
				Name:   "dependencies.node",
				Value:  headline(append(append([]string{}, runtime...), dev...)),
				Source: a.Name(),
				Metadata: domain.MetaMap{
					"dependencies":    domain.Strings(runtime...),
					"devDependencies": domain.Strings(dev...),
				},
			})
		}
	}

	if content, ok := a.read(ctx, manifest, repo, "go.mod"); ok {
		if modules := depfile.GoModulePaths(content); len(modules) > 0 {
			signals = append(signals, domain.Signal{
				Name:   "dependencies.go",
				Value:  headline(modules),
				Source: a.Name(),
				Metadata: domain.MetaMap{
					"modules": domain.Strings(modules...),
				},
			})
		}
	}

	return signals, nil
}

func (a *Analyzer) read(ctx context.Context, manifest *domain.Manifest, repo driven.Repository, path string) (string, bool) {
	if manifest.FindPath(path) == nil {
		return "", false
	}
	content, err := repo.ReadText(ctx, manifest.Root, path)
	if err != nil {
		logger.Debug("Skipping %s: %v", path, err)
		return "", false
	}
	return content, true
}

// headline joins the first few entries for the signal value.
func headline(items []string) string {
	if len(items) > headlineCount {
		items = items[:headlineCount]
	}
	return strings.Join(items, ", ")
}
