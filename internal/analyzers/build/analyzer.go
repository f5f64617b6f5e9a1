// Package build detects build systems and the developer workflows they
// imply, so quickstart and build sections can cite real commands.
package build

import (
	"context"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"github.com/Saechaoc/docgen/internal/analyzers/depfile"
	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
	"github.com/Saechaoc/docgen/internal/logger"
)

// Ensure Analyzer implements the interface.
var _ driven.Analyzer = (*Analyzer)(nil)

// pythonBuildFiles mark a python project; their presence picks the
// install command.
var pythonBuildFiles = []string{"pyproject.toml", "setup.py", "setup.cfg", "requirements.txt"}

// nodeScriptOrder is the order interesting package.json scripts are
// rendered in.
var nodeScriptOrder = []string{"build", "test", "start"}

// maxMakeCommands caps how many make targets become commands; the full
// target list rides in metadata.
const maxMakeCommands = 5

// Analyzer emits build.<kind> signals with detected files and suggested
// commands, falling back to build.generic when nothing is recognised.
type Analyzer struct{}

// New creates a new build analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Name identifies the analyzer.
func (a *Analyzer) Name() string {
	return "build"
}

// Supports reports whether the analyzer applies. It always does for a
// non-empty manifest; the generic fallback covers unknown build systems.
func (a *Analyzer) Supports(manifest *domain.Manifest) bool {
	return manifest != nil && len(manifest.Files) > 0
}

// Analyze inspects the manifest for build tooling in a fixed order:
// python, node, go, make.
func (a *Analyzer) Analyze(ctx context.Context, manifest *domain.Manifest, repo driven.Repository) ([]domain.Signal, error) {
	var signals []domain.Signal

	if signal, ok := a.pythonSignal(manifest); ok {
		signals = append(signals, signal)
	}
	if signal, ok := a.nodeSignal(ctx, manifest, repo); ok {
		signals = append(signals, signal)
	}
	if signal, ok := a.goSignal(manifest); ok {
		signals = append(signals, signal)
	}
	if signal, ok := a.makeSignal(ctx, manifest, repo); ok {
		signals = append(signals, signal)
	}

	if len(signals) == 0 {
		signals = append(signals, domain.Signal{
			Name:   "build.generic",
			Value:  "generic",
			Source: a.Name(),
			Metadata: domain.MetaMap{
				"commands": domain.Strings("# Document build steps here."),
			},
		})
	}

	return signals, nil
}

func (a *Analyzer) pythonSignal(manifest *domain.Manifest) (domain.Signal, bool) {
	var files []string
	for _, path := range pythonBuildFiles {
		if manifest.FindPath(path) != nil {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		return domain.Signal{}, false
	}
	sort.Strings(files)

	hasRequirements := manifest.FindPath("requirements.txt") != nil
	commands := []string{
		"python -m venv .venv",
		venvActivateCommand(),
	}
	if hasRequirements {
		commands = append(commands, "python -m pip install -r requirements.txt")
	} else {
		commands = append(commands, "python -m pip install -e .")
	}
	commands = append(commands, "python -m pytest")

	return domain.Signal{
		Name:   "build.python",
		Value:  "python",
		Source: a.Name(),
		Metadata: domain.MetaMap{
			"files":    domain.Strings(files...),
			"commands": domain.Strings(commands...),
		},
	}, true
}

func (a *Analyzer) nodeSignal(ctx context.Context, manifest *domain.Manifest, repo driven.Repository) (domain.Signal, bool) {
	if manifest.FindPath("package.json") == nil {
		return domain.Signal{}, false
	}

	manager := nodePackageManager(manifest)
	files := []string{"package.json"}
	if lockfile := nodeLockfile(manifest); lockfile != "" {
		files = append(files, lockfile)
	}

	commands := []string{manager + " install"}
	var scriptNames []string
	if content, err := repo.ReadText(ctx, manifest.Root, "package.json"); err == nil {
		scripts := depfile.NodeScripts(content)
		for name := range scripts {
			scriptNames = append(scriptNames, name)
		}
		sort.Strings(scriptNames)
		for _, script := range nodeScriptOrder {
			if _, ok := scripts[script]; ok {
				commands = append(commands, nodeScriptCommand(script, manager))
			}
		}
	} else {
		logger.Debug("Skipping package.json scripts: %v", err)
	}

	metadata := domain.MetaMap{
		"files":    domain.Strings(files...),
		"commands": domain.Strings(commands...),
		"manager":  domain.Str(manager),
	}
	if len(scriptNames) > 0 {
		metadata["scripts"] = domain.Strings(scriptNames...)
	}

	return domain.Signal{
		Name:     "build.node",
		Value:    "node",
		Source:   a.Name(),
		Metadata: metadata,
	}, true
}

func (a *Analyzer) goSignal(manifest *domain.Manifest) (domain.Signal, bool) {
	if manifest.FindPath("go.mod") == nil {
		return domain.Signal{}, false
	}
	return domain.Signal{
		Name:   "build.go",
		Value:  "go",
		Source: a.Name(),
		Metadata: domain.MetaMap{
			"files":    domain.Strings("go.mod"),
			"commands": domain.Strings("go build ./...", "go test ./..."),
		},
	}, true
}

func (a *Analyzer) makeSignal(ctx context.Context, manifest *domain.Manifest, repo driven.Repository) (domain.Signal, bool) {
	path := makefilePath(manifest)
	if path == "" {
		return domain.Signal{}, false
	}

	content, err := repo.ReadText(ctx, manifest.Root, path)
	if err != nil {
		logger.Debug("Skipping %s: %v", path, err)
		return domain.Signal{}, false
	}

	targets := makeTargets(content)
	if len(targets) == 0 {
		return domain.Signal{}, false
	}

	commands := make([]string, 0, maxMakeCommands)
	for _, target := range targets {
		if len(commands) == maxMakeCommands {
			break
		}
		commands = append(commands, "make "+target)
	}

	return domain.Signal{
		Name:   "build.make",
		Value:  "make",
		Source: a.Name(),
		Metadata: domain.MetaMap{
			"files":    domain.Strings(path),
			"targets":  domain.Strings(targets...),
			"commands": domain.Strings(commands...),
		},
	}, true
}

// venvActivateCommand is the shell-appropriate venv activation line.
func venvActivateCommand() string {
	if runtime.GOOS == "windows" {
		return ".\\.venv\\Scripts\\activate"
	}
	return "source .venv/bin/activate"
}

// nodePackageManager infers the package manager from lockfiles, npm by
// default.
func nodePackageManager(manifest *domain.Manifest) string {
	switch {
	case manifest.FindPath("pnpm-lock.yaml") != nil:
		return "pnpm"
	case manifest.FindPath("yarn.lock") != nil:
		return "yarn"
	default:
		return "npm"
	}
}

func nodeLockfile(manifest *domain.Manifest) string {
	for _, lockfile := range []string{"pnpm-lock.yaml", "yarn.lock", "package-lock.json"} {
		if manifest.FindPath(lockfile) != nil {
			return lockfile
		}
	}
	return ""
}

// nodeScriptCommand renders the invocation for one package.json script.
func nodeScriptCommand(script, manager string) string {
	switch manager {
	case "pnpm":
		return "pnpm " + script
	case "yarn":
		return "yarn " + script
	default:
		if script == "start" {
			return "npm start"
		}
		return "npm run " + script
	}
}

func makefilePath(manifest *domain.Manifest) string {
	for _, file := range manifest.Files {
		if strings.EqualFold(file.Path, "Makefile") {
			return file.Path
		}
	}
	return ""
}

// makeTargetPattern matches a rule line: a target name followed by a
// colon that is not part of an assignment (:=).
var makeTargetPattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9_.-]*)\s*:([^=]|$)`)

// makeTargets returns the rule targets declared in a Makefile, in file
// order, deduplicated.
func makeTargets(content string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "#") {
			continue
		}
		match := makeTargetPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		target := match[1]
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}
