// Package depfile parses the dependency manifests analyzers read:
// requirements.txt, pyproject.toml, package.json, go.mod, pom.xml, and
// Gradle build scripts. Parsers take file content and degrade to empty
// results on malformed input; analyzers decide what absence means.
package depfile

import (
	"encoding/json"
	"encoding/xml"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
)

// versionSplitPattern separates a package name from its version
// constraint ("fastapi==0.110" -> "fastapi").
var versionSplitPattern = regexp.MustCompile(`[<>=!~]`)

// RequirementSpecs returns the raw requirement lines from a
// requirements.txt, in file order. Blank lines, comments, and include
// directives (-r) are skipped.
func RequirementSpecs(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") || strings.HasPrefix(stripped, "-r") {
			continue
		}
		out = append(out, stripped)
	}
	return out
}

// RequirementNames returns the package names from a requirements.txt,
// version constraints stripped, in file order.
func RequirementNames(content string) []string {
	var out []string
	for _, spec := range RequirementSpecs(content) {
		if name := packageName(spec); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// pyprojectFile covers the two dependency layouts seen in the wild:
// PEP 621 [project] tables and poetry's [tool.poetry].
type pyprojectFile struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// PyprojectPackages returns the declared package names from a
// pyproject.toml, sorted and deduplicated. The python interpreter
// requirement poetry lists is dropped.
func PyprojectPackages(content string) []string {
	var parsed pyprojectFile
	if err := toml.Unmarshal([]byte(content), &parsed); err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	add := func(spec string) {
		name := packageName(spec)
		if name == "" || strings.EqualFold(name, "python") {
			return
		}
		seen[name] = struct{}{}
	}

	for _, spec := range parsed.Project.Dependencies {
		add(spec)
	}
	for _, specs := range parsed.Project.OptionalDependencies {
		for _, spec := range specs {
			add(spec)
		}
	}
	for name := range parsed.Tool.Poetry.Dependencies {
		add(name)
	}

	return sortedKeys(seen)
}

type packageJSONFile struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

// NodeDependencies returns the runtime and development dependency names
// from a package.json, each list sorted.
func NodeDependencies(content string) (runtime, dev []string) {
	var parsed packageJSONFile
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, nil
	}
	return sortedMapKeys(parsed.Dependencies), sortedMapKeys(parsed.DevDependencies)
}

// NodeScripts returns the scripts table from a package.json.
func NodeScripts(content string) map[string]string {
	var parsed packageJSONFile
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil
	}
	return parsed.Scripts
}

// GoModulePaths returns the direct require paths from a go.mod, in file
// order.
func GoModulePaths(content string) []string {
	parsed, err := modfile.Parse("go.mod", []byte(content), nil)
	if err != nil {
		return nil
	}

	var out []string
	for _, req := range parsed.Require {
		if req.Indirect {
			continue
		}
		out = append(out, req.Mod.Path)
	}
	return out
}

// gradleCoordinatePattern matches "group:artifact" (optionally
// ":version") inside quotes on a dependency declaration line.
var gradleCoordinatePattern = regexp.MustCompile(`['"]([\w\-.]+:[\w\-.]+)(?::[\w\-.]+)?['"]`)

// gradleConfigurations are the declaration keywords worth scanning,
// matched case-insensitively so testImplementation and friends count.
var gradleConfigurations = []string{"implementation", "api", "compile", "runtimeonly"}

// JavaDependencies returns "group:artifact" coordinates collected from a
// pom.xml and any number of Gradle build scripts, sorted and
// deduplicated. Empty inputs are ignored.
func JavaDependencies(pomXML string, gradleScripts ...string) []string {
	seen := make(map[string]struct{})

	for _, coordinate := range pomDependencies(pomXML) {
		seen[coordinate] = struct{}{}
	}
	for _, script := range gradleScripts {
		for _, coordinate := range gradleDependencies(script) {
			seen[coordinate] = struct{}{}
		}
	}

	return sortedKeys(seen)
}

// pomDependencies walks <dependency> elements at any depth, reading the
// groupId and artifactId that are their direct children. Namespaces are
// ignored; maven poms use one default namespace throughout.
func pomDependencies(content string) []string {
	if content == "" {
		return nil
	}

	decoder := xml.NewDecoder(strings.NewReader(content))
	var out []string
	var stack []string
	var group, artifact strings.Builder

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			if t.Name.Local == "dependency" {
				group.Reset()
				artifact.Reset()
			}
		case xml.CharData:
			if n := len(stack); n >= 2 && stack[n-2] == "dependency" {
				switch stack[n-1] {
				case "groupId":
					group.Write(t)
				case "artifactId":
					artifact.Write(t)
				}
			}
		case xml.EndElement:
			if len(stack) == 0 {
				break
			}
			if stack[len(stack)-1] == "dependency" {
				g := strings.TrimSpace(group.String())
				a := strings.TrimSpace(artifact.String())
				if g != "" && a != "" {
					out = append(out, g+":"+a)
				}
			}
			stack = stack[:len(stack)-1]
		}
	}
	return out
}

func gradleDependencies(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		lower := strings.ToLower(line)
		declared := false
		for _, configuration := range gradleConfigurations {
			if strings.Contains(lower, configuration) {
				declared = true
				break
			}
		}
		if !declared {
			continue
		}
		if match := gradleCoordinatePattern.FindStringSubmatch(line); match != nil {
			out = append(out, match[1])
		}
	}
	return out
}

// packageName strips the version constraint from a requirement spec.
func packageName(spec string) string {
	return strings.TrimSpace(versionSplitPattern.Split(spec, 2)[0])
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func sortedMapKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for key := range m {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
