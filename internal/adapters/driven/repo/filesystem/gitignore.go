package filesystem

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// gitignore is a matcher for the subset of .gitignore syntax the scanner
// honours: comments, directory patterns ("build/"), base-name globs
// ("*.log"), and anchored path globs ("src/*.gen.go"). Negations are not
// supported; a negated line is ignored.
type gitignore struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern  string
	dirOnly  bool
	anchored bool
}

// loadGitignore reads the root .gitignore. A missing or unreadable file
// yields a matcher that matches nothing.
func loadGitignore(root string) *gitignore {
	g := &gitignore{}

	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return g
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		p := ignorePattern{pattern: strings.TrimPrefix(line, "/")}
		if strings.HasSuffix(p.pattern, "/") {
			p.dirOnly = true
			p.pattern = strings.TrimSuffix(p.pattern, "/")
		}
		p.anchored = strings.Contains(p.pattern, "/")
		g.patterns = append(g.patterns, p)
	}

	return g
}

// Match reports whether the slash-separated relative path is ignored.
func (g *gitignore) Match(rel string, isDir bool) bool {
	base := path.Base(rel)

	for _, p := range g.patterns {
		if p.dirOnly {
			if (rel == p.pattern && isDir) || strings.HasPrefix(rel, p.pattern+"/") {
				return true
			}
			continue
		}
		if p.anchored {
			if ok, _ := path.Match(p.pattern, rel); ok {
				return true
			}
			continue
		}
		if ok, _ := path.Match(p.pattern, base); ok {
			return true
		}
	}
	return false
}
