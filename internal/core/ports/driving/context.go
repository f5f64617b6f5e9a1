package driving

import "context"

// ContextBuilder refreshes the embedding index against the current
// repository state and resolves per-section context snippets.
type ContextBuilder interface {
	// BuildContexts scans the repository, re-embeds changed files,
	// prunes deleted ones, persists the store, and returns up to three
	// context snippets per requested section. An empty section list
	// targets all default sections.
	BuildContexts(ctx context.Context, root string, sections []string) (*ContextResult, error)
}

// ContextResult is the outcome of one index build.
type ContextResult struct {
	// Contexts maps each requested section to its snippets, possibly empty.
	Contexts map[string][]string

	// StorePath is the persisted store file used by this build.
	StorePath string

	// FilesIndexed counts files chunked and embedded this run.
	FilesIndexed int

	// FilesSkipped counts files left untouched because their content
	// hash matched the store.
	FilesSkipped int

	// PathsPruned counts stored paths removed because they vanished
	// from the repository.
	PathsPruned int
}
