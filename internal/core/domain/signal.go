package domain

// Signal is one fact an analyzer derived from the repository, such as the
// primary language or the detected build commands. Signals feed prompt
// construction upstream and the evidence index here; their metadata is
// flattened into inferred-tier evidence tokens.
type Signal struct {
	// Name identifies the signal, dot-namespaced by analyzer
	// (e.g. "language.primary", "dependencies.python").
	Name string

	// Value is the headline value rendered into prompts.
	Value string

	// Source is the analyzer that produced the signal.
	Source string

	// Metadata carries structured detail (counts, file lists, commands).
	Metadata MetaMap
}
