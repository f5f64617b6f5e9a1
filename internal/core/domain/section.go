package domain

import "sort"

// Section is one rendered README section as produced by the generation
// pipeline. The validator reads Body; the evidence index reads Title and
// Metadata (notably the "context" snippet list injected by the prompt
// builder).
type Section struct {
	// Name is the canonical section identifier (e.g. "quickstart").
	Name string

	// Title is the rendered heading.
	Title string

	// Body is the generated markdown body.
	Body string

	// Metadata carries prompt-side detail such as context snippets
	// and evidence summaries.
	Metadata MetaMap
}

// Context returns the context snippets attached to the section, if any.
func (s Section) Context() []string {
	return s.Metadata.StringList("context")
}

// Canonical README sections in render order. Chunk tags map onto these
// buckets, so the list doubles as the default indexing target.
var sectionOrder = []string{
	"intro",
	"features",
	"architecture",
	"quickstart",
	"configuration",
	"build_and_test",
	"deployment",
	"troubleshooting",
	"faq",
	"license",
}

// sectionTags maps a section name to the chunk tags it draws context from.
var sectionTags = map[string][]string{
	"intro":           {"readme", "docs"},
	"features":        {"docs", "source"},
	"architecture":    {"source", "docs"},
	"quickstart":      {"readme", "build"},
	"configuration":   {"config", "docs"},
	"build_and_test":  {"build", "docs"},
	"deployment":      {"infra", "docs"},
	"troubleshooting": {"docs"},
	"faq":             {"docs"},
	"license":         {"license", "docs"},
}

// DefaultSections returns the canonical section names in render order.
func DefaultSections() []string {
	out := make([]string, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// KnownSection reports whether the name is one of the canonical sections.
func KnownSection(name string) bool {
	_, ok := sectionTags[name]
	return ok
}

// OrderSectionNames sorts names into canonical render order. Names
// outside the canonical set follow alphabetically, so any input set has
// exactly one ordering.
func OrderSectionNames(names []string) []string {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}

	ordered := make([]string, 0, len(names))
	for _, name := range sectionOrder {
		if present[name] {
			ordered = append(ordered, name)
			delete(present, name)
		}
	}

	extras := make([]string, 0, len(present))
	for name := range present {
		extras = append(extras, name)
	}
	sort.Strings(extras)

	return append(ordered, extras...)
}

// SectionTagsFor returns the chunk tags a section draws from. Unknown
// sections return nil and therefore collect no context.
func SectionTagsFor(section string) []string {
	tags, ok := sectionTags[section]
	if !ok {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// SectionsForTag returns the sections whose tag lists include the given
// tag, in render order.
func SectionsForTag(tag string) []string {
	var out []string
	for _, section := range sectionOrder {
		for _, t := range sectionTags[section] {
			if t == tag {
				out = append(out, section)
				break
			}
		}
	}
	return out
}

// SectionsForTags returns the union of SectionsForTag over all tags,
// deduplicated, preserving first-seen order.
func SectionsForTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tag := range tags {
		for _, section := range SectionsForTag(tag) {
			if seen[section] {
				continue
			}
			seen[section] = true
			out = append(out, section)
		}
	}
	return out
}
