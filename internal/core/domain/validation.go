package domain

import "time"

// ValidationMode selects how strictly generated prose must match evidence.
type ValidationMode string

// Available validation modes.
const (
	// ModeStrict accepts only observed-tier evidence and disables
	// synonym expansion.
	ModeStrict ValidationMode = "strict"

	// ModeBalanced additionally accepts inferred-tier evidence and
	// enables synonym expansion.
	ModeBalanced ValidationMode = "balanced"
)

// IsValid returns true if the mode is recognised.
func (m ValidationMode) IsValid() bool {
	return m == ModeStrict || m == ModeBalanced
}

// String returns the string representation.
func (m ValidationMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m ValidationMode) Description() string {
	switch m {
	case ModeStrict:
		return "Strict (observed evidence only)"
	case ModeBalanced:
		return "Balanced (observed + inferred, synonyms enabled)"
	default:
		return "Unknown"
	}
}

// NormalizeMode maps arbitrary input to a valid mode. Unknown values
// degrade to strict rather than failing.
func NormalizeMode(raw string) ValidationMode {
	if m := ValidationMode(raw); m.IsValid() {
		return m
	}
	return ModeStrict
}

// AllValidationModes returns all available modes.
func AllValidationModes() []ValidationMode {
	return []ValidationMode{ModeStrict, ModeBalanced}
}

// AllowedTiers returns the evidence tiers the mode accepts.
// allowInferred, when non-nil, overrides the mode's own tier policy.
func (m ValidationMode) AllowedTiers(allowInferred *bool) []EvidenceTier {
	inferred := m == ModeBalanced
	if allowInferred != nil {
		inferred = *allowInferred
	}
	if inferred {
		return []EvidenceTier{TierObserved, TierInferred}
	}
	return []EvidenceTier{TierObserved}
}

// SynonymsEnabled reports whether the mode expands tokens through the
// synonym table. Only balanced mode does.
func (m ValidationMode) SynonymsEnabled() bool {
	return m == ModeBalanced
}

// ValidationIssue reports one ungrounded sentence in a rendered section.
// Issues are signals, not errors: the caller decides retry, stubbing, or
// failure policy.
type ValidationIssue struct {
	// Section is the section name the sentence came from.
	Section string `json:"section"`

	// Sentence is the offending sentence, trimmed.
	Sentence string `json:"sentence"`

	// MissingTerms lists tokens with no evidence match, capped at 8.
	MissingTerms []string `json:"missing_terms,omitempty"`

	// Detail explains the failure and cites nearby evidence sources.
	Detail string `json:"detail,omitempty"`
}

// ValidationReport is the persisted outcome of one validation pass, as
// written by `docgen validate --report` and read back by the issue
// browser.
type ValidationReport struct {
	// ID uniquely identifies the report.
	ID string `json:"id"`

	// GeneratedAt is when the pass ran, in UTC.
	GeneratedAt time.Time `json:"generated_at"`

	// Root is the repository the sections were checked against.
	Root string `json:"root"`

	// Mode is the validation mode the pass used.
	Mode ValidationMode `json:"mode"`

	// SectionCount is how many sections were checked.
	SectionCount int `json:"section_count"`

	// Issues are the ungrounded sentences found, in section order.
	Issues []ValidationIssue `json:"issues"`
}
