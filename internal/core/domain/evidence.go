package domain

// EvidenceTier grades how directly a piece of evidence was observed.
type EvidenceTier string

// Evidence tiers, strongest first.
const (
	// TierObserved marks evidence drawn from rendered section content,
	// context snippets, and titles.
	TierObserved EvidenceTier = "observed"

	// TierInferred marks evidence derived only from raw analyzer signals.
	TierInferred EvidenceTier = "inferred"
)

// IsValid returns true if the tier is recognised.
func (t EvidenceTier) IsValid() bool {
	return t == TierObserved || t == TierInferred
}

// Rank orders tiers for upgrade decisions; higher outranks lower.
// Unknown tiers rank below everything.
func (t EvidenceTier) Rank() int {
	switch t {
	case TierObserved:
		return 2
	case TierInferred:
		return 1
	default:
		return 0
	}
}

// String returns the string representation.
func (t EvidenceTier) String() string {
	return string(t)
}

// EvidenceSnapshot is the first-seen provenance of one evidence token,
// kept for issue details and audit output.
type EvidenceSnapshot struct {
	// Token is the normalised evidence token.
	Token string

	// Source identifies the producer ("context:intro", "signal:language.primary").
	Source string

	// Snippet is a short excerpt of the text the token was seen in.
	Snippet string
}
