package driving

import (
	"github.com/Saechaoc/docgen/internal/core/domain"
)

// ValidationRequest carries everything one validation pass needs.
// Evidence is rebuilt from Signals and Sections on every call; nothing
// is cached between passes.
type ValidationRequest struct {
	// Sections are the rendered sections to check, in render order.
	Sections []domain.Section

	// Signals are the analyzer signals contributing inferred evidence.
	Signals []domain.Signal

	// Mode selects the tier/synonym policy. Unknown modes degrade
	// to strict.
	Mode domain.ValidationMode

	// AllowInferred overrides the mode's tier policy when non-nil.
	AllowInferred *bool

	// MinOverlap is the grounding threshold per sentence; values below
	// one fall back to the default of one.
	MinOverlap int
}

// ReadmeValidator checks rendered sections against repository evidence.
// Ungrounded sentences come back as issues, never as errors; the caller
// owns retry/stub/abort policy.
type ReadmeValidator interface {
	// Validate runs one pass and returns issues in section order.
	// Repeated calls over the same request return identical lists.
	Validate(req ValidationRequest) []domain.ValidationIssue
}
