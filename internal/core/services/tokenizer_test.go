package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvidenceTokens_LowercasesAndDedupes(t *testing.T) {
	tokens := EvidenceTokens("Docker docker DOCKER")

	assert.Equal(t, []string{"docker"}, tokens)
}

func TestEvidenceTokens_DropsShortAndStopwords(t *testing.T) {
	tokens := EvidenceTokens("Go is the best fit")

	assert.Equal(t, []string{"best", "fit"}, tokens)
}

func TestEvidenceTokens_FirstSeenOrder(t *testing.T) {
	tokens := EvidenceTokens("delta alpha delta beta alpha")

	assert.Equal(t, []string{"delta", "alpha", "beta"}, tokens)
}

func TestEvidenceTokens_SplitsCamelCase(t *testing.T) {
	tokens := EvidenceTokens("RequestHandler")

	assert.Contains(t, tokens, "requesthandler")
	assert.Contains(t, tokens, "request")
	assert.Contains(t, tokens, "handler")
}

func TestEvidenceTokens_SplitsPathSegments(t *testing.T) {
	tokens := EvidenceTokens("internal/core/services")

	assert.Contains(t, tokens, "internal/core/services")
	assert.Contains(t, tokens, "internal")
	assert.Contains(t, tokens, "core")
	assert.Contains(t, tokens, "services")
	// The slash pass keeps whole segments; singulars come from the
	// suffix pass on the full token only.
	assert.Contains(t, tokens, "internal/core/service")
}

func TestEvidenceTokens_SplitsSnakeAndKebab(t *testing.T) {
	tokens := EvidenceTokens("build_and_test chunk-size")

	assert.Contains(t, tokens, "build_and_test")
	assert.Contains(t, tokens, "build")
	assert.Contains(t, tokens, "test")
	assert.Contains(t, tokens, "chunk-size")
	assert.Contains(t, tokens, "chunk")
	assert.Contains(t, tokens, "size")
	assert.NotContains(t, tokens, "and", "stopwords stay out of split parts")
}

func TestEvidenceTokens_NaiveSingulars(t *testing.T) {
	tokens := EvidenceTokens("packages")

	assert.Contains(t, tokens, "packages")
	assert.Contains(t, tokens, "package")
	assert.Contains(t, tokens, "packag")
}

func TestEvidenceTokens_DigitRuns(t *testing.T) {
	tokens := EvidenceTokens("requires v1.21 or later")

	assert.Contains(t, tokens, "v1.21")
	assert.Contains(t, tokens, "121")
	assert.NotContains(t, tokens, "21", "short split parts are dropped")
}

func TestEvidenceTokens_DropsToolName(t *testing.T) {
	tokens := EvidenceTokens("run `docgen` now")

	assert.Contains(t, tokens, "run")
	assert.Contains(t, tokens, "now")
	assert.NotContains(t, tokens, "docgen", "the tool's own name is never evidence")
}

func TestEvidenceTokens_TrimsTrailingPunctuation(t *testing.T) {
	tokens := EvidenceTokens("usage: install first")

	assert.Contains(t, tokens, "usage")
	assert.NotContains(t, tokens, "usage:")
}

func TestEvidenceTokens_Empty(t *testing.T) {
	assert.Empty(t, EvidenceTokens(""))
	assert.Empty(t, EvidenceTokens("a an it of"))
	assert.Empty(t, EvidenceTokens("!!! ... ---"))
}
