package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driving"
	"github.com/Saechaoc/docgen/internal/logger"
)

// Ensure HallucinationValidator implements the interface.
var _ driving.ReadmeValidator = (*HallucinationValidator)(nil)

const (
	maxMissingTerms   = 8
	maxMissingDisplay = 5
	maxNearestCited   = 3
	minFactualLength  = 20
)

var (
	bulletMarker  = regexp.MustCompile(`^[*-]\s+`)
	ordinalMarker = regexp.MustCompile(`^\d+\.\s+`)
)

// Boilerplate produced by stub templates. Sentences matching these are
// instructional filler, not factual claims, and are never checked.
var safePrefixes = []string{
	"Replace this text",
	"Document the project structure",
	"Ready for continuous README generation",
	"Use this section",
	"Add deployment details",
	"Add troubleshooting guidance",
	"Add configuration details",
	"docgen could not populate",
	"docgen could not gather",
	"Follow the steps below",
	"_Observed frameworks",
}

var safeExact = map[string]struct{}{
	"This README was bootstrapped by ``docgen init`` to summarize the repository at a glance.": {},
	"Replace this text with a concise mission statement for the repository.":                   {},
	"Document the project structure here.":                                                     {},
	"Document how to set up and run the project locally.":                                      {},
	"Container image can be built with `docker build -t <image> .`.":                           {},
	"Outline deployment strategies or hosting targets here.":                                   {},
}

var synonymGroups = [][]string{
	{"dynamodb", "aws dynamodb", "aws-dynamodb", "amazon dynamodb"},
	{"terraform", "iac", "hashicorp terraform"},
	{"postgres", "postgresql"},
	{"kubernetes", "k8s"},
}

var synonymMap = buildSynonymMap()

func buildSynonymMap() map[string][]string {
	m := make(map[string][]string)
	for _, group := range synonymGroups {
		for _, token := range group {
			m[strings.ToLower(token)] = group
		}
	}
	return m
}

// HallucinationValidator rejects README content that is not grounded in
// repository evidence. It is stateless: every Validate call rebuilds the
// evidence index from the request and mutates nothing.
type HallucinationValidator struct{}

// NewHallucinationValidator creates a new validator.
func NewHallucinationValidator() *HallucinationValidator {
	return &HallucinationValidator{}
}

// Validate checks every sentence of every section body for vocabulary
// overlap with the evidence index. Issues come back in section order,
// then sentence order; repeated calls over the same request return
// identical lists.
func (v *HallucinationValidator) Validate(req driving.ValidationRequest) []domain.ValidationIssue {
	mode := req.Mode
	if !mode.IsValid() {
		mode = domain.ModeStrict
	}
	allowed := mode.AllowedTiers(req.AllowInferred)
	synonyms := mode.SynonymsEnabled()
	minOverlap := req.MinOverlap
	if minOverlap < 1 {
		minOverlap = domain.DefaultMinOverlap
	}

	evidence := BuildEvidenceIndex(req.Signals, req.Sections)

	var issues []domain.ValidationIssue
	for _, section := range req.Sections {
		for _, sentence := range iterSentences(section.Body) {
			if shouldSkipSentence(sentence) {
				continue
			}
			tokens := EvidenceTokens(sentence)
			if len(tokens) == 0 {
				continue
			}
			if countOverlap(tokens, evidence, section.Name, allowed, synonyms) >= minOverlap {
				continue
			}
			if countOverlap(tokens, evidence, "", allowed, synonyms) >= minOverlap {
				continue
			}
			missing := missingWithSynonyms(tokens, evidence, "", allowed, synonyms)
			issues = append(issues, domain.ValidationIssue{
				Section:      section.Name,
				Sentence:     strings.TrimSpace(sentence),
				MissingTerms: capStrings(missing, maxMissingTerms),
				Detail:       buildDetail(missing, evidence),
			})
		}
	}

	logger.Debug("Validation found %d ungrounded sentences across %d sections (mode=%s)",
		len(issues), len(req.Sections), mode)
	return issues
}

// iterSentences segments a section body: lines opening with a heading
// mark or backtick are dropped, list markers are stripped, and remaining
// lines are split on sentence-ending punctuation followed by an uppercase
// letter, digit, or backtick.
func iterSentences(body string) []string {
	var out []string
	for _, rawLine := range strings.Split(body, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "`") {
			continue
		}
		line = bulletMarker.ReplaceAllString(line, "")
		line = ordinalMarker.ReplaceAllString(line, "")
		for _, piece := range splitSentenceBoundaries(line) {
			if fragment := strings.TrimSpace(piece); fragment != "" {
				out = append(out, fragment)
			}
		}
	}
	return out
}

// splitSentenceBoundaries splits after [.!?] when followed by whitespace
// and a capital letter, digit, or backtick. The whitespace is consumed.
func splitSentenceBoundaries(line string) []string {
	runes := []rune(line)
	var pieces []string
	start := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		if r == '.' || r == '!' || r == '?' {
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j > i+1 && j < len(runes) && startsSentence(runes[j]) {
				pieces = append(pieces, string(runes[start:i+1]))
				start = j
				i = j
				continue
			}
		}
		i++
	}
	if start < len(runes) {
		pieces = append(pieces, string(runes[start:]))
	}
	return pieces
}

func startsSentence(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '`'
}

// shouldSkipSentence filters boilerplate and filler: template stubs,
// label lines, and anything under twenty characters.
func shouldSkipSentence(sentence string) bool {
	normalized := strings.TrimSpace(sentence)
	if normalized == "" {
		return true
	}
	if _, ok := safeExact[normalized]; ok {
		return true
	}
	for _, prefix := range safePrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	if strings.HasPrefix(normalized, "_") && strings.HasSuffix(normalized, ":") {
		return true
	}
	return utf8.RuneCountInString(normalized) < minFactualLength
}

// expandToken returns the token's synonym group in balanced mode, or the
// token alone.
func expandToken(token string, synonyms bool) []string {
	base := strings.ToLower(token)
	if synonyms {
		if group, ok := synonymMap[base]; ok {
			return group
		}
	}
	return []string{base}
}

func countOverlap(tokens []string, evidence *EvidenceIndex, section string, allowed []domain.EvidenceTier, synonyms bool) int {
	overlap := 0
	for _, token := range tokens {
		for _, candidate := range expandToken(token, synonyms) {
			if evidence.HasToken(candidate, section, allowed) {
				overlap++
				break
			}
		}
	}
	return overlap
}

func missingWithSynonyms(tokens []string, evidence *EvidenceIndex, section string, allowed []domain.EvidenceTier, synonyms bool) []string {
	var missing []string
	for _, token := range tokens {
		matched := false
		for _, candidate := range expandToken(token, synonyms) {
			if evidence.HasToken(candidate, section, allowed) {
				matched = true
				break
			}
		}
		if !matched {
			missing = append(missing, token)
		}
	}
	return missing
}

// buildDetail names the missing terms and cites the nearest evidence
// sources so a failing sentence can be traced back to what the repository
// actually contains.
func buildDetail(missing []string, evidence *EvidenceIndex) string {
	if len(missing) == 0 {
		return "Sentence lacks overlap with repository evidence."
	}
	var examples []string
	for _, token := range capStrings(missing, maxNearestCited) {
		if snap, ok := evidence.Snapshot(token); ok {
			examples = append(examples, fmt.Sprintf("%s -> %s", token, snap.Source))
		}
	}
	display := strings.Join(capStrings(missing, maxMissingDisplay), ", ")
	if len(examples) > 0 {
		return fmt.Sprintf("Missing evidence for: %s (nearest: %s)", display, strings.Join(examples, "; "))
	}
	return "Missing evidence for: " + display
}

func capStrings(items []string, limit int) []string {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}
