package services

import (
	"regexp"
	"strings"
)

// Evidence tokenization is deliberately aggressive: grounding works on
// vocabulary overlap, so one identifier should surface every plausible
// form a generated sentence might use (camelCase parts, path segments,
// naive singulars, embedded version numbers).
//
// The validator and the evidence index must tokenize identically.
// Keep every rule in this file.

var evidenceTokenPattern = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9_.:/-]*`)

var evidenceStopwords = map[string]struct{}{
	"about": {}, "after": {}, "against": {}, "all": {}, "also": {},
	"and": {}, "any": {}, "are": {}, "because": {}, "being": {},
	"between": {}, "both": {}, "but": {}, "docs": {}, "docgen": {},
	"context": {}, "follow": {}, "highlight": {}, "highlights": {},
	"step": {}, "steps": {}, "started": {}, "rest": {}, "consistent": {},
	"designed": {}, "powered": {}, "below": {}, "each": {}, "from": {},
	"have": {}, "into": {}, "its": {}, "more": {}, "must": {},
	"only": {}, "other": {}, "over": {}, "some": {}, "than": {},
	"that": {}, "the": {}, "their": {}, "them": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {},
	"under": {}, "using": {}, "very": {}, "were": {}, "when": {},
	"where": {}, "which": {}, "will": {}, "with": {}, "within": {},
}

// EvidenceTokens normalizes text into grounding tokens: lowercase,
// at least three characters, stopwords removed, deduplicated in
// first-seen order.
func EvidenceTokens(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(token string) {
		if _, dup := seen[token]; dup {
			return
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}

	for _, raw := range evidenceTokenPattern.FindAllString(text, -1) {
		cleaned := strings.Trim(raw, "`")
		cleaned = strings.Trim(cleaned, "()[]{}<>")
		cleaned = strings.Trim(cleaned, ":;,!")
		if len(cleaned) < 3 {
			continue
		}
		lowered := strings.ToLower(cleaned)
		if isStopword(lowered) {
			continue
		}
		add(lowered)

		if hasUpperBeyondFirst(raw) {
			for _, part := range splitCamel(raw) {
				p := strings.ToLower(part)
				if len(p) >= 3 && !isStopword(p) {
					add(p)
				}
			}
		}

		for _, sep := range []string{"-", "_", "/", "."} {
			if !strings.Contains(raw, sep) {
				continue
			}
			for _, sub := range strings.Split(raw, sep) {
				s := strings.ToLower(sub)
				if len(sub) >= 3 && !isStopword(s) {
					add(s)
				}
			}
		}

		if strings.HasSuffix(lowered, "s") && len(lowered) > 4 {
			add(lowered[:len(lowered)-1])
		}
		if strings.HasSuffix(lowered, "es") && len(lowered) > 5 {
			add(lowered[:len(lowered)-2])
		}

		if digits := digitRun(raw); len(digits) >= 2 {
			add(digits)
		}
	}
	return out
}

func isStopword(token string) bool {
	_, ok := evidenceStopwords[token]
	return ok
}

// hasUpperBeyondFirst reports an uppercase letter after the first byte.
// Token matches are ASCII by construction, so byte indexing is safe.
func hasUpperBeyondFirst(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}

// splitCamel cuts before every uppercase letter except the first byte,
// so "RequestHandler" yields ["Request", "Handler"] and "HTTPServer"
// yields single letters plus "Server".
func splitCamel(s string) []string {
	var parts []string
	start := 0
	for i := 1; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			parts = append(parts, s[start:i])
			start = i
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// digitRun strips non-digits, keeping embedded versions and ports as
// standalone tokens ("v1.21" -> "121").
func digitRun(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
