package services

import (
	"strings"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

const snapshotSnippetLimit = 120

// EvidenceIndex collects normalized evidence terms from signals, context
// snippets, and section metadata. Terms live in a global scope and in
// per-section scopes; each term carries the strongest tier it was ever
// recorded at.
//
// An index is rebuilt for every validation pass and discarded afterwards.
// It is not safe for concurrent Add calls.
type EvidenceIndex struct {
	global   map[string]domain.EvidenceTier
	sections map[string]map[string]domain.EvidenceTier
	sources  map[string][]domain.EvidenceSnapshot
}

// NewEvidenceIndex returns an empty index.
func NewEvidenceIndex() *EvidenceIndex {
	return &EvidenceIndex{
		global:   make(map[string]domain.EvidenceTier),
		sections: make(map[string]map[string]domain.EvidenceTier),
		sources:  make(map[string][]domain.EvidenceSnapshot),
	}
}

// Add tokenizes text and records every token at the given scope. An empty
// section means global scope. Tiers only ever upgrade: observed evidence
// is never downgraded by a later inferred write. The first time a token is
// seen at all, a provenance snapshot (source plus trimmed excerpt) is kept
// for issue details.
func (e *EvidenceIndex) Add(text, section, source string, tier domain.EvidenceTier) {
	tokens := EvidenceTokens(text)
	if len(tokens) == 0 {
		return
	}
	for _, token := range tokens {
		e.storeToken(token, section, tier)
		if len(e.sources[token]) == 0 {
			e.sources[token] = append(e.sources[token], domain.EvidenceSnapshot{
				Token:   token,
				Source:  source,
				Snippet: snapshotSnippet(text),
			})
		}
	}
}

// Merge folds another index into this one, applying the same tier-upgrade
// rule token by token and scope by scope. Snapshots are appended unless an
// identical (source, snippet) pair is already present for the token.
func (e *EvidenceIndex) Merge(other *EvidenceIndex) {
	if other == nil {
		return
	}
	for token, tier := range other.global {
		e.storeToken(token, "", tier)
	}
	for section, bucket := range other.sections {
		for token, tier := range bucket {
			e.storeToken(token, section, tier)
		}
	}
	for token, snapshots := range other.sources {
		existing := e.sources[token]
		for _, snap := range snapshots {
			dup := false
			for _, s := range existing {
				if s.Source == snap.Source && s.Snippet == snap.Snippet {
					dup = true
					break
				}
			}
			if !dup {
				existing = append(existing, snap)
			}
		}
		e.sources[token] = existing
	}
}

// HasToken reports whether the token is present with an allowed tier.
// With a section, the section scope is consulted first and the global
// scope serves as fallback. An empty allowed list permits any tier.
func (e *EvidenceIndex) HasToken(token, section string, allowed []domain.EvidenceTier) bool {
	if tier, ok := e.tokenTier(token, section); ok && tierAllowed(tier, allowed) {
		return true
	}
	if section != "" {
		if tier, ok := e.global[token]; ok && tierAllowed(tier, allowed) {
			return true
		}
	}
	return false
}

// HasAny reports whether any of the tokens passes HasToken.
func (e *EvidenceIndex) HasAny(tokens []string, section string, allowed []domain.EvidenceTier) bool {
	for _, token := range tokens {
		if e.HasToken(token, section, allowed) {
			return true
		}
	}
	return false
}

// MissingTokens returns the tokens failing HasToken, preserving order.
func (e *EvidenceIndex) MissingTokens(tokens []string, section string, allowed []domain.EvidenceTier) []string {
	var missing []string
	for _, token := range tokens {
		if !e.HasToken(token, section, allowed) {
			missing = append(missing, token)
		}
	}
	return missing
}

// Snapshot returns the first-seen provenance for a token.
func (e *EvidenceIndex) Snapshot(token string) (domain.EvidenceSnapshot, bool) {
	snapshots := e.sources[token]
	if len(snapshots) == 0 {
		return domain.EvidenceSnapshot{}, false
	}
	return snapshots[0], true
}

func (e *EvidenceIndex) storeToken(token, section string, tier domain.EvidenceTier) {
	if !tier.IsValid() {
		tier = domain.TierInferred
	}
	if section == "" {
		if current, ok := e.global[token]; !ok || tier.Rank() > current.Rank() {
			e.global[token] = tier
		}
		return
	}
	bucket := e.sections[section]
	if bucket == nil {
		bucket = make(map[string]domain.EvidenceTier)
		e.sections[section] = bucket
	}
	if current, ok := bucket[token]; !ok || tier.Rank() > current.Rank() {
		bucket[token] = tier
	}
}

// tokenTier resolves the effective tier: section scope when present,
// otherwise global.
func (e *EvidenceIndex) tokenTier(token, section string) (domain.EvidenceTier, bool) {
	if section != "" {
		if tier, ok := e.sections[section][token]; ok {
			return tier, true
		}
	}
	tier, ok := e.global[token]
	return tier, ok
}

// snapshotSnippet trims the originating text to a display-sized excerpt.
func snapshotSnippet(text string) string {
	snippet := strings.TrimSpace(text)
	runes := []rune(snippet)
	if len(runes) <= snapshotSnippetLimit {
		return snippet
	}
	head := strings.TrimRight(string(runes[:snapshotSnippetLimit-3]), " \t\r\n")
	return head + "..."
}

func tierAllowed(tier domain.EvidenceTier, allowed []domain.EvidenceTier) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if tier == a {
			return true
		}
	}
	return false
}

// BuildEvidenceIndex constructs the index one validation pass works from.
// Signal values and every scalar reachable in their metadata land at
// inferred tier, globally. Each section's context snippets, flattened
// metadata scalars, and title land at observed tier, both at the section's
// own scope and globally.
func BuildEvidenceIndex(signals []domain.Signal, sections []domain.Section) *EvidenceIndex {
	index := NewEvidenceIndex()
	for _, signal := range signals {
		index.Add(signal.Value, "", "signal:"+signal.Name, domain.TierInferred)
		for _, item := range signal.Metadata.Flatten() {
			index.Add(item, "", "signal_meta:"+signal.Name, domain.TierInferred)
		}
	}
	for _, section := range sections {
		name := section.Name
		for _, snippet := range section.Context() {
			index.Add(snippet, name, "context:"+name, domain.TierObserved)
			index.Add(snippet, "", "context:"+name, domain.TierObserved)
		}
		for _, item := range section.Metadata.Flatten() {
			index.Add(item, name, "metadata:"+name, domain.TierObserved)
			index.Add(item, "", "metadata:"+name, domain.TierObserved)
		}
		if section.Title != "" {
			index.Add(section.Title, name, "title:"+name, domain.TierObserved)
			index.Add(section.Title, "", "title:"+name, domain.TierObserved)
		}
	}
	return index
}
