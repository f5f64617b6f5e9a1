package tui

import (
	"fmt"
	"strings"

	"github.com/Saechaoc/docgen/internal/adapters/driving/tui/styles"
	"github.com/Saechaoc/docgen/internal/core/domain"
)

// issueList displays validation issues in a navigable, filterable list.
type issueList struct {
	styles *styles.Styles

	issues   []domain.ValidationIssue
	visible  []domain.ValidationIssue
	selected int

	width  int
	height int
}

// newIssueList creates a new issue list component.
func newIssueList(s *styles.Styles) *issueList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &issueList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// setIssues replaces the list contents and resets selection and filter.
func (l *issueList) setIssues(issues []domain.ValidationIssue) {
	l.issues = issues
	l.visible = issues
	l.selected = 0
}

// filter narrows the visible issues to those matching the query.
// Matching is case-insensitive over section, sentence, missing terms,
// and detail. An empty query restores the full list.
func (l *issueList) filter(query string) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		l.visible = l.issues
		l.clampSelection()
		return
	}

	visible := make([]domain.ValidationIssue, 0, len(l.issues))
	for _, issue := range l.issues {
		if issueMatches(issue, query) {
			visible = append(visible, issue)
		}
	}
	l.visible = visible
	l.clampSelection()
}

// issueMatches reports whether any text field of the issue contains the
// lowercased query.
func issueMatches(issue domain.ValidationIssue, query string) bool {
	if strings.Contains(strings.ToLower(issue.Section), query) {
		return true
	}
	if strings.Contains(strings.ToLower(issue.Sentence), query) {
		return true
	}
	if strings.Contains(strings.ToLower(issue.Detail), query) {
		return true
	}
	for _, term := range issue.MissingTerms {
		if strings.Contains(strings.ToLower(term), query) {
			return true
		}
	}
	return false
}

func (l *issueList) clampSelection() {
	if l.selected >= len(l.visible) {
		l.selected = len(l.visible) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// moveUp moves selection up.
func (l *issueList) moveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// moveDown moves selection down.
func (l *issueList) moveDown() {
	if l.selected < len(l.visible)-1 {
		l.selected++
	}
}

// selectedIssue returns the currently selected issue, or nil if the
// visible list is empty.
func (l *issueList) selectedIssue() *domain.ValidationIssue {
	if len(l.visible) == 0 || l.selected < 0 || l.selected >= len(l.visible) {
		return nil
	}
	return &l.visible[l.selected]
}

// count returns the number of visible issues.
func (l *issueList) count() int {
	return len(l.visible)
}

// setDimensions sets the component dimensions.
func (l *issueList) setDimensions(width, height int) {
	l.width = width
	l.height = height
}

// view renders the issue list.
func (l *issueList) view() string {
	if len(l.visible) == 0 {
		return l.styles.Warning.Render("No issues match the filter")
	}

	visibleCount := l.height
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.visible) {
		end = len(l.visible)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderIssue(i, &l.visible[i]))
	}

	// Scroll indicator
	if len(l.visible) > visibleCount {
		lines = append(lines, l.styles.Muted.Render(
			fmt.Sprintf("  [%d-%d of %d]", start+1, end, len(l.visible))))
	}

	return strings.Join(lines, "\n")
}

// renderIssue formats a single issue as one list row.
func (l *issueList) renderIssue(index int, issue *domain.ValidationIssue) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	label := fmt.Sprintf("[%s]", issue.Section)

	sentence := issue.Sentence
	maxLen := l.width - len(indicator) - len(label) - 3
	if maxLen < 10 {
		maxLen = 10
	}
	if len(sentence) > maxLen {
		sentence = sentence[:maxLen-3] + "..."
	}

	if index == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("%s%s %s", indicator, label, sentence))
	}
	return l.styles.Subtitle.Render(indicator+label) + l.styles.Normal.Render(" "+sentence)
}
