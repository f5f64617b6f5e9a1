package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/Saechaoc/docgen/internal/adapters/driving/tui/keymap"
	"github.com/Saechaoc/docgen/internal/adapters/driving/tui/styles"
)

// barState selects which keybinding hints the status bar shows.
type barState int

const (
	barStateList barState = iota
	barStateDetail
	barStateFilter
)

// statusBar displays the issue count, active filter, and keybinding hints.
type statusBar struct {
	styles *styles.Styles
	keys   *keymap.KeyMap

	state barState
	shown int
	total int
	query string
	width int
}

// newStatusBar creates a new status bar component.
func newStatusBar(s *styles.Styles, keys *keymap.KeyMap) *statusBar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if keys == nil {
		keys = keymap.DefaultKeyMap()
	}

	return &statusBar{
		styles: s,
		keys:   keys,
		state:  barStateList,
		width:  80,
	}
}

// view renders the status bar.
func (s *statusBar) view() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the issue count and active filter.
func (s *statusBar) renderLeft() string {
	if s.query != "" {
		return s.styles.Normal.Render(
			fmt.Sprintf("%d of %d issue(s) match %q", s.shown, s.total, s.query))
	}
	return s.styles.Normal.Render(fmt.Sprintf("%d issue(s)", s.total))
}

// renderRight renders keybinding hints for the current state.
func (s *statusBar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case barStateDetail:
		bindings = s.keys.DetailHelp()
	case barStateFilter:
		bindings = s.keys.FilterHelp()
	case barStateList:
		bindings = s.keys.ListHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// setState sets which hint set the bar shows.
func (s *statusBar) setState(state barState) {
	s.state = state
}

// setCounts sets the visible and total issue counts.
func (s *statusBar) setCounts(shown, total int) {
	s.shown = shown
	s.total = total
}

// setFilter sets the filter text shown in the count summary.
func (s *statusBar) setFilter(query string) {
	s.query = strings.TrimSpace(query)
}

// setWidth sets the status bar width.
func (s *statusBar) setWidth(width int) {
	s.width = width
}
