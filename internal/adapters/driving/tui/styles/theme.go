// Package styles provides colour themes and styling for the issue browser.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the issue browser.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates grounded sections.
	Success lipgloss.Color

	// Warning indicates empty filter results.
	Warning lipgloss.Color

	// Error indicates missing evidence.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#0EA5E9"), // Sky blue
		Secondary:  lipgloss.Color("#A78BFA"), // Violet
		Background: lipgloss.Color("#1E1E2E"), // Dark gray
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles for the browser panes.
type Styles struct {
	theme *Theme

	// Text styles.

	// Title renders the browser header.
	Title lipgloss.Style

	// Subtitle renders section labels and detail field names.
	Subtitle lipgloss.Style

	// Normal renders regular text.
	Normal lipgloss.Style

	// Muted renders report metadata and scroll indicators.
	Muted lipgloss.Style

	// List styles.

	// Selected highlights the issue under the cursor.
	Selected lipgloss.Style

	// Error renders missing evidence terms.
	Error lipgloss.Style

	// Success renders the all-grounded message.
	Success lipgloss.Style

	// Warning renders the empty-filter message.
	Warning lipgloss.Style

	// Chrome styles.

	// InputField frames the filter input.
	InputField lipgloss.Style

	// StatusBar renders the bottom bar.
	StatusBar lipgloss.Style

	// Help renders keybinding hints.
	Help lipgloss.Style

	// Border frames the detail pane.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	s := &Styles{theme: theme}

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	s.Subtitle = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	s.Normal = lipgloss.NewStyle().Foreground(theme.Foreground)
	s.Muted = lipgloss.NewStyle().Foreground(theme.Muted)

	// The cursor row inverts for contrast rather than re-colouring text.
	s.Selected = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Background).
		Background(theme.Primary)
	s.Error = lipgloss.NewStyle().Foreground(theme.Error)
	s.Success = lipgloss.NewStyle().Foreground(theme.Success)
	s.Warning = lipgloss.NewStyle().Foreground(theme.Warning)

	s.InputField = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	s.StatusBar = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Background(theme.Background).
		Padding(0, 1)
	s.Help = lipgloss.NewStyle().Foreground(theme.Muted)
	s.Border = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return s
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
