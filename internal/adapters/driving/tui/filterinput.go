package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Saechaoc/docgen/internal/adapters/driving/tui/styles"
)

// filterInput wraps a bubbles textinput for filtering the issue list.
type filterInput struct {
	textinput textinput.Model
	styles    *styles.Styles
}

// newFilterInput creates a new filter input component.
func newFilterInput(s *styles.Styles) *filterInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Section, text, or missing term..."
	ti.CharLimit = 128
	ti.Width = 40

	return &filterInput{
		textinput: ti,
		styles:    s,
	}
}

// update handles input messages.
func (f *filterInput) update(msg tea.Msg) (*filterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// view renders the filter input.
func (f *filterInput) view() string {
	label := f.styles.Title.Render("Filter: ")
	input := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// value returns the current filter text.
func (f *filterInput) value() string {
	return f.textinput.Value()
}

// focus sets focus on the input.
func (f *filterInput) focus() tea.Cmd {
	return f.textinput.Focus()
}

// blur removes focus from the input.
func (f *filterInput) blur() {
	f.textinput.Blur()
}

// focused returns whether the input is focused.
func (f *filterInput) focused() bool {
	return f.textinput.Focused()
}

// reset clears the filter text.
func (f *filterInput) reset() {
	f.textinput.Reset()
}

// setWidth sizes the input to the terminal width.
func (f *filterInput) setWidth(width int) {
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	if inputWidth > 60 {
		inputWidth = 60
	}
	f.textinput.Width = inputWidth
}
