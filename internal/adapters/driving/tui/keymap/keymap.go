// Package keymap defines keybindings for the issue browser.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the issue browser.
type KeyMap struct {
	// Quit exits the browser.
	Quit key.Binding

	// Up navigates up in the issue list.
	Up key.Binding

	// Down navigates down in the issue list.
	Down key.Binding

	// Select opens the detail pane for the selected issue.
	Select key.Binding

	// Back leaves the detail pane or clears the filter.
	Back key.Binding

	// Filter starts filtering the issue list.
	Filter key.Binding

	// Apply confirms the filter text.
	Apply key.Binding

	// Cancel abandons the filter text.
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ListHelp returns keybindings shown while browsing the list.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Filter, k.Quit}
}

// DetailHelp returns keybindings shown in the detail pane.
func (k *KeyMap) DetailHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FilterHelp returns keybindings shown while typing a filter.
func (k *KeyMap) FilterHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Cancel}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Filter, k.Back},
		{k.Quit},
	}
}
