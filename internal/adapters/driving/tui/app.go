// Package tui provides the interactive validation issue browser.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Saechaoc/docgen/internal/adapters/driving/tui/keymap"
	"github.com/Saechaoc/docgen/internal/adapters/driving/tui/styles"
	"github.com/Saechaoc/docgen/internal/core/domain"
)

// browserMode tracks which pane of the browser has focus.
type browserMode int

const (
	modeList browserMode = iota
	modeDetail
	modeFilter
)

// chromeLines is the number of rows reserved around the issue list for
// the header, filter row, and status bar.
const chromeLines = 8

// App is the issue browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// report is the validation report being browsed.
	report *domain.ValidationReport

	// styles holds the browser styles.
	styles *styles.Styles

	// keys holds the keybindings.
	keys *keymap.KeyMap

	// list is the navigable issue list.
	list *issueList

	// filter is the filter text input.
	filter *filterInput

	// status is the bottom status bar.
	status *statusBar

	// mode tracks which pane is active.
	mode browserMode

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates an issue browser over the given report. A nil report is
// treated as empty.
func NewApp(report *domain.ValidationReport) *App {
	if report == nil {
		report = &domain.ValidationReport{}
	}

	s := styles.DefaultStyles()
	keys := keymap.DefaultKeyMap()

	list := newIssueList(s)
	list.setIssues(report.Issues)

	status := newStatusBar(s, keys)
	status.setCounts(len(report.Issues), len(report.Issues))

	return &App{
		report: report,
		styles: s,
		keys:   keys,
		list:   list,
		filter: newFilterInput(s),
		status: status,
		mode:   modeList,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("docgen - validation issues"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

		switch a.mode {
		case modeFilter:
			return a.updateFilter(msg)
		case modeDetail:
			return a.updateDetail(msg)
		case modeList:
			return a.updateList(msg)
		}
	}

	return a, nil
}

// updateList handles keys while the issue list has focus.
func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		a.list.moveUp()

	case key.Matches(msg, a.keys.Down):
		a.list.moveDown()

	case key.Matches(msg, a.keys.Select):
		if a.list.selectedIssue() != nil {
			a.mode = modeDetail
			a.status.setState(barStateDetail)
		}

	case key.Matches(msg, a.keys.Filter):
		a.mode = modeFilter
		a.status.setState(barStateFilter)
		return a, a.filter.focus()

	case key.Matches(msg, a.keys.Back):
		// Esc clears an applied filter before it quits.
		if a.filter.value() != "" {
			a.clearFilter()
			return a, nil
		}
		return a, tea.Quit
	}

	return a, nil
}

// updateDetail handles keys while the detail pane has focus. Up and down
// step through issues without leaving the pane.
func (a *App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Back):
		a.mode = modeList
		a.status.setState(barStateList)

	case key.Matches(msg, a.keys.Up):
		a.list.moveUp()

	case key.Matches(msg, a.keys.Down):
		a.list.moveDown()
	}

	return a, nil
}

// updateFilter handles keys while the filter input has focus. The list
// narrows live as the query changes.
func (a *App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.clearFilter()
		a.filter.blur()
		a.mode = modeList
		a.status.setState(barStateList)
		return a, nil

	case tea.KeyEnter:
		a.filter.blur()
		a.mode = modeList
		a.status.setState(barStateList)
		return a, nil
	}

	var cmd tea.Cmd
	a.filter, cmd = a.filter.update(msg)
	a.applyFilter()
	return a, cmd
}

// applyFilter narrows the list to the current filter text.
func (a *App) applyFilter() {
	query := a.filter.value()
	a.list.filter(query)
	a.status.setCounts(a.list.count(), len(a.report.Issues))
	a.status.setFilter(query)
}

// clearFilter resets the filter text and restores the full list.
func (a *App) clearFilter() {
	a.filter.reset()
	a.applyFilter()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	if len(a.report.Issues) == 0 {
		b.WriteString(a.styles.Success.Render(
			fmt.Sprintf("No issues. All %d section(s) grounded.", a.report.SectionCount)))
		b.WriteString("\n\n")
		b.WriteString(a.status.view())
		return b.String()
	}

	switch a.mode {
	case modeDetail:
		b.WriteString(a.renderDetail())
	case modeFilter, modeList:
		if a.mode == modeFilter || a.filter.value() != "" {
			b.WriteString(a.filter.view())
			b.WriteString("\n\n")
		}
		b.WriteString(a.list.view())
	}

	b.WriteString("\n\n")
	b.WriteString(a.status.view())

	return b.String()
}

// renderHeader renders the title and report metadata.
func (a *App) renderHeader() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Validation Issues"))
	b.WriteString("\n")

	meta := fmt.Sprintf("%s | mode %s", a.report.Root, a.report.Mode)
	if !a.report.GeneratedAt.IsZero() {
		meta += " | " + a.report.GeneratedAt.Format("2006-01-02 15:04")
	}
	b.WriteString(a.styles.Muted.Render(meta))
	b.WriteString("\n")

	return b.String()
}

// renderDetail renders the detail pane for the selected issue.
func (a *App) renderDetail() string {
	issue := a.list.selectedIssue()
	if issue == nil {
		return a.styles.Muted.Render("No issue selected")
	}

	var b strings.Builder
	b.WriteString(a.styles.Subtitle.Render(
		fmt.Sprintf("Issue %d of %d", a.list.selected+1, a.list.count())))
	b.WriteString("\n\n")

	b.WriteString(a.styles.Subtitle.Render("Section:  "))
	b.WriteString(a.styles.Normal.Render(issue.Section))
	b.WriteString("\n")

	b.WriteString(a.styles.Subtitle.Render("Sentence: "))
	b.WriteString(a.styles.Normal.Render(issue.Sentence))
	b.WriteString("\n")

	if len(issue.MissingTerms) > 0 {
		b.WriteString(a.styles.Subtitle.Render("Missing:  "))
		b.WriteString(a.styles.Error.Render(strings.Join(issue.MissingTerms, ", ")))
		b.WriteString("\n")
	}

	if issue.Detail != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render(issue.Detail))
		b.WriteString("\n")
	}

	width := a.width - 4
	if width > 76 {
		width = 76
	}
	if width < 20 {
		width = 20
	}
	return a.styles.Border.Width(width).Padding(0, 1).Render(b.String())
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	listHeight := height - chromeLines
	if listHeight < 1 {
		listHeight = 1
	}
	a.list.setDimensions(width, listHeight)
	a.filter.setWidth(width)
	a.status.setWidth(width)
}

// Report returns the report being browsed.
func (a *App) Report() *domain.ValidationReport {
	return a.report
}

// SelectedIndex returns the index of the selected issue in the visible list.
func (a *App) SelectedIndex() int {
	return a.list.selected
}
