package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Saechaoc/docgen/internal/adapters/driving/tui"
	"github.com/Saechaoc/docgen/internal/core/domain"
)

var issuesPlain bool

var issuesCmd = &cobra.Command{
	Use:   "issues <report-file>",
	Short: "Browse a validation report",
	Long: `Opens the interactive issue browser over a report written by
'docgen validate --report'. Outside a terminal, or with --plain, issues
are listed as text instead.

Controls:
  ↑/k, ↓/j - Navigate issues
  /        - Filter by section or text
  Enter    - Show issue detail
  Esc      - Back / Clear filter
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runIssues,
}

func init() {
	issuesCmd.Flags().BoolVar(&issuesPlain, "plain", false, "list issues without the interactive browser")
	rootCmd.AddCommand(issuesCmd)
}

func runIssues(cmd *cobra.Command, args []string) error {
	report, err := loadReportFile(args[0])
	if err != nil {
		return err
	}

	if issuesPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		printReport(cmd, report)
		return nil
	}

	// Panic recovery keeps the terminal usable and surfaces the trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in issue browser: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app := tui.NewApp(report)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("issue browser error: %w", err)
	}

	return nil
}

func loadReportFile(path string) (*domain.ValidationReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}

	var report domain.ValidationReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report file %s: %w", path, err)
	}
	return &report, nil
}

func printReport(cmd *cobra.Command, report *domain.ValidationReport) {
	cmd.Printf("Report %s\n", report.ID)
	cmd.Printf("  Generated: %s\n", report.GeneratedAt.Format(time.RFC3339))
	cmd.Printf("  Root:      %s\n", report.Root)
	cmd.Printf("  Mode:      %s\n", report.Mode)
	cmd.Println()

	if len(report.Issues) == 0 {
		cmd.Printf("No issues. All %d section(s) grounded.\n", report.SectionCount)
		return
	}

	for i, issue := range report.Issues {
		cmd.Printf("%d. [%s] %s\n", i+1, issue.Section, issue.Sentence)
		if len(issue.MissingTerms) > 0 {
			cmd.Printf("   missing: %s\n", strings.Join(issue.MissingTerms, ", "))
		}
		if issue.Detail != "" {
			cmd.Printf("   %s\n", issue.Detail)
		}
	}

	cmd.Printf("\n%d issue(s) across %d section(s).\n", len(report.Issues), report.SectionCount)
}
