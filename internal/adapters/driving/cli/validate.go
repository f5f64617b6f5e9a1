package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driving"
)

var (
	validateMode          string
	validateAllowInferred bool
	validateJSON          bool
	validateReportPath    string
)

var validateCmd = &cobra.Command{
	Use:   "validate <sections-file> [path]",
	Short: "Check rendered README sections against repository evidence",
	Long: `Loads rendered sections from a JSON file, collects analyzer signals
from the repository, and checks every sentence for grounding.

The sections file holds either an object keyed by section name or an
array of section objects. Each section carries "title", "body", and
optional "metadata"; context snippets are read from metadata under the
"context" key.

The command exits non-zero when ungrounded sentences are found.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateMode, "mode", "", "validation mode: strict or balanced (default: configured mode)")
	validateCmd.Flags().BoolVar(&validateAllowInferred, "allow-inferred", false, "accept analyzer-only evidence regardless of mode")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output issues as JSON")
	validateCmd.Flags().StringVar(&validateReportPath, "report", "", "write a validation report to this file")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	sections, err := loadSectionsFile(args[0])
	if err != nil {
		return err
	}

	root, err := resolveRoot(args, 1)
	if err != nil {
		return err
	}

	services, err := buildServices(root, ServiceOverrides{})
	if err != nil {
		return err
	}

	signals, err := services.Signals.Collect(cmd.Context(), root)
	if err != nil {
		return fmt.Errorf("collect signals: %w", err)
	}

	settings := services.Settings.Settings()

	mode := settings.Validation.Mode
	if validateMode != "" {
		mode = domain.ValidationMode(strings.ToLower(strings.TrimSpace(validateMode)))
		if !mode.IsValid() {
			return fmt.Errorf("%w: unknown mode %q (expected strict or balanced)", domain.ErrInvalidInput, validateMode)
		}
	}

	allowInferred := settings.Validation.AllowInferred
	if cmd.Flags().Changed("allow-inferred") {
		allowInferred = &validateAllowInferred
	}

	issues := services.Validator.Validate(driving.ValidationRequest{
		Sections:      sections,
		Signals:       signals,
		Mode:          mode,
		AllowInferred: allowInferred,
		MinOverlap:    settings.Validation.MinOverlap,
	})

	if validateReportPath != "" {
		if err := writeValidationReport(validateReportPath, root, mode, len(sections), issues); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if validateJSON {
		if err := printIssuesJSON(cmd, issues); err != nil {
			return err
		}
	} else {
		printIssues(cmd, len(sections), issues)
	}

	if len(issues) > 0 {
		return fmt.Errorf("%d ungrounded sentence(s) found", len(issues))
	}
	return nil
}

// sectionPayload is the JSON shape of one rendered section on disk.
type sectionPayload struct {
	Name     string         `json:"name"`
	Title    string         `json:"title"`
	Body     string         `json:"body"`
	Metadata map[string]any `json:"metadata"`
}

// loadSectionsFile reads rendered sections from path. An object keyed
// by section name is reordered canonically so repeated runs see the
// same sequence; an array is taken as-is.
func loadSectionsFile(path string) ([]domain.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sections file: %w", err)
	}

	var list []sectionPayload
	if err := json.Unmarshal(data, &list); err == nil {
		return sectionsFromPayloads(list)
	}

	var keyed map[string]sectionPayload
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("parse sections file %s: %w", path, err)
	}

	names := make([]string, 0, len(keyed))
	for name := range keyed {
		names = append(names, name)
	}

	list = make([]sectionPayload, 0, len(keyed))
	for _, name := range domain.OrderSectionNames(names) {
		payload := keyed[name]
		payload.Name = name
		list = append(list, payload)
	}
	return sectionsFromPayloads(list)
}

func sectionsFromPayloads(payloads []sectionPayload) ([]domain.Section, error) {
	sections := make([]domain.Section, 0, len(payloads))
	for i, payload := range payloads {
		if strings.TrimSpace(payload.Name) == "" {
			return nil, fmt.Errorf("%w: section %d has no name", domain.ErrInvalidInput, i)
		}
		sections = append(sections, domain.Section{
			Name:     payload.Name,
			Title:    payload.Title,
			Body:     payload.Body,
			Metadata: domain.MetaMapFromAny(payload.Metadata),
		})
	}
	return sections, nil
}

func writeValidationReport(path, root string, mode domain.ValidationMode, sectionCount int, issues []domain.ValidationIssue) error {
	if issues == nil {
		issues = []domain.ValidationIssue{}
	}

	report := domain.ValidationReport{
		ID:           uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Root:         root,
		Mode:         mode,
		SectionCount: sectionCount,
		Issues:       issues,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func printIssuesJSON(cmd *cobra.Command, issues []domain.ValidationIssue) error {
	if issues == nil {
		issues = []domain.ValidationIssue{}
	}

	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal issues: %w", err)
	}

	cmd.Println(string(data))
	return nil
}

func printIssues(cmd *cobra.Command, sectionCount int, issues []domain.ValidationIssue) {
	if len(issues) == 0 {
		cmd.Printf("All %d section(s) grounded.\n", sectionCount)
		return
	}

	cmd.Println("Validation Issues")
	cmd.Println("=================")
	cmd.Println()

	for i, issue := range issues {
		cmd.Printf("%d. [%s] %s\n", i+1, issue.Section, issue.Sentence)
		if len(issue.MissingTerms) > 0 {
			cmd.Printf("   missing: %s\n", strings.Join(issue.MissingTerms, ", "))
		}
		if issue.Detail != "" {
			cmd.Printf("   %s\n", issue.Detail)
		}
		cmd.Println()
	}

	cmd.Printf("%d section(s) checked, %d issue(s) found.\n", sectionCount, len(issues))
}
