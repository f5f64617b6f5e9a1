package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driving"
)

// BuildContextsInput is the input schema for the build_contexts tool.
type BuildContextsInput struct {
	Path     string   `json:"path,omitempty" jsonschema:"repository path to index (default: server working directory)"`
	Sections []string `json:"sections,omitempty" jsonschema:"section names to resolve context for (default: all canonical sections)"`
	TopK     int      `json:"top_k,omitempty" jsonschema:"maximum context snippets per section (default 3)"`
}

// BuildContextsOutput is the output schema for the build_contexts tool.
type BuildContextsOutput struct {
	Contexts     map[string][]string `json:"contexts"`
	StorePath    string              `json:"store_path"`
	FilesIndexed int                 `json:"files_indexed"`
	FilesSkipped int                 `json:"files_skipped"`
	PathsPruned  int                 `json:"paths_pruned"`
}

// SectionInput is one rendered README section to validate.
type SectionInput struct {
	Title    string         `json:"title,omitempty" jsonschema:"rendered section heading"`
	Body     string         `json:"body" jsonschema:"rendered markdown body to check"`
	Metadata map[string]any `json:"metadata,omitempty" jsonschema:"prompt-side metadata such as context snippets"`
}

// ValidateSectionsInput is the input schema for the validate_sections tool.
type ValidateSectionsInput struct {
	Path          string                  `json:"path,omitempty" jsonschema:"repository path to collect evidence from (default: server working directory)"`
	Sections      map[string]SectionInput `json:"sections" jsonschema:"rendered sections keyed by section name"`
	Mode          string                  `json:"mode,omitempty" jsonschema:"validation mode, strict or balanced (default balanced)"`
	AllowInferred *bool                   `json:"allow_inferred,omitempty" jsonschema:"override the mode's inferred-evidence policy"`
}

// IssueOutput represents a single ungrounded sentence.
type IssueOutput struct {
	Section      string   `json:"section"`
	Sentence     string   `json:"sentence"`
	MissingTerms []string `json:"missing_terms,omitempty"`
	Detail       string   `json:"detail,omitempty"`
}

// ValidateSectionsOutput is the output schema for the validate_sections tool.
type ValidateSectionsOutput struct {
	Issues []IssueOutput `json:"issues"`
	Count  int           `json:"count"`
}

// RepoSignalsInput is the input schema for the repo_signals tool.
type RepoSignalsInput struct {
	Path string `json:"path,omitempty" jsonschema:"repository path to analyze (default: server working directory)"`
}

// SignalOutput represents a single analyzer signal.
type SignalOutput struct {
	Name     string         `json:"name"`
	Value    string         `json:"value"`
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RepoSignalsOutput is the output schema for the repo_signals tool.
type RepoSignalsOutput struct {
	Signals []SignalOutput `json:"signals"`
	Count   int            `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_contexts",
		Description: "Build the embedding index for a repository and return context snippets per README section",
	}, s.handleBuildContexts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_sections",
		Description: "Check rendered README sections against repository evidence and report ungrounded sentences",
	}, s.handleValidateSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "repo_signals",
		Description: "Run the repository analyzers and return their signals",
	}, s.handleRepoSignals)
}

// handleBuildContexts handles the build_contexts tool invocation.
func (s *Server) handleBuildContexts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildContextsInput,
) (*mcp.CallToolResult, BuildContextsOutput, error) {
	root := input.Path
	if root == "" {
		root = "."
	}

	result, err := s.ports.Context.BuildContexts(ctx, root, input.Sections)
	if err != nil {
		return nil, BuildContextsOutput{}, err
	}

	// The builder returns up to three snippets per section; top_k only
	// ever narrows that.
	contexts := result.Contexts
	if input.TopK > 0 {
		trimmed := make(map[string][]string, len(contexts))
		for section, snippets := range contexts {
			if len(snippets) > input.TopK {
				snippets = snippets[:input.TopK]
			}
			trimmed[section] = snippets
		}
		contexts = trimmed
	}

	return nil, BuildContextsOutput{
		Contexts:     contexts,
		StorePath:    result.StorePath,
		FilesIndexed: result.FilesIndexed,
		FilesSkipped: result.FilesSkipped,
		PathsPruned:  result.PathsPruned,
	}, nil
}

// handleValidateSections handles the validate_sections tool invocation.
func (s *Server) handleValidateSections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateSectionsInput,
) (*mcp.CallToolResult, ValidateSectionsOutput, error) {
	root := input.Path
	if root == "" {
		root = "."
	}

	mode := domain.ModeBalanced
	if raw := strings.TrimSpace(input.Mode); raw != "" {
		mode = domain.NormalizeMode(strings.ToLower(raw))
	}

	names := make([]string, 0, len(input.Sections))
	for name := range input.Sections {
		names = append(names, name)
	}

	sections := make([]domain.Section, 0, len(names))
	for _, name := range domain.OrderSectionNames(names) {
		payload := input.Sections[name]
		sections = append(sections, domain.Section{
			Name:     name,
			Title:    payload.Title,
			Body:     payload.Body,
			Metadata: domain.MetaMapFromAny(payload.Metadata),
		})
	}

	signals, err := s.ports.Signals.Collect(ctx, root)
	if err != nil {
		return nil, ValidateSectionsOutput{}, fmt.Errorf("collecting signals: %w", err)
	}

	issues := s.ports.Validation.Validate(driving.ValidationRequest{
		Sections:      sections,
		Signals:       signals,
		Mode:          mode,
		AllowInferred: input.AllowInferred,
	})

	output := ValidateSectionsOutput{
		Issues: make([]IssueOutput, len(issues)),
		Count:  len(issues),
	}
	for i := range issues {
		output.Issues[i] = IssueOutput{
			Section:      issues[i].Section,
			Sentence:     issues[i].Sentence,
			MissingTerms: issues[i].MissingTerms,
			Detail:       issues[i].Detail,
		}
	}

	return nil, output, nil
}

// handleRepoSignals handles the repo_signals tool invocation.
func (s *Server) handleRepoSignals(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RepoSignalsInput,
) (*mcp.CallToolResult, RepoSignalsOutput, error) {
	root := input.Path
	if root == "" {
		root = "."
	}

	signals, err := s.ports.Signals.Collect(ctx, root)
	if err != nil {
		return nil, RepoSignalsOutput{}, err
	}

	output := RepoSignalsOutput{
		Signals: make([]SignalOutput, len(signals)),
		Count:   len(signals),
	}
	for i := range signals {
		output.Signals[i] = SignalOutput{
			Name:     signals[i].Name,
			Value:    signals[i].Value,
			Source:   signals[i].Source,
			Metadata: signals[i].Metadata.ToAny(),
		}
	}

	return nil, output, nil
}
