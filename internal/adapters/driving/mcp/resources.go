package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docgen resources.
	uriScheme = "docgen://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing canonical sections.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sections",
		Name:        "sections",
		Description: "Canonical README sections and the chunk tags they draw context from",
		MIMEType:    "application/json",
	}, s.handleSectionsResource)

	// Template for a single section.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sections/{section}",
		Name:        "section-tags",
		Description: "Chunk tags for a specific README section",
		MIMEType:    "application/json",
	}, s.handleSectionResource)

	// Static resource for validation modes.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "modes",
		Name:        "modes",
		Description: "Available validation modes and their evidence policies",
		MIMEType:    "application/json",
	}, s.handleModesResource)
}

// sectionInfo is the serialised form of one canonical section.
type sectionInfo struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// handleSectionsResource returns the canonical sections with their tags.
func (s *Server) handleSectionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sections := domain.DefaultSections()
	infos := make([]sectionInfo, len(sections))
	for i, name := range sections {
		infos[i] = sectionInfo{
			Name: name,
			Tags: domain.SectionTagsFor(name),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sections: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSectionResource returns the tags for one section.
func (s *Server) handleSectionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract the section name from URI: docgen://sections/{section}
	name := extractSectionName(req.Params.URI)
	if name == "" || !domain.KnownSection(name) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	info := sectionInfo{
		Name: name,
		Tags: domain.SectionTagsFor(name),
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling section: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleModesResource returns the available validation modes.
func (s *Server) handleModesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type modeInfo struct {
		Mode        string `json:"mode"`
		Description string `json:"description"`
	}

	modes := domain.AllValidationModes()
	infos := make([]modeInfo, len(modes))
	for i, mode := range modes {
		infos[i] = modeInfo{
			Mode:        mode.String(),
			Description: mode.Description(),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling modes: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSectionName extracts the section name from a URI like docgen://sections/{section}.
func extractSectionName(uri string) string {
	const prefix = uriScheme + "sections/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if name == "" || strings.Contains(name, "/") {
		return ""
	}
	return name
}
