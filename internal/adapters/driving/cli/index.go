package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driving"
)

var (
	indexSections []string
	indexStore    string
	indexTopK     int
	indexJSON     bool
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build the context index for a repository",
	Long: `Scans the repository, chunks and embeds README, docs, and source
files, and persists the per-section context store.

Unchanged files are skipped by content hash and deleted files are
pruned, so repeated runs only pay for what changed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringSliceVar(&indexSections, "sections", nil, "sections to resolve (default: configured sections)")
	indexCmd.Flags().StringVar(&indexStore, "store", "", "chunk store path, relative to the repository")
	indexCmd.Flags().IntVarP(&indexTopK, "top-k", "k", 0, "cap context snippets per section")
	indexCmd.Flags().BoolVar(&indexJSON, "json", false, "output contexts as JSON")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args, 0)
	if err != nil {
		return err
	}

	services, err := buildServices(root, ServiceOverrides{StorePath: indexStore})
	if err != nil {
		return err
	}

	sections := indexSections
	if len(sections) == 0 {
		sections = services.Settings.Settings().Index.Sections
	}
	if len(sections) == 0 {
		sections = domain.DefaultSections()
	}

	result, err := services.Contexts.BuildContexts(cmd.Context(), root, sections)
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}

	// The builder returns up to three snippets per section; --top-k
	// only ever narrows that.
	if indexTopK > 0 {
		for section, snippets := range result.Contexts {
			if len(snippets) > indexTopK {
				result.Contexts[section] = snippets[:indexTopK]
			}
		}
	}

	if indexJSON {
		return printIndexJSON(cmd, root, result)
	}

	printIndexSummary(cmd, root, sections, result)
	return nil
}

func printIndexJSON(cmd *cobra.Command, root string, result *driving.ContextResult) error {
	out := struct {
		Root         string              `json:"root"`
		StorePath    string              `json:"store_path"`
		FilesIndexed int                 `json:"files_indexed"`
		FilesSkipped int                 `json:"files_skipped"`
		PathsPruned  int                 `json:"paths_pruned"`
		Contexts     map[string][]string `json:"contexts"`
	}{
		Root:         root,
		StorePath:    result.StorePath,
		FilesIndexed: result.FilesIndexed,
		FilesSkipped: result.FilesSkipped,
		PathsPruned:  result.PathsPruned,
		Contexts:     result.Contexts,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	cmd.Println(string(data))
	return nil
}

func printIndexSummary(cmd *cobra.Command, root string, sections []string, result *driving.ContextResult) {
	cmd.Printf("Index built for %s\n", root)
	cmd.Println()
	cmd.Printf("  Files indexed: %d\n", result.FilesIndexed)
	cmd.Printf("  Files skipped: %d\n", result.FilesSkipped)
	cmd.Printf("  Paths pruned:  %d\n", result.PathsPruned)
	cmd.Printf("  Store:         %s\n", result.StorePath)
	cmd.Println()

	for _, section := range sections {
		cmd.Printf("[%s]\n", section)
		snippets := result.Contexts[section]
		if len(snippets) == 0 {
			cmd.Println("  (no context)")
			continue
		}
		for _, snippet := range snippets {
			cmd.Printf("  - %s\n", truncate(snippet, 96))
		}
	}
}
