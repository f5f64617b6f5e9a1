package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Saechaoc/docgen/internal/core/domain"
)

var signalsJSON bool

var signalsCmd = &cobra.Command{
	Use:   "signals [path]",
	Short: "Run repository analyzers and print their signals",
	Long: `Scans the repository and runs the registered analyzers (language,
dependencies, build) over the file manifest. Cached analyzer output is
reused when the tree is unchanged.

Signal metadata is included in the JSON output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSignals,
}

func init() {
	signalsCmd.Flags().BoolVar(&signalsJSON, "json", false, "output signals as JSON")
	rootCmd.AddCommand(signalsCmd)
}

func runSignals(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args, 0)
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

	if signalsJSON {
		return printSignalsJSON(cmd, signals)
	}

	printSignalsTable(cmd, signals)
	return nil
}

func printSignalsJSON(cmd *cobra.Command, signals []domain.Signal) error {
	type signalOutput struct {
		Name     string         `json:"name"`
		Value    string         `json:"value"`
		Source   string         `json:"source"`
		Metadata map[string]any `json:"metadata,omitempty"`
	}

	out := make([]signalOutput, 0, len(signals))
	for _, signal := range signals {
		out = append(out, signalOutput{
			Name:     signal.Name,
			Value:    signal.Value,
			Source:   signal.Source,
			Metadata: signal.Metadata.ToAny(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal signals: %w", err)
	}

	cmd.Println(string(data))
	return nil
}

func printSignalsTable(cmd *cobra.Command, signals []domain.Signal) {
	if len(signals) == 0 {
		cmd.Println("No signals detected.")
		return
	}

	cmd.Printf("%-32s %-32s %s\n", "NAME", "VALUE", "SOURCE")
	for _, signal := range signals {
		value := signal.Value
		if value == "" {
			value = "-"
		}
		cmd.Printf("%-32s %-32s %s\n", signal.Name, truncate(value, 32), signal.Source)
	}

	cmd.Printf("\n%d signal(s).\n", len(signals))
}
