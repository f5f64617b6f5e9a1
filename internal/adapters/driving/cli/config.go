package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configListJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage repository configuration",
	Long: `View and change .docgen.toml settings for a repository.

Keys are dot-separated (e.g. validation.mode, index.store_path). List
values take comma-separated input. Unset keys report their resolved
defaults.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List every setting with its current value",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key> [path]",
	Short: "Print the effective value of one setting",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value> [path]",
	Short: "Store one setting in the repository config",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runConfigSet,
}

func init() {
	configListCmd.Flags().BoolVar(&configListJSON, "json", false, "output settings as JSON")
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args, 0)
	if err != nil {
		return err
	}

	services, err := buildServices(root, ServiceOverrides{})
	if err != nil {
		return err
	}

	entries := services.Settings.Entries()

	if configListJSON {
		out := make(map[string]string, len(entries))
		for _, entry := range entries {
			out[entry.Key] = entry.Value
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Configuration (%s)\n", services.Settings.Path())
	cmd.Println()
	for _, entry := range entries {
		cmd.Printf("  %-26s %s\n", entry.Key, entry.Value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	root, err := resolveRoot(args, 1)
	if err != nil {
		return err
	}

	services, err := buildServices(root, ServiceOverrides{})
	if err != nil {
		return err
	}

	value, ok := services.Settings.Get(key)
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}

	cmd.Println(renderConfigValue(value))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	root, err := resolveRoot(args, 2)
	if err != nil {
		return err
	}

	services, err := buildServices(root, ServiceOverrides{})
	if err != nil {
		return err
	}

	if err := services.Settings.Set(key, value); err != nil {
		return err
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

// renderConfigValue turns an effective setting value into display text.
func renderConfigValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, renderConfigValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
