package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the docgen version",
	Run: func(cmd *cobra.Command, _ []string) {
		if commit != "" {
			cmd.Printf("docgen version %s (commit %s)\n", version, commit)
			return
		}
		cmd.Printf("docgen version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
