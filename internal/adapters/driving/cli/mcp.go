package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Saechaoc/docgen/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Expose index building, validation, and repository signals over the Model Context Protocol.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve docgen's tools to MCP clients.

The server speaks JSON-RPC over stdio by default so clients can launch
the binary directly. Tools take a repository path per call; configuration
is read from the directory the server starts in.

With --port the server listens on HTTP instead, which suits the MCP
Inspector and remote clients.

Examples:
  # stdio transport
  docgen mcp serve

  # HTTP transport
  docgen mcp serve --port 8080

Client configuration for stdio transport:
  {
    "mcpServers": {
      "docgen": {
        "command": "/path/to/docgen",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	root, err := resolveRoot(nil, 0)
	if err != nil {
		return err
	}

	services, err := buildServices(root, ServiceOverrides{})
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Context:    services.Contexts,
		Validation: services.Validator,
		Signals:    services.Signals,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
