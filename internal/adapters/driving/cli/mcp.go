package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recetasu/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can browse,
edit and review recipes.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead. Browser-based clients such as
the MCP Inspector must be listed with --cors-origin unless they run on
localhost.

Examples:
  # Stdio mode (default, for desktop assistants)
  recetasu mcp serve

  # HTTP mode
  recetasu mcp serve --port 8080 --cors-origin https://inspector.example.com

Desktop assistant configuration:
  {
    "mcpServers": {
      "recetasu": {
        "command": "/path/to/recetasu",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringArray("cors-origin", nil, "origin allowed to call the HTTP server (repeatable)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	origins, err := cmd.Flags().GetStringArray("cors-origin")
	if err != nil {
		return fmt.Errorf("getting cors-origin flag: %w", err)
	}
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ports := &mcp.Ports{
		Catalog:  catalogService,
		Comments: commentService,
	}

	server, err := mcp.NewServer(ports, mcp.WithCORSOrigins(origins))
	if err != nil {
		return err
	}

	watchConfig(cmd.Context())

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
