package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/vcprompt/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server communicates over stdio and provides the vcs_status tool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := setupSignalHandler()

		server := mcp.NewServer(statusService, Version)
		defer server.Stop()

		logger.Info("starting MCP server on stdio")
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
