package cmd

import (
	"github.com/huangsam/divrank/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [data-file]",
	Short: "Start the divrank MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents rank institutions and list states and metrics.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Tools suppress the ranking header themselves so stdio stays protocol-only.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
