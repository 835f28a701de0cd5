package cmd

import (
	"github.com/spf13/cobra"

	"github.com/edakit/pnrlens/internal/iocache"
	"github.com/edakit/pnrlens/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the pnrlens MCP server",
	Long:  `Launch an MCP server that allows AI agents to compare PnR runs and group timing paths via standard tools.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// No positional run dirs here; tools supply them per call.
		return sharedSetup(rootCtx, cmd, nil)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, reader, iocache.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
