package cmd

import (
	"github.com/huangsam/worklog/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the worklog MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents build work digests and
summaries through the get_work_digest and summarize_work tools.

Repositories, branches and authors from the config file are the defaults for every
tool call; each call may override them.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}
