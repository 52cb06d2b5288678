package cli

import (
	"fmt"

	"github.com/drapaimern/msbee/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run msbee as an MCP server on stdio",
	Long: `Expose vault operations (list_eligible_tasks, stamp_task_ids,
update_daily_note) as MCP tools over stdio, for use by AI assistants.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(Extractor, Vault, Notes, IDGen, appVersion)
		if err := server.Run(cmd.Context()); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
