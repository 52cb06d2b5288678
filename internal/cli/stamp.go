package cli

import (
	"fmt"

	"github.com/drapaimern/msbee/internal/core"
	"github.com/drapaimern/msbee/internal/observability"
	"github.com/spf13/cobra"
)

var stampCmd = &cobra.Command{
	Use:   "stamp",
	Short: "Assign identifiers to open tasks that lack one",
	Long: `Scan every note in the vault and splice a 6-character identifier onto each
open task line that does not already carry one. Files where nothing changed
are not rewritten, so re-running on a fully stamped vault is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		updated, err := Vault.UpdateNotes(func(lines []string) ([]string, bool) {
			return core.StampTaskIDs(lines, IDGen)
		})
		if err != nil {
			return fmt.Errorf("stamping task IDs: %w", err)
		}

		for _, path := range updated {
			fmt.Printf("Updated: %s\n", path)
		}
		if len(updated) == 0 {
			fmt.Println("All open tasks already have identifiers.")
		} else {
			fmt.Printf("%d file(s) updated.\n", len(updated))
		}
		observability.Emit(EventLog, "INFO", observability.EventVaultStamped, "task IDs stamped",
			map[string]any{"files_updated": len(updated)})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stampCmd)
}
