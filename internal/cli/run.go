package cli

import (
	"errors"
	"fmt"

	"github.com/drapaimern/msbee/internal/core"
	"github.com/drapaimern/msbee/internal/observability"
	"github.com/drapaimern/msbee/internal/storage"
	"github.com/spf13/cobra"
)

var (
	runDateFlag string
	runDryRun   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate today's briefing and write it into the daily note",
	Long: `Run the full pipeline: stamp identifiers onto open tasks, extract the
tasks eligible for the reference date, ask the summarizer for a briefing, and
rewrite the msbee section of the daily note.

Requires OPENAI_API_KEY to be set. With --dry-run the briefing is printed to
stdout and no daily note is written (task IDs are still stamped).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Briefer == nil {
			return fmt.Errorf("missing OPENAI_API_KEY environment variable")
		}

		date, err := parseDateFlag(runDateFlag)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}

		observability.Emit(EventLog, "INFO", observability.EventRunStarted, "run started",
			map[string]any{"date": date.Format("2006-01-02"), "dry_run": runDryRun})

		updated, err := Vault.UpdateNotes(func(lines []string) ([]string, bool) {
			return core.StampTaskIDs(lines, IDGen)
		})
		if err != nil {
			return fmt.Errorf("stamping task IDs: %w", err)
		}
		for _, path := range updated {
			fmt.Printf("Updated: %s\n", path)
		}
		observability.Emit(EventLog, "INFO", observability.EventVaultStamped, "task IDs stamped",
			map[string]any{"files_updated": len(updated)})

		tasks, err := Extractor.ExtractTasks(date)
		if err != nil {
			return fmt.Errorf("extracting tasks: %w", err)
		}
		observability.Emit(EventLog, "INFO", observability.EventTasksExtracted, "eligible tasks extracted",
			map[string]any{"count": len(tasks)})

		roadmap, err := storage.ReadRoadmap(Cfg)
		if err != nil {
			return fmt.Errorf("reading roadmap: %w", err)
		}

		briefing, err := Briefer.GenerateBriefing(cmd.Context(), tasks, roadmap)
		if err != nil {
			return fmt.Errorf("generating briefing: %w", err)
		}
		observability.Emit(EventLog, "INFO", observability.EventSummarizer, "summarizer reply composed", nil)

		if runDryRun {
			fmt.Println(briefing)
			return nil
		}

		if err := Notes.UpdateNote(briefing, date); err != nil {
			if errors.Is(err, storage.ErrDailyNoteNotFound) {
				// Non-fatal: the vault simply has no daily note for this
				// date yet.
				fmt.Println(err.Error())
				observability.Emit(EventLog, "WARN", observability.EventNoteMissing, err.Error(), nil)
				return nil
			}
			return fmt.Errorf("updating daily note: %w", err)
		}

		fmt.Printf("MsBee section updated in: %s\n", Notes.NotePath(date))
		observability.Emit(EventLog, "INFO", observability.EventNoteUpdated, "daily note updated",
			map[string]any{"path": Notes.NotePath(date)})
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runDateFlag, "date", "", "reference date (YYYY-MM-DD, default today)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print the briefing instead of writing the daily note")
	rootCmd.AddCommand(runCmd)
}
