package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var tasksDateFlag string

// Styles for the task listing.
var (
	taskHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	taskTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	taskIDStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	taskPathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	taskEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the tasks eligible for a given date",
	Long: `Scan the vault and list every task actionable on the reference date:
not completed anywhere, not future-dated, and with no recorded dependencies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(tasksDateFlag)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}

		tasks, err := Extractor.ExtractTasks(date)
		if err != nil {
			return fmt.Errorf("extracting tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println(taskEmptyStyle.Render("No eligible tasks for " + date.Format("2006-01-02") + "."))
			return nil
		}

		fmt.Println(taskHeaderStyle.Render(fmt.Sprintf("Eligible tasks for %s (%d):", date.Format("2006-01-02"), len(tasks))))
		for _, t := range tasks {
			line := "  - " + taskTextStyle.Render(t.RawText)
			if t.ID != "" {
				line += " " + taskIDStyle.Render("["+t.ID+"]")
			}
			line += " " + taskPathStyle.Render("("+t.Location+")")
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	tasksCmd.Flags().StringVar(&tasksDateFlag, "date", "", "reference date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(tasksCmd)
}
