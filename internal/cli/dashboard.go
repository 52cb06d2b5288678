package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drapaimern/msbee/internal/observability"
	"github.com/drapaimern/msbee/pkg/models"
	"github.com/spf13/cobra"
)

// Dashboard panel indices.
const (
	panelEligible = iota
	panelRuns
	panelCount
)

// recentEventCount is how many run-log entries the runs panel shows.
const recentEventCount = 12

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	today  time.Time
	tasks  []*models.Task
	events []observability.Event

	// State.
	loading bool
	err     error
}

// dashDataMsg carries loaded data back to the model.
type dashDataMsg struct {
	tasks  []*models.Task
	events []observability.Event
	err    error
}

// Style definitions.
var (
	dashTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("58")).
			Padding(0, 1)

	dashPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	dashActivePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("220")).
				Padding(1, 2)

	dashHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")).
			MarginBottom(1)

	dashIDStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	dashPathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dashWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	dashErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dashHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel(today time.Time) dashboardModel {
	return dashboardModel{
		activePanel: panelEligible,
		today:       today,
		loading:     true,
	}
}

func loadDashboardData(today time.Time) tea.Cmd {
	return func() tea.Msg {
		tasks, err := Extractor.ExtractTasks(today)
		if err != nil {
			return dashDataMsg{err: err}
		}
		var events []observability.Event
		if EventLog != nil {
			events, err = EventLog.Recent(recentEventCount)
			if err != nil {
				return dashDataMsg{err: err}
			}
		}
		return dashDataMsg{tasks: tasks, events: events}
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadDashboardData(m.today)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadDashboardData(m.today)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashDataMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.tasks = msg.tasks
		m.events = msg.events
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := dashTitleStyle.Render(fmt.Sprintf(" MsBee %s ", m.today.Format("2006-01-02")))
	help := dashHelpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading vault...\n\n%s", title, help)
	}
	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	eligiblePanel := m.renderEligiblePanel()
	runsPanel := m.renderRunsPanel()

	availableWidth := m.width - 2
	var body string
	if availableWidth > 100 {
		colWidth := availableWidth / 2
		eligiblePanel = m.applyPanelStyle(panelEligible, eligiblePanel, colWidth-4)
		runsPanel = m.applyPanelStyle(panelRuns, runsPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, eligiblePanel, runsPanel)
	} else {
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		eligiblePanel = m.applyPanelStyle(panelEligible, eligiblePanel, panelWidth)
		runsPanel = m.applyPanelStyle(panelRuns, runsPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, eligiblePanel, runsPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := dashPanelStyle
	if m.activePanel == panel {
		style = dashActivePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderEligiblePanel() string {
	var b strings.Builder
	b.WriteString(dashHeaderStyle.Render("Eligible tasks"))
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString("  Nothing actionable today.")
		return b.String()
	}

	for _, t := range m.tasks {
		line := "  - " + t.RawText
		if t.ID != "" {
			line += " " + dashIDStyle.Render("["+t.ID+"]")
		}
		b.WriteString(line + "\n")
		b.WriteString("    " + dashPathStyle.Render(t.Location) + "\n")
	}
	b.WriteString(fmt.Sprintf("\n  Total: %d", len(m.tasks)))

	return b.String()
}

func (m dashboardModel) renderRunsPanel() string {
	var b strings.Builder
	b.WriteString(dashHeaderStyle.Render("Recent runs"))
	b.WriteString("\n")

	if len(m.events) == 0 {
		b.WriteString("  No runs recorded yet.")
		return b.String()
	}

	for _, ev := range m.events {
		stamp := ev.Time.Format("01-02 15:04")
		msg := ev.Message
		switch ev.Level {
		case "WARN":
			msg = dashWarnStyle.Render(msg)
		case "ERROR":
			msg = dashErrorStyle.Render(msg)
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", dashPathStyle.Render(stamp), msg))
	}

	return b.String()
}

var dashboardDateFlag string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive view of eligible tasks and recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(dashboardDateFlag)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
		p := tea.NewProgram(newDashboardModel(date), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardDateFlag, "date", "", "reference date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(dashboardCmd)
}
