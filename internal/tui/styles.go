package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/sqrace/internal/ui"
)

// Style variables for the TUI.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle       lipgloss.Style
	titleStyle       lipgloss.Style
	runnerNameStyle  lipgloss.Style
	statLineStyle    lipgloss.Style
	statusWaitStyle  lipgloss.Style
	statusRunStyle   lipgloss.Style
	statusDoneStyle  lipgloss.Style
	statusErrStyle   lipgloss.Style
	summaryStyle     lipgloss.Style
	summaryLineStyle lipgloss.Style
	footerStyle      lipgloss.Style
	sysStatsStyle    lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	runnerNameStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info)

	statLineStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusWaitStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusRunStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusErrStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	summaryStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	summaryLineStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	footerStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	sysStatsStyle = lipgloss.NewStyle().
		Foreground(t.Warning)
}
