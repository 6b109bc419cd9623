package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/sqrace/internal/config"
	apperrors "github.com/agbru/sqrace/internal/errors"
	"github.com/agbru/sqrace/internal/format"
	"github.com/agbru/sqrace/internal/metrics"
	"github.com/agbru/sqrace/internal/orchestration"
	"github.com/agbru/sqrace/internal/sysmon"
	"github.com/agbru/sqrace/internal/workload"
)

// progressBarWidth is the character width of each runner's progress bar.
const progressBarWidth = 40

// KeyMap defines the TUI key bindings.
type KeyMap struct {
	Quit    key.Binding
	Restart key.Binding
}

// DefaultKeyMap returns the standard key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
	}
}

// runnerState tracks the live display state of one runner.
type runnerState struct {
	name       string
	bar        bprogress.Model
	completed  int
	total      int
	fraction   float64
	throughput float64
	eta        time.Duration
	running    bool
	finished   bool
}

// Model is the root bubbletea model for the TUI.
type Model struct {
	states  []runnerState
	results []orchestration.RunResult
	runErr  error

	keymap KeyMap

	ctx        context.Context
	cancel     context.CancelFunc
	parentCtx  context.Context
	runners    []workload.Runner
	runMetrics *metrics.RunMetrics
	config     config.AppConfig
	version    string
	ref        *programRef

	generation uint64
	startTime  time.Time
	width      int
	done       bool
	exitCode   int

	cpuPercent float64
	memPercent float64
}

// NewModel creates a new TUI model.
func NewModel(parentCtx context.Context, runners []workload.Runner, cfg config.AppConfig, version string, runMetrics *metrics.RunMetrics) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	return Model{
		states:     newRunnerStates(runners, cfg.Count),
		keymap:     DefaultKeyMap(),
		ctx:        ctx,
		cancel:     cancel,
		parentCtx:  parentCtx,
		runners:    runners,
		runMetrics: runMetrics,
		config:     cfg,
		version:    version,
		ref:        &programRef{},
		startTime:  time.Now(),
		exitCode:   apperrors.ExitSuccess,
	}
}

func newRunnerStates(runners []workload.Runner, total int) []runnerState {
	states := make([]runnerState, len(runners))
	for i, r := range runners {
		states[i] = runnerState{
			name:  r.Name(),
			bar:   bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithWidth(progressBarWidth)),
			total: total,
		}
	}
	return states
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunsCmd(m.ref, m.ctx, m.runners, m.config, m.runMetrics, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ProgressMsg:
		if msg.RunnerIndex >= 0 && msg.RunnerIndex < len(m.states) {
			s := &m.states[msg.RunnerIndex]
			s.running = true
			s.completed = msg.Completed
			s.total = msg.Total
			s.fraction = msg.Fraction
			s.throughput = msg.Throughput
			s.eta = msg.ETA
		}
		return m, nil

	case ProgressDoneMsg:
		if msg.RunnerIndex >= 0 && msg.RunnerIndex < len(m.states) {
			s := &m.states[msg.RunnerIndex]
			s.running = false
			s.finished = true
			s.fraction = 1.0
		}
		return m, nil

	case ComparisonResultsMsg:
		m.results = msg.Results
		return m, nil

	case ErrorMsg:
		m.runErr = msg.Err
		return m, nil

	case RunsCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous session
		}
		m.done = true
		m.exitCode = msg.ExitCode
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		return m, tea.Quit

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.cpuPercent = msg.CPUPercent
		m.memPercent = msg.MemPercent
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Restart):
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.states = newRunnerStates(m.runners, m.config.Count)
		m.results = nil
		m.runErr = nil
		m.done = false
		m.exitCode = apperrors.ExitSuccess
		m.startTime = time.Now()

		return m, tea.Batch(
			tickCmd(),
			startRunsCmd(m.ref, m.ctx, m.runners, m.config, m.runMetrics, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}

	return m, nil
}

// View renders the runner panels, the summary once available, and the footer.
func (m Model) View() string {
	var b strings.Builder

	title := titleStyle.Render(fmt.Sprintf("sqrace %s", m.version))
	subtitle := statLineStyle.Render(fmt.Sprintf("%d units x %s delay | elapsed %s",
		m.config.Count, m.config.Delay, time.Since(m.startTime).Truncate(time.Second)))
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, title, subtitle))
	b.WriteString("\n\n")

	for i := range m.states {
		b.WriteString(m.renderRunner(&m.states[i]))
		b.WriteString("\n")
	}

	if len(m.results) > 0 {
		b.WriteString(m.renderSummary())
	}
	if m.runErr != nil {
		b.WriteString(statusErrStyle.Render(fmt.Sprintf("Error: %v", m.runErr)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sysStatsStyle.Render(fmt.Sprintf("CPU %.1f%% | MEM %.1f%%", m.cpuPercent, m.memPercent)))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("q: quit • r: restart"))
	b.WriteString("\n")

	return b.String()
}

// renderRunner draws one runner's panel: name, status tag, bar, stat line.
func (m Model) renderRunner(s *runnerState) string {
	var status string
	switch {
	case s.running:
		status = statusRunStyle.Render("running")
	case s.finished:
		status = statusDoneStyle.Render("finished")
	default:
		status = statusWaitStyle.Render("waiting")
	}

	header := fmt.Sprintf("%s  %s", runnerNameStyle.Render(s.name), status)
	bar := s.bar.ViewAs(s.fraction)
	stats := statLineStyle.Render(fmt.Sprintf("%s | ETA: %s",
		format.FormatUnitCount(s.completed, s.total, s.throughput),
		format.FormatETA(s.eta)))

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, bar, stats)) + "\n"
}

// renderSummary draws the comparison summary once the analysis has run.
func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(summaryStyle.Render("Comparison Summary"))
	b.WriteString("\n")
	for _, res := range m.results {
		line := fmt.Sprintf("%-22s %10s", res.Name, format.FormatExecutionDuration(res.Duration))
		if res.Err != nil {
			line += "  " + statusErrStyle.Render(fmt.Sprintf("failure (%v)", res.Err))
		} else {
			line += "  " + statusDoneStyle.Render("success")
		}
		b.WriteString(summaryLineStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, runners []workload.Runner, cfg config.AppConfig, version string, runMetrics *metrics.RunMetrics) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, runners, cfg, version, runMetrics)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunsCmd returns a tea.Cmd that launches the orchestration.
func startRunsCmd(ref *programRef, ctx context.Context, runners []workload.Runner, cfg config.AppConfig, runMetrics *metrics.RunMetrics, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		spec := orchestration.RunSpec{Count: cfg.Count, Delay: cfg.Delay}
		results := orchestration.ExecuteRuns(ctx, runners, spec, reporter, runMetrics, io.Discard)
		exitCode := orchestration.AnalyzeComparisonResults(results, presenter, presenter, io.Discard)

		return RunsCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
