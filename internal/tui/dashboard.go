// Package tui implements the interactive bug dashboard.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/martinb35/Bugger/internal/cli"
	"github.com/martinb35/Bugger/internal/report"
)

// Runner is the pipeline entry point the dashboard refreshes from.
type Runner interface {
	Run(ctx context.Context) (*report.Report, error)
}

// State represents the current state of the dashboard.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

type reportMsg struct {
	report *report.Report
}

type errMsg struct {
	err error
}

// Model holds the dashboard state.
type Model struct {
	ctx      context.Context
	runner   Runner
	report   *report.Report
	lastErr  error
	spinner  spinner.Model
	viewport viewport.Model
	state    State
	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates a dashboard model for the given pipeline runner. Refreshes
// run under ctx, so cancelling it aborts any in-flight fetch.
func NewModel(ctx context.Context, runner Runner) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cli.InfoStyle

	return Model{
		ctx:     ctx,
		runner:  runner,
		spinner: s,
		state:   StateLoading,
	}
}

// Init starts the spinner and the first refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh())
}

// refresh runs the pipeline off the update loop and reports back.
func (m Model) refresh() tea.Cmd {
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		r, err := runner.Run(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return reportMsg{report: r}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if m.state != StateLoading {
				m.state = StateLoading
				return m, tea.Batch(m.spinner.Tick, m.refresh())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
		if m.report != nil {
			m.viewport.SetContent(m.renderReport())
		}

	case reportMsg:
		m.state = StateReady
		m.report = msg.report
		m.lastErr = nil
		if m.ready {
			m.viewport.SetContent(m.renderReport())
			m.viewport.GotoTop()
		}
		return m, nil

	case errMsg:
		m.state = StateError
		m.lastErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateLoading:
		return m.spinner.View() + " Fetching and analyzing your bugs...\n"
	case StateError:
		return cli.FormatError("Pipeline failed: "+m.lastErr.Error()) + "\n\n" +
			cli.SubtleStyle.Render("r: retry • q: quit") + "\n"
	default:
		help := cli.SubtleStyle.Render("↑/↓: scroll • r: refresh • q: quit")
		return m.viewport.View() + "\n" + help
	}
}

// renderReport renders the report markdown for the terminal, falling back
// to the raw markdown when glamour cannot build a renderer.
func (m Model) renderReport() string {
	md := report.RenderMarkdown(m.report)

	width := m.width - 4
	if width < 20 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
