package cleanview

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/quickclean/internal/cleaner"
	"github.com/lakshaymaurya-felt/quickclean/internal/ui"
)

// ─── Messages ────────────────────────────────────────────────────────────────

type progressMsg cleaner.ProgressEvent

type doneMsg struct {
	summary *cleaner.RunSummary
	err     error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea Model that drives one cleaning run and renders its
// progress. It talks to the engine only through Run/Cancel and the progress
// events.
type Model struct {
	engine *cleaner.Engine
	events chan cleaner.ProgressEvent

	bar  progress.Model
	spin spinner.Model

	taskNames  []string
	completed  int
	bytesFreed uint64
	width      int

	cancelling bool
	summary    *cleaner.RunSummary
	err        error
}

// NewModel builds the view for one run of the given engine.
func NewModel(e *cleaner.Engine) Model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ui.ColorPrimary)),
	)
	return Model{
		engine:    e,
		events:    make(chan cleaner.ProgressEvent),
		bar:       progress.New(progress.WithDefaultGradient()),
		spin:      sp,
		taskNames: e.TaskNames(),
		width:     80,
	}
}

// Summary returns the run summary once the program has finished.
func (m Model) Summary() *cleaner.RunSummary { return m.summary }

// Err returns the run error, if any.
func (m Model) Err() error { return m.err }

// startRun launches the engine in its own goroutine, bridging progress
// callbacks onto the event channel.
func (m Model) startRun() tea.Cmd {
	engine, events := m.engine, m.events
	return func() tea.Msg {
		summary, err := engine.Run(func(ev cleaner.ProgressEvent) {
			events <- ev
		})
		close(events)
		return doneMsg{summary: summary, err: err}
	}
}

// waitEvent delivers the next progress event to Update.
func (m Model) waitEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return progressMsg(ev)
	}
}

// ─── tea.Model interface ─────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.startRun(), m.waitEvent())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-8, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			// Cooperative: the run winds down and still reports a summary.
			m.cancelling = true
			m.engine.Cancel()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd

	case progressMsg:
		m.bytesFreed = msg.BytesFreedSoFar
		if !msg.Final {
			m.completed = msg.TaskIndex + 1
		}
		pct := float64(m.completed) / float64(max(msg.TaskCount, 1))
		return m, tea.Batch(m.bar.SetPercent(pct), m.waitEvent())

	case doneMsg:
		m.summary = msg.summary
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.summary != nil || m.err != nil {
		return m.renderSummary()
	}
	return m.renderRunning()
}
