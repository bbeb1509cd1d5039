package cleanview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/quickclean/internal/ui"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
	dimStyle   = lipgloss.NewStyle().Foreground(ui.ColorTextDim)
	mutedStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	okStyle    = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	warnStyle  = lipgloss.NewStyle().Foreground(ui.ColorWarning)
	errStyle   = lipgloss.NewStyle().Foreground(ui.ColorError)
)

// ─── Running view ────────────────────────────────────────────────────────────

func (m Model) renderRunning() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("  " + ui.IconBroom + " Quick Cleaner"))
	s.WriteString("\n\n")

	status := m.currentLabel()
	if m.cancelling {
		status = warnStyle.Render("Cancelling…")
	}
	s.WriteString(fmt.Sprintf("  %s %s\n\n", m.spin.View(), status))

	s.WriteString("  " + m.bar.View() + "\n\n")
	s.WriteString(dimStyle.Render(fmt.Sprintf("  Freed: %s", ui.FormatSize(m.bytesFreed))))
	s.WriteString("\n")
	s.WriteString(mutedStyle.Render("  q/esc to cancel"))
	s.WriteString("\n")

	return s.String()
}

// currentLabel names the task being cleaned right now. Events arrive on task
// completion, so the task at index `completed` is the one in flight.
func (m Model) currentLabel() string {
	if m.completed < len(m.taskNames) {
		return fmt.Sprintf("Cleaning: %s  (%d/%d)",
			m.taskNames[m.completed], m.completed+1, len(m.taskNames))
	}
	return "Finishing…"
}

// ─── Summary view ────────────────────────────────────────────────────────────

func (m Model) renderSummary() string {
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("  %s %v\n", ui.IconCross, m.err))
	}

	var s strings.Builder
	headline := fmt.Sprintf("  %s Done — freed %s", ui.IconBroom, ui.FormatSize(m.summary.TotalBytesFreed))
	if m.summary.Cancelled {
		headline = fmt.Sprintf("  %s Cancelled — freed %s so far", ui.IconBroom, ui.FormatSize(m.summary.TotalBytesFreed))
	}
	s.WriteString(titleStyle.Render(headline))
	s.WriteString("\n\n")

	for _, r := range m.summary.Results {
		size := ui.FormatSize(r.BytesFreed)
		if r.Estimated {
			size = ui.IconApprox + size
		}

		mark := okStyle.Render(ui.IconCheck)
		detail := fmt.Sprintf("%s  (%d items)", size, r.ItemsDeleted)
		if r.ItemsFailed > 0 {
			mark = warnStyle.Render("!")
			detail = fmt.Sprintf("%s  (%d items, %d failed)", size, r.ItemsDeleted, r.ItemsFailed)
		}
		s.WriteString(fmt.Sprintf("  %s %-24s %s\n", mark, r.Task, dimStyle.Render(detail)))
	}

	s.WriteString("\n")
	s.WriteString(mutedStyle.Render(fmt.Sprintf("  took %s",
		m.summary.FinishedAt.Sub(m.summary.StartedAt).Round(time.Millisecond))))
	s.WriteString("\n")
	return s.String()
}
