// Package ui holds the shared color tokens, icons, and formatting helpers
// used by every terminal view.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// ─── Color tokens ────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#2dd4bf"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#e5e7eb"}
	ColorTextDim = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconBroom   = "🧹"
	IconCheck   = "✓"
	IconCross   = "✗"
	IconChevron = "›"
	IconApprox  = "≈"
)

// ─── Formatting ──────────────────────────────────────────────────────────────

// FormatSize renders a byte count in IEC units (KiB, MiB, ...).
func FormatSize(n uint64) string {
	return humanize.IBytes(n)
}
