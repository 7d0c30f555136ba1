// Package theme provides the Lip Gloss color palette and reusable styles
// for the scroll-spy TUI. It is a leaf package with no internal imports to
// avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Nav colors.
var (
	ColorNavActive   = lipgloss.Color("#22c55e")
	ColorNavInView   = lipgloss.Color("#86efac")
	ColorNavInactive = lipgloss.Color("#6b7280")
)

// Zone band colors.
var (
	ColorZoneBand = lipgloss.Color("#a855f7")
	ColorZoneDim  = lipgloss.Color("#4c1d95")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
)

// Shared styles.
var (
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleNavActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorNavActive)

	StyleNavInView = lipgloss.NewStyle().
			Foreground(ColorNavInView)

	StyleNavInactive = lipgloss.NewStyle().
				Foreground(ColorNavInactive)

	StyleZoneGutter = lipgloss.NewStyle().
			Foreground(ColorZoneBand)

	StylePlainGutter = lipgloss.NewStyle().
				Foreground(ColorZoneDim)
)
