// Package nav renders the section sidebar. It is a pure consumer of the
// visibility map: the engine reports every section that qualifies, and the
// sidebar layers its own single-winner choice (last qualifying section in
// document order) on top for the highlight.
package nav

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rawjson/use-in-view/internal/session"
	"github.com/rawjson/use-in-view/internal/theme"
)

// Entry is one sidebar row.
type Entry struct {
	ID    string
	Title string
}

// Model holds the sidebar state.
type Model struct {
	Entries []Entry
	Width   int

	visibility session.VisibilityMap
	active     string // last winner, held when nothing qualifies
}

// New creates a sidebar over the given entries, in document order.
func New(entries []Entry) Model {
	return Model{Entries: entries, Width: 24}
}

// SetVisibility applies a freshly published map and recomputes the winner.
func (m *Model) SetVisibility(v session.VisibilityMap) {
	m.visibility = v
	for _, e := range m.Entries {
		if v[e.ID] {
			m.active = e.ID
		}
	}
}

// ActiveID returns the highlighted section id: the last in-view entry in
// document order, or the previous winner while nothing qualifies.
func (m Model) ActiveID() string { return m.active }

// View renders the sidebar.
func (m Model) View() string {
	rows := make([]string, 0, len(m.Entries)+1)
	rows = append(rows, theme.StyleHeader.Render("CONTENTS"))

	for _, e := range m.Entries {
		title := truncate(e.Title, m.Width-4)
		switch {
		case e.ID == m.active:
			rows = append(rows, theme.StyleNavActive.Render("▸ "+title))
		case m.visibility[e.ID]:
			rows = append(rows, theme.StyleNavInView.Render("· "+title))
		default:
			rows = append(rows, theme.StyleNavInactive.Render("  "+title))
		}
	}

	return lipgloss.NewStyle().
		Width(m.Width).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(theme.ColorBorder).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return fmt.Sprintf("%s...", s[:max-3])
}
