// Package debug provides a scrollable engine event log overlay with a
// small process HUD (CPU, resident memory) sampled via gopsutil.
package debug

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/rawjson/use-in-view/internal/engine"
	"github.com/rawjson/use-in-view/internal/theme"
)

const (
	maxEntries     = 200
	sampleInterval = time.Second
)

// Entry is a single event log line.
type Entry struct {
	Time    time.Time
	Kind    string // "tick", "publish", "mount", etc.
	Message string
}

// Model holds debug log state.
type Model struct {
	Entries []Entry
	Offset  int // scroll offset (from bottom)

	stats engine.Stats

	proc       *process.Process
	cpuPercent float64
	rssBytes   uint64
	sampledAt  time.Time
}

// New creates an empty debug model.
func New() Model {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		p = nil
	}
	return Model{proc: p}
}

// Add appends a log entry and caps the buffer.
func (m *Model) Add(kind, message string) {
	m.Entries = append(m.Entries, Entry{
		Time:    time.Now(),
		Kind:    kind,
		Message: message,
	})
	if len(m.Entries) > maxEntries {
		m.Entries = m.Entries[len(m.Entries)-maxEntries:]
	}
	// Reset scroll to bottom on new entry.
	m.Offset = 0
}

// SetStats updates the scheduler counters shown in the HUD.
func (m *Model) SetStats(s engine.Stats) {
	m.stats = s
}

// Sample refreshes the process HUD, at most once per second.
func (m *Model) Sample() {
	if m.proc == nil || time.Since(m.sampledAt) < sampleInterval {
		return
	}
	m.sampledAt = time.Now()

	if cpu, err := m.proc.CPUPercent(); err == nil {
		m.cpuPercent = cpu
	}
	if mem, err := m.proc.MemoryInfo(); err == nil && mem != nil {
		m.rssBytes = mem.RSS
	}
}

// ScrollUp moves the viewport up.
func (m *Model) ScrollUp(n int) {
	m.Offset += n
	max := len(m.Entries) - 1
	if max < 0 {
		max = 0
	}
	if m.Offset > max {
		m.Offset = max
	}
}

// ScrollDown moves the viewport down.
func (m *Model) ScrollDown(n int) {
	m.Offset -= n
	if m.Offset < 0 {
		m.Offset = 0
	}
}

func panelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder)
}

// View renders the debug log as an overlay panel.
func (m Model) View(width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}
	visibleLines := height - 8
	if visibleLines < 3 {
		visibleLines = 3
	}

	title := theme.StyleHeader.Render(" ENGINE DEBUG ")
	hud := theme.StyleDimmed.Render(fmt.Sprintf(
		"ticks %d  events %d  coalesced %d  publishes %d  cpu %.1f%%  rss %s",
		m.stats.Ticks, m.stats.Events, m.stats.Coalesced, m.stats.Publishes,
		m.cpuPercent, formatBytes(m.rssBytes),
	))
	help := theme.StyleDimmed.Render(fmt.Sprintf("j/k:scroll  esc:close  %d entries", len(m.Entries)))

	if len(m.Entries) == 0 {
		body := theme.StyleDimmed.Render("  No events recorded yet.")
		content := lipgloss.JoinVertical(lipgloss.Left, title, hud, "", body, "", help)
		return panelStyle(innerW).Render(content)
	}

	end := len(m.Entries) - m.Offset
	start := end - visibleLines
	if start < 0 {
		start = 0
	}

	var lines []string
	for _, e := range m.Entries[start:end] {
		ts := e.Time.Format("15:04:05.000")
		lines = append(lines, fmt.Sprintf("%s  %-8s %s", ts, e.Kind, e.Message))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, hud, "", strings.Join(lines, "\n"), "", help)
	return panelStyle(innerW).Render(content)
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1fGiB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1fMiB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1fKiB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%dB", b)
	}
}
