// Package doc renders the scrollable document pane and serves as the
// engine's geometry source: section rectangles and the observe-zone band
// are reported in content coordinates (rows).
package doc

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/rawjson/use-in-view/internal/document"
	"github.com/rawjson/use-in-view/internal/geometry"
	"github.com/rawjson/use-in-view/internal/session"
	"github.com/rawjson/use-in-view/internal/theme"
)

const (
	gutterWidth = 2
	fps         = 60

	// Spring tuning for smooth scrolling: stiff enough to settle within
	// a few hundred ms, slightly under-damped.
	springFrequency = 8.0
	springDamping   = 0.9
)

// Model holds the document pane state. Methods must be called from the
// Bubble Tea update loop; the engine reads geometry from the same loop.
type Model struct {
	sections []document.Section
	zone     session.ZoneSpec

	width  int
	height int

	lines  []string // flattened rendered lines, content coordinates
	tops   []int    // first line of each section
	counts []int    // rendered line count of each section
	index  map[string]int

	scroll   float64
	velocity float64
	target   float64
	spring   harmonica.Spring
	laidOut  bool
}

// New creates the pane for the given sections and zone shape.
func New(sections []document.Section, zone session.ZoneSpec) *Model {
	m := &Model{
		sections: sections,
		zone:     zone,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		index:    make(map[string]int, len(sections)),
	}
	for i, s := range sections {
		m.index[s.ID] = i
	}
	return m
}

// SetSize lays the document out for the new dimensions, re-rendering every
// section at the new wrap width.
func (m *Model) SetSize(width, height int) error {
	m.width = width
	m.height = height

	wrap := width - gutterWidth - 1
	if wrap < 20 {
		wrap = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return fmt.Errorf("glamour renderer: %w", err)
	}

	m.lines = m.lines[:0]
	m.tops = make([]int, len(m.sections))
	m.counts = make([]int, len(m.sections))
	for i, s := range m.sections {
		out, err := r.Render(s.Body)
		if err != nil {
			return fmt.Errorf("rendering section %q: %w", s.ID, err)
		}
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		m.tops[i] = len(m.lines)
		m.counts[i] = len(lines)
		m.lines = append(m.lines, lines...)
	}
	m.laidOut = true

	m.clampScroll()
	return nil
}

// TargetRect reports a section's current rectangle in content rows. It
// returns false until the first layout has happened.
func (m *Model) TargetRect(id string) (geometry.Rect, bool) {
	i, ok := m.index[id]
	if !ok || !m.laidOut {
		return geometry.Rect{}, false
	}
	return geometry.Rect{
		Top:    float64(m.tops[i]),
		Height: float64(m.counts[i]),
	}, true
}

// ZoneRect reports the observe zone in content rows: anchored at the zone
// offset below the current scroll position.
func (m *Model) ZoneRect() geometry.Rect {
	return geometry.Rect{
		Top:    m.scroll + float64(m.zone.Offset),
		Height: float64(m.zone.ResolveRows(m.height)),
	}
}

// ScrollBy moves the scroll target by delta rows; the spring animates the
// actual position toward it.
func (m *Model) ScrollBy(delta int) {
	m.target += float64(delta)
	m.clampTarget()
}

// JumpTo scrolls a section's top to the zone offset.
func (m *Model) JumpTo(id string) {
	i, ok := m.index[id]
	if !ok || !m.laidOut {
		return
	}
	m.target = float64(m.tops[i] - m.zone.Offset)
	m.clampTarget()
}

// GotoTop and GotoBottom jump to the document edges.
func (m *Model) GotoTop() {
	m.target = 0
}

func (m *Model) GotoBottom() {
	m.target = float64(m.maxScroll())
}

// Tick advances the spring one frame. Returns whether the visible scroll
// row changed, which is what counts as a scroll event for the engine.
func (m *Model) Tick() bool {
	before := int(m.scroll)
	m.scroll, m.velocity = m.spring.Update(m.scroll, m.velocity, m.target)

	// Snap once the motion is no longer visible, so the spring settles.
	if abs(m.scroll-m.target) < 0.05 && abs(m.velocity) < 0.05 {
		m.scroll = m.target
		m.velocity = 0
	}
	m.clampScroll()
	return int(m.scroll) != before
}

// Settled reports whether the scroll animation has come to rest.
func (m *Model) Settled() bool {
	return m.scroll == m.target && m.velocity == 0
}

// ScrollRow returns the current top visible content row.
func (m *Model) ScrollRow() int { return int(m.scroll) }

// View renders the visible slice of the document with the observe-zone
// band marked in the gutter.
func (m *Model) View() string {
	if !m.laidOut || m.height <= 0 {
		return ""
	}

	top := int(m.scroll)
	zoneStart := m.zone.Offset
	zoneEnd := zoneStart + m.zone.ResolveRows(m.height)

	rows := make([]string, 0, m.height)
	for row := 0; row < m.height; row++ {
		var line string
		if idx := top + row; idx >= 0 && idx < len(m.lines) {
			line = m.lines[idx]
		}

		gutter := theme.StylePlainGutter.Render("│ ")
		if row >= zoneStart && row < zoneEnd {
			gutter = theme.StyleZoneGutter.Render("▌ ")
		}
		rows = append(rows, gutter+line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) maxScroll() int {
	max := len(m.lines) - m.height
	if max < 0 {
		max = 0
	}
	return max
}

func (m *Model) clampTarget() {
	if m.target < 0 {
		m.target = 0
	}
	if max := float64(m.maxScroll()); m.target > max {
		m.target = max
	}
}

func (m *Model) clampScroll() {
	m.clampTarget()
	if m.scroll < 0 {
		m.scroll = 0
	}
	if max := float64(m.maxScroll()); m.scroll > max {
		m.scroll = max
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
