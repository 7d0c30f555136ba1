// Package app wires the Bubble Tea event loop to the tracking engine: key
// and window events feed the scheduler, one engine flush runs per frame,
// and published visibility maps drive the nav sidebar.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rawjson/use-in-view/internal/config"
	"github.com/rawjson/use-in-view/internal/document"
	"github.com/rawjson/use-in-view/internal/engine"
	"github.com/rawjson/use-in-view/internal/session"
	"github.com/rawjson/use-in-view/internal/theme"
	"github.com/rawjson/use-in-view/internal/views/debug"
	"github.com/rawjson/use-in-view/internal/views/doc"
	"github.com/rawjson/use-in-view/internal/views/nav"
)

const (
	navWidth   = 26
	frameEvery = time.Second / 60
)

type frameMsg time.Time

type pollMsg time.Time

type visibilityMsg session.VisibilityMap

// Model is the root Bubble Tea model.
type Model struct {
	keys   KeyMap
	width  int
	height int

	sections []document.Section

	doc   *doc.Model
	nav   nav.Model
	debug debug.Model

	sched     *engine.Scheduler
	updates   <-chan session.VisibilityMap
	cancelSub func()

	pollEvery time.Duration
	showDebug bool
	quitting  bool
}

// New builds the root model: splits out the session config from the
// document sections, creates the engine, and mounts every section.
func New(sections []document.Section, cfg *config.Config) (Model, error) {
	ids := document.IDs(sections)
	scfg := session.Config{
		TargetIDs:                ids,
		FirstTargetActiveOnMount: cfg.Session.FirstTargetActiveOnMount,
	}

	docView := doc.New(sections, cfg.ZoneSpec())
	sched, err := engine.New(scfg, docView)
	if err != nil {
		return Model{}, err
	}
	for _, id := range ids {
		if err := sched.Mount(id, cfg.Threshold(id)); err != nil {
			return Model{}, err
		}
	}

	entries := make([]nav.Entry, len(sections))
	for i, s := range sections {
		entries[i] = nav.Entry{ID: s.ID, Title: s.Title}
	}
	navView := nav.New(entries)
	navView.SetVisibility(sched.Broadcaster().Current())

	updates, cancel := sched.Broadcaster().Subscribe()

	return Model{
		keys:      DefaultKeyMap(),
		sections:  sections,
		doc:       docView,
		nav:       navView,
		debug:     debug.New(),
		sched:     sched,
		updates:   updates,
		cancelSub: cancel,
		pollEvery: cfg.Session.PollInterval.Std(),
	}, nil
}

// Scheduler exposes the engine, for wiring the remote mirror.
func (m Model) Scheduler() *engine.Scheduler { return m.sched }

// Init starts the frame loop, the visibility listener, and the optional
// polling fallback.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameTick(), listenVisibility(m.updates)}
	if m.pollEvery > 0 {
		cmds = append(cmds, pollTick(m.pollEvery))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.nav.Width = navWidth
		docWidth := msg.Width - navWidth
		if docWidth < 20 {
			docWidth = 20
		}
		if err := m.doc.SetSize(docWidth, msg.Height-2); err != nil {
			m.debug.Add("err", err.Error())
		}
		m.sched.Resize()
		m.debug.Add("resize", fmt.Sprintf("%dx%d", msg.Width, msg.Height))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.FocusMsg:
		m.sched.Attach()
		m.debug.Add("attach", "terminal focused")
		return m, nil

	case tea.BlurMsg:
		m.sched.Detach()
		m.debug.Add("detach", "terminal blurred")
		return m, nil

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		if m.doc.Tick() {
			m.sched.Scroll()
		}
		m.sched.Flush()
		m.debug.SetStats(m.sched.Stats())
		if m.showDebug {
			m.debug.Sample()
		}
		return m, frameTick()

	case pollMsg:
		if m.quitting {
			return m, nil
		}
		// Bounded fallback for hosts without reliable resize events.
		m.sched.Resize()
		return m, pollTick(m.pollEvery)

	case visibilityMsg:
		m.nav.SetVisibility(session.VisibilityMap(msg))
		m.debug.Add("publish", formatMap(session.VisibilityMap(msg)))
		return m, listenVisibility(m.updates)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDebug {
		switch {
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Debug):
			m.showDebug = false
		case key.Matches(msg, m.keys.Up):
			m.debug.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.debug.ScrollDown(1)
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Down):
		m.doc.ScrollBy(1)

	case key.Matches(msg, m.keys.Up):
		m.doc.ScrollBy(-1)

	case key.Matches(msg, m.keys.HalfDown):
		m.doc.ScrollBy(m.docHeight() / 2)

	case key.Matches(msg, m.keys.HalfUp):
		m.doc.ScrollBy(-m.docHeight() / 2)

	case key.Matches(msg, m.keys.Top):
		m.doc.GotoTop()

	case key.Matches(msg, m.keys.Bottom):
		m.doc.GotoBottom()

	case key.Matches(msg, m.keys.NextSection):
		m.jumpRelative(1)

	case key.Matches(msg, m.keys.PrevSection):
		m.jumpRelative(-1)

	case key.Matches(msg, m.keys.Debug):
		m.showDebug = true

	default:
		// 1-9 jump straight to the nth section.
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.sections) {
				m.doc.JumpTo(m.sections[i].ID)
				m.debug.Add("nav", "jump to "+m.sections[i].ID)
			}
		}
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancelSub()
	m.sched.Close()
	return m, tea.Quit
}

// jumpRelative moves the scroll target to the section before or after the
// current nav winner.
func (m *Model) jumpRelative(delta int) {
	active := m.nav.ActiveID()
	idx := 0
	for i, s := range m.sections {
		if s.ID == active {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 || idx >= len(m.sections) {
		return
	}
	m.doc.JumpTo(m.sections[idx].ID)
	m.debug.Add("nav", "jump to "+m.sections[idx].ID)
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.showDebug {
		return m.debug.View(m.width, m.height)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.nav.View(), m.doc.View())
	help := theme.StyleDimmed.Render("  j/k:scroll  tab:section  g/G:top/bottom  d:debug  q:quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

func (m Model) docHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

func formatMap(vm session.VisibilityMap) string {
	out := ""
	for id, v := range vm {
		if v {
			if out != "" {
				out += " "
			}
			out += id
		}
	}
	if out == "" {
		return "nothing in view"
	}
	return "in view: " + out
}

func frameTick() tea.Cmd {
	return tea.Tick(frameEvery, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func pollTick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func listenVisibility(ch <-chan session.VisibilityMap) tea.Cmd {
	return func() tea.Msg {
		vm, ok := <-ch
		if !ok {
			return nil
		}
		return visibilityMsg(vm)
	}
}
