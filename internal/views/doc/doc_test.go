package doc

import (
	"strings"
	"testing"

	"github.com/rawjson/use-in-view/internal/document"
	"github.com/rawjson/use-in-view/internal/session"
)

func testSections() []document.Section {
	md := `## Alpha

alpha body line.

## Beta

beta body line one.

beta body line two.

## Gamma

gamma body.
`
	return document.Split(md)
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(testSections(), session.ZoneSpec{Rows: 3})
	if err := m.SetSize(60, 6); err != nil {
		t.Fatalf("SetSize() error = %v", err)
	}
	return m
}

func TestLayoutOrder(t *testing.T) {
	m := newTestModel(t)

	var prevBottom float64
	for _, id := range []string{"alpha", "beta", "gamma"} {
		rect, ok := m.TargetRect(id)
		if !ok {
			t.Fatalf("TargetRect(%q) unavailable after layout", id)
		}
		if rect.Height <= 0 {
			t.Errorf("section %q has height %v", id, rect.Height)
		}
		if rect.Top < prevBottom {
			t.Errorf("section %q top %v overlaps previous bottom %v", id, rect.Top, prevBottom)
		}
		prevBottom = rect.Bottom()
	}
}

func TestTargetRectBeforeLayout(t *testing.T) {
	m := New(testSections(), session.ZoneSpec{})
	if _, ok := m.TargetRect("alpha"); ok {
		t.Error("TargetRect should report a gap before the first layout")
	}
	if _, ok := newTestModel(t).TargetRect("nope"); ok {
		t.Error("TargetRect of an unknown id should report a gap")
	}
}

func TestZoneFollowsScroll(t *testing.T) {
	m := newTestModel(t)

	before := m.ZoneRect()
	if before.Top != 0 || before.Height != 3 {
		t.Fatalf("initial zone = %+v, want top 0 height 3", before)
	}

	m.ScrollBy(4)
	settle(t, m)

	after := m.ZoneRect()
	if after.Top != before.Top+4 {
		t.Errorf("zone top after scroll = %v, want %v", after.Top, before.Top+4)
	}
}

func TestJumpToAlignsSectionWithZone(t *testing.T) {
	m := newTestModel(t)
	m.JumpTo("gamma")
	settle(t, m)

	rect, _ := m.TargetRect("gamma")
	zone := m.ZoneRect()
	// Clamping at document end may stop short, but never past the section.
	if zone.Top > rect.Top {
		t.Errorf("zone top %v beyond section top %v after jump", zone.Top, rect.Top)
	}
}

func TestScrollClamps(t *testing.T) {
	m := newTestModel(t)

	m.ScrollBy(-100)
	settle(t, m)
	if m.ScrollRow() != 0 {
		t.Errorf("scroll row after clamp = %d, want 0", m.ScrollRow())
	}

	m.ScrollBy(10000)
	settle(t, m)
	if got, max := m.ScrollRow(), m.maxScroll(); got != max {
		t.Errorf("scroll row = %d, want clamped max %d", got, max)
	}
}

func TestViewMarksZoneBand(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	lines := strings.Split(view, "\n")
	if len(lines) != 6 {
		t.Fatalf("view has %d rows, want 6", len(lines))
	}
	if !strings.Contains(view, "▌") {
		t.Error("view does not mark the observe-zone band")
	}
}

// settle runs frame ticks until the spring animation rests.
func settle(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		m.Tick()
		if m.Settled() {
			return
		}
	}
	t.Fatal("scroll spring did not settle within 1000 frames")
}
