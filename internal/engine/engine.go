// Package engine drives the visibility-tracking pipeline: it owns the
// mounted target set, coalesces scroll/resize/structural events into at
// most one measurement per frame, and publishes changed visibility maps.
//
// The scheduler is single-threaded by contract: every method must be called
// from the host's event loop (the Bubble Tea update loop in this repo).
// Geometry is pulled fresh from the GeometrySource on every tick, never
// cached across ticks.
package engine

import (
	"fmt"

	"github.com/rawjson/use-in-view/internal/broadcast"
	"github.com/rawjson/use-in-view/internal/geometry"
	"github.com/rawjson/use-in-view/internal/session"
)

// GeometrySource supplies current rectangles on demand, in the scrolling
// container's coordinate space. TargetRect returns false when the target's
// geometry is momentarily unavailable; that target is skipped for the tick.
type GeometrySource interface {
	TargetRect(id string) (geometry.Rect, bool)
	ZoneRect() geometry.Rect
}

// Stats counts scheduler activity for the debug overlay.
type Stats struct {
	Ticks     uint64 // pipeline runs
	Events    uint64 // raw events received
	Coalesced uint64 // events absorbed into an already-dirty frame
	Publishes uint64 // maps that actually notified subscribers
}

// Scheduler decides when the pipeline runs. Events mark it dirty; the host
// calls Flush once per frame, which measures and publishes at most once no
// matter how many events arrived in between.
type Scheduler struct {
	cfg      session.Config
	source   GeometrySource
	bc       *broadcast.Broadcaster
	resolver *resolver

	mounted map[string]float64 // id -> entry threshold

	attached bool
	dirty    bool
	closed   bool
	stats    Stats
}

// New validates the session config and builds a scheduler with its
// broadcaster seeded to the mount-time map (first target in view when
// FirstTargetActiveOnMount is set). The scheduler starts attached.
func New(cfg session.Config, source GeometrySource) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, &session.ConfigError{Field: "source", Detail: "nil geometry source"}
	}

	r := newResolver(cfg)
	return &Scheduler{
		cfg:      cfg,
		source:   source,
		bc:       broadcast.New(r.snapshot()),
		resolver: r,
		mounted:  make(map[string]float64, len(cfg.TargetIDs)),
		attached: true,
	}, nil
}

// Broadcaster exposes the session's state broadcaster for consumers.
func (s *Scheduler) Broadcaster() *broadcast.Broadcaster {
	return s.bc
}

// Mount registers a target element. The id must be declared in the session
// config and not already mounted; the threshold is validated by NewTarget.
// Mounting schedules a re-measurement.
func (s *Scheduler) Mount(id string, threshold float64) error {
	if !s.cfg.Declared(id) {
		return &session.ConfigError{Field: "id", Detail: fmt.Sprintf("target %q not declared in targetIds", id)}
	}
	if _, ok := s.mounted[id]; ok {
		return &session.ConfigError{Field: "id", Detail: fmt.Sprintf("target %q mounted twice", id)}
	}
	t, err := session.NewTarget(id, threshold)
	if err != nil {
		return err
	}
	s.mounted[id] = t.EntryThreshold
	s.markDirty()
	return nil
}

// Unmount releases a target. Later ticks never read its geometry again; its
// declared map entry holds its last value. Unknown ids are ignored.
func (s *Scheduler) Unmount(id string) {
	if _, ok := s.mounted[id]; !ok {
		return
	}
	delete(s.mounted, id)
	s.markDirty()
}

// Scroll records a scroll event of the tracking container.
func (s *Scheduler) Scroll() { s.markDirty() }

// Resize records a resize of the container or zone.
func (s *Scheduler) Resize() { s.markDirty() }

// Detach pauses measurement while the container is hidden. Events arriving
// while detached keep the dirty flag set so reattachment re-measures.
func (s *Scheduler) Detach() { s.attached = false }

// Attach resumes measurement with a fresh tick; nothing observed before the
// detach is reused.
func (s *Scheduler) Attach() {
	s.attached = true
	s.dirty = true
}

// Attached reports whether the scheduler is currently measuring.
func (s *Scheduler) Attached() bool { return s.attached }

// Dirty reports whether a flush would run the pipeline.
func (s *Scheduler) Dirty() bool { return s.dirty }

// Stats returns scheduler counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// Flush runs one observation tick if any event arrived since the last one.
// Called once per frame by the host. Returns whether a changed map was
// published.
func (s *Scheduler) Flush() bool {
	if s.closed || !s.attached || !s.dirty {
		return false
	}
	s.dirty = false
	s.stats.Ticks++

	zone := s.source.ZoneRect()
	qualified := make(map[string]bool, len(s.mounted))
	for id, threshold := range s.mounted {
		rect, ok := s.source.TargetRect(id)
		if !ok {
			// Transient measurement gap: skip, hold previous state.
			continue
		}
		frac := geometry.OverlapFraction(rect, zone)
		qualified[id] = geometry.Qualifies(frac, threshold)
	}

	published := s.bc.Publish(s.resolver.apply(qualified))
	if published {
		s.stats.Publishes++
	}
	return published
}

// Close ends the session: releases all subscriptions and stops further
// ticks. Safe to call more than once.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.mounted = map[string]float64{}
	s.bc.Close()
}

func (s *Scheduler) markDirty() {
	s.stats.Events++
	if s.dirty {
		s.stats.Coalesced++
		return
	}
	s.dirty = true
}
