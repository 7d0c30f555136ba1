// Package session defines the tracking-session data model: the declared
// target set, per-target entry thresholds, the observe-zone shape, and the
// visibility map published to consumers.
package session

import (
	"fmt"
	"strings"
)

// Threshold bounds. Values outside this range are rejected at configuration
// time rather than clamped.
const (
	MinThreshold     = 0.1
	MaxThreshold     = 0.9
	DefaultThreshold = 0.5
)

// DefaultZonePercent is the observe-zone height when none is configured,
// as a percentage of the viewport height.
const DefaultZonePercent = 50

// ConfigError reports a programming mistake in session or target
// configuration. It is surfaced at construction, never deferred to a tick.
type ConfigError struct {
	Field  string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Detail)
}

// Config declares a tracking session: the ordered target ids (document
// order, fixed for the session lifetime) and the mount-time policy.
type Config struct {
	TargetIDs                []string
	FirstTargetActiveOnMount bool
}

// Validate checks the declared id list: non-empty, no blanks, no duplicates.
func (c Config) Validate() error {
	if len(c.TargetIDs) == 0 {
		return &ConfigError{Field: "targetIds", Detail: "must declare at least one target"}
	}
	seen := make(map[string]struct{}, len(c.TargetIDs))
	for _, id := range c.TargetIDs {
		if strings.TrimSpace(id) == "" {
			return &ConfigError{Field: "targetIds", Detail: "blank target id"}
		}
		if _, dup := seen[id]; dup {
			return &ConfigError{Field: "targetIds", Detail: fmt.Sprintf("duplicate target id %q", id)}
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Declared reports whether id is part of the session's declared set.
func (c Config) Declared(id string) bool {
	for _, t := range c.TargetIDs {
		if t == id {
			return true
		}
	}
	return false
}

// Target is one tracked region: its declared id and the minimum fraction of
// its span that must lie inside the observe zone to count as in view.
type Target struct {
	ID             string
	EntryThreshold float64
}

// NewTarget builds a target, applying the default threshold when zero and
// rejecting out-of-range values.
func NewTarget(id string, threshold float64) (Target, error) {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < MinThreshold || threshold > MaxThreshold {
		return Target{}, &ConfigError{
			Field:  "entryThreshold",
			Detail: fmt.Sprintf("%v outside [%v, %v] for target %q", threshold, MinThreshold, MaxThreshold, id),
		}
	}
	return Target{ID: id, EntryThreshold: threshold}, nil
}

// ZoneSpec describes the observe zone: a row offset from the top of the
// viewport plus a height given either as fixed rows or as a percentage of
// the viewport. Exactly one of Rows/Percent may be set; both zero means the
// default (50% of viewport).
type ZoneSpec struct {
	Offset  int
	Rows    int
	Percent float64
}

// Validate rejects contradictory or out-of-range zone shapes.
func (z ZoneSpec) Validate() error {
	if z.Rows > 0 && z.Percent > 0 {
		return &ConfigError{Field: "zone", Detail: "rows and percent are mutually exclusive"}
	}
	if z.Rows < 0 || z.Percent < 0 || z.Percent > 100 || z.Offset < 0 {
		return &ConfigError{Field: "zone", Detail: "negative or out-of-range dimension"}
	}
	return nil
}

// ResolveRows returns the zone height in rows for a viewport of the given
// height.
func (z ZoneSpec) ResolveRows(viewportRows int) int {
	if z.Rows > 0 {
		return z.Rows
	}
	pct := z.Percent
	if pct == 0 {
		pct = DefaultZonePercent
	}
	rows := int(float64(viewportRows) * pct / 100)
	if rows < 1 {
		rows = 1
	}
	return rows
}

// VisibilityMap maps target id to its current in-view flag. Its key set is
// fixed to the session's declared target ids; only values change.
type VisibilityMap map[string]bool

// Clone returns an independent copy.
func (m VisibilityMap) Clone() VisibilityMap {
	out := make(VisibilityMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports structural equality over the full domain.
func (m VisibilityMap) Equal(other VisibilityMap) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}
