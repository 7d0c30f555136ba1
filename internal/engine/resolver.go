package engine

import "github.com/rawjson/use-in-view/internal/session"

// resolver keeps the per-target in-view state machine over the declared id
// domain. Targets qualify independently; several may be in view at once.
// Targets that were not measured on a tick hold their previous value.
type resolver struct {
	order []string
	state map[string]bool
}

func newResolver(cfg session.Config) *resolver {
	state := make(map[string]bool, len(cfg.TargetIDs))
	for i, id := range cfg.TargetIDs {
		state[id] = cfg.FirstTargetActiveOnMount && i == 0
	}
	return &resolver{
		order: append([]string(nil), cfg.TargetIDs...),
		state: state,
	}
}

// apply folds one tick's qualification results into the state machine and
// returns the full visibility map. Ids absent from qualified (unmounted or
// mid-unmount this tick) are left untouched.
func (r *resolver) apply(qualified map[string]bool) session.VisibilityMap {
	for id, q := range qualified {
		if _, declared := r.state[id]; declared {
			r.state[id] = q
		}
	}
	return r.snapshot()
}

// snapshot copies the current state over the full declared domain.
func (r *resolver) snapshot() session.VisibilityMap {
	out := make(session.VisibilityMap, len(r.order))
	for _, id := range r.order {
		out[id] = r.state[id]
	}
	return out
}
