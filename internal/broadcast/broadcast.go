// Package broadcast delivers visibility-map updates to subscribers. A map
// is published at most once per value change; subscribers that fall behind
// are conflated to the latest value rather than queued.
package broadcast

import (
	"sync"

	"github.com/rawjson/use-in-view/internal/session"
)

// Broadcaster holds the last published visibility map and fans changed maps
// out to subscriber channels.
type Broadcaster struct {
	mu   sync.Mutex
	last session.VisibilityMap
	subs map[chan session.VisibilityMap]struct{}
}

// New creates a broadcaster seeded with the session's initial map. Seeding
// does not notify anyone; subscribers read the seed via Current.
func New(initial session.VisibilityMap) *Broadcaster {
	return &Broadcaster{
		last: initial.Clone(),
		subs: make(map[chan session.VisibilityMap]struct{}),
	}
}

// Current returns a copy of the most recently published map.
func (b *Broadcaster) Current() session.VisibilityMap {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last.Clone()
}

// Publish updates the held map and notifies subscribers, but only when at
// least one entry differs from the previous map. Returns whether a
// notification went out.
func (b *Broadcaster) Publish(m session.VisibilityMap) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.last.Equal(m) {
		return false
	}
	b.last = m.Clone()

	for ch := range b.subs {
		// Each channel carries at most the latest value: replace any
		// undelivered map so a slow subscriber never sees a stale burst.
		select {
		case ch <- b.last:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- b.last
		}
	}
	return true
}

// Subscribe registers a new consumer. The returned channel delivers the
// latest map after each change; the cancel func releases the subscription.
// A subscriber attaching mid-session does not receive historical maps.
func (b *Broadcaster) Subscribe() (<-chan session.VisibilityMap, func()) {
	ch := make(chan session.VisibilityMap, 1)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// SubscriberCount returns the number of live subscriptions.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close releases every subscription.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
