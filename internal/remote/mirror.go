// Package remote mirrors a tracking session's visibility state over
// WebSocket: a full snapshot on connect, throttled deltas afterwards.
// It subscribes to the session broadcaster like any other consumer.
package remote

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rawjson/use-in-view/internal/session"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
	}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *client) close() {
	close(c.send)
}

// Mirror fans visibility updates out to WebSocket clients. Changes arriving
// within one throttle window are merged into a single delta.
type Mirror struct {
	mu      sync.RWMutex
	clients map[*client]bool
	seq     uint64
	last    session.VisibilityMap
	order   []string

	throttle   time.Duration
	flushMu    sync.Mutex
	pending    map[string]bool
	flushTimer *time.Timer
}

// NewMirror creates a mirror for the declared target order, seeded with the
// session's current map.
func NewMirror(order []string, initial session.VisibilityMap, throttle time.Duration) *Mirror {
	return &Mirror{
		clients:  make(map[*client]bool),
		last:     initial.Clone(),
		order:    append([]string(nil), order...),
		throttle: throttle,
		pending:  make(map[string]bool),
	}
}

// Run consumes a broadcaster subscription until the context ends or the
// channel closes. Call it from its own goroutine.
func (m *Mirror) Run(ctx context.Context, updates <-chan session.VisibilityMap) {
	for {
		select {
		case <-ctx.Done():
			return
		case vm, ok := <-updates:
			if !ok {
				return
			}
			m.queue(vm)
		}
	}
}

// AddClient registers a connection and immediately sends it a snapshot.
func (m *Mirror) AddClient(conn *websocket.Conn) *client {
	c := newClient(conn)

	m.mu.Lock()
	m.clients[c] = true
	m.seq++
	msg := Message{
		Type: MsgSnapshot,
		Seq:  m.seq,
		Payload: SnapshotPayload{
			Targets:    append([]string(nil), m.order...),
			Visibility: m.last.Clone(),
		},
	}
	m.mu.Unlock()

	data, _ := json.Marshal(msg)
	select {
	case c.send <- data:
	default:
		// Client too slow for its own snapshot; it will be dropped on
		// the next broadcast anyway.
	}
	return c
}

// RemoveClient unregisters a connection.
func (m *Mirror) RemoveClient(c *client) {
	m.mu.Lock()
	if _, ok := m.clients[c]; ok {
		delete(m.clients, c)
		c.close()
	}
	m.mu.Unlock()
}

// ClientCount returns the number of connected followers.
func (m *Mirror) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// queue merges one published map into the pending delta and arms the
// throttle timer.
func (m *Mirror) queue(vm session.VisibilityMap) {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()

	m.mu.Lock()
	for id, v := range vm {
		if m.last[id] != v {
			m.pending[id] = v
			m.last[id] = v
		}
	}
	m.mu.Unlock()

	if len(m.pending) == 0 {
		return
	}
	if m.throttle <= 0 {
		m.flushLocked()
		return
	}
	if m.flushTimer == nil {
		m.flushTimer = time.AfterFunc(m.throttle, m.flush)
	}
}

func (m *Mirror) flush() {
	m.flushMu.Lock()
	defer m.flushMu.Unlock()
	m.flushLocked()
}

func (m *Mirror) flushLocked() {
	changes := m.pending
	m.pending = make(map[string]bool)
	m.flushTimer = nil

	if len(changes) == 0 {
		return
	}
	m.broadcast(MsgDelta, DeltaPayload{Changes: changes})
}

func (m *Mirror) broadcast(t MessageType, payload interface{}) {
	m.mu.Lock()
	m.seq++
	msg := Message{Type: t, Seq: m.seq, Payload: payload}
	clients := make([]*client, 0, len(m.clients))
	for c := range m.clients {
		clients = append(clients, c)
	}
	m.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("mirror marshal error: %v", err)
		return
	}

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			log.Printf("ws client too slow, disconnecting")
			m.RemoveClient(c)
		}
	}
}
