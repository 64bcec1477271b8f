package notify

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

const defaultDebounce = 250 * time.Millisecond

// Signal tells a subscriber that something under the topic changed and
// a refetch is due. It carries no payload: inserts, updates and deletes
// all collapse to "refetch". Generation lets consumers that cache a
// view discard results fetched for an older signal.
type Signal struct {
	Topic      string `json:"topic"`
	Generation uint64 `json:"generation"`
}

// StylistTopic is the per-stylist change feed (queue + calendar).
func StylistTopic(stylistID uint) string {
	return fmt.Sprintf("stylist:%d", stylistID)
}

type topic struct {
	generation uint64
	subs       map[uint64]chan Signal
	flushTimer *time.Timer
}

// Hub fans mutation signals out to in-process subscribers and connected
// websocket clients. Delivery is at-least-once per mutation; rapid
// publishes on one topic coalesce: in-process channels are size-1 with
// non-blocking sends, websocket broadcasts are debounced.
type Hub struct {
	mu       sync.Mutex
	topics   map[string]*topic
	conns    map[*conn]struct{}
	nextSub  uint64
	debounce time.Duration
}

func NewHub() *Hub {
	return &Hub{
		topics:   make(map[string]*topic),
		conns:    make(map[*conn]struct{}),
		debounce: defaultDebounce,
	}
}

func (h *Hub) topicLocked(name string) *topic {
	t, ok := h.topics[name]
	if !ok {
		t = &topic{subs: make(map[uint64]chan Signal)}
		h.topics[name] = t
	}
	return t
}

// Publish records a mutation under the topic. Never blocks.
func (h *Hub) Publish(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := h.topicLocked(name)
	t.generation++
	sig := Signal{Topic: name, Generation: t.generation}

	for _, ch := range t.subs {
		select {
		case ch <- sig:
		default:
			// a signal is already pending; the refetch it triggers
			// will observe this mutation too
		}
	}

	if t.flushTimer == nil {
		t.flushTimer = time.AfterFunc(h.debounce, func() {
			h.flush(name)
		})
	}
}

// Subscribe returns a size-1 signal channel and a cancel function. The
// cancel is synchronous and idempotent; it must be called before the
// subscriber goes away.
func (h *Hub) Subscribe(name string) (<-chan Signal, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := h.topicLocked(name)
	h.nextSub++
	id := h.nextSub

	ch := make(chan Signal, 1)
	t.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if tt, ok := h.topics[name]; ok {
				delete(tt.subs, id)
			}
		})
	}

	return ch, cancel
}

// Generation returns the current generation of a topic.
func (h *Hub) Generation(name string) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.topics[name]; ok {
		return t.generation
	}
	return 0
}

// flush pushes one debounced refetch event to websocket clients
// subscribed to the topic.
func (h *Hub) flush(name string) {
	h.mu.Lock()

	t, ok := h.topics[name]
	if !ok {
		h.mu.Unlock()
		return
	}
	t.flushTimer = nil

	ev := wsEvent{
		Type:       eventRefetch,
		Topic:      name,
		Generation: t.generation,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		h.mu.Unlock()
		return
	}

	var targets []*conn
	for c := range h.conns {
		if c.topics[name] {
			targets = append(targets, c)
		}
	}
	h.mu.Unlock()

	for _, c := range targets {
		select {
		case c.send <- data:
		default:
			// client too slow, skip; it will catch up on its next signal
		}
	}
}
