package daemon

import (
	"sync"

	"github.com/google/uuid"
)

// Hub fans values out to subscribers without ever blocking the publisher.
// A subscriber whose buffer is full misses the value.
type Hub[T any] struct {
	mu      sync.Mutex
	subs    map[string]chan T
	buffer  int
	dropped uint64
}

func NewHub[T any](buffer int) *Hub[T] {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub[T]{
		subs:   make(map[string]chan T),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned function removes it and
// closes the channel; calling it more than once is safe.
func (h *Hub[T]) Subscribe() (string, <-chan T, func()) {
	id := uuid.NewString()
	c := make(chan T, h.buffer)

	h.mu.Lock()
	h.subs[id] = c
	h.mu.Unlock()

	return id, c, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
}

func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		select {
		case sub <- v:
		default:
			h.dropped++
		}
	}
}

// Len returns the number of subscribers.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Dropped returns how many deliveries were skipped for slow subscribers.
func (h *Hub[T]) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close unsubscribes everyone.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub)
	}
}
