package notify

import (
	"reflect"
	"sync"
)

// Hub holds the subscribers of a single task.
type Hub struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Attach adds subscriber unless it is already present. Nil is ignored.
func (h *Hub) Attach(subscriber Subscriber) {
	if subscriber == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.indexOf(subscriber) >= 0 {
		return
	}
	h.subscribers = append(h.subscribers, subscriber)
}

// Detach removes subscriber if present.
func (h *Hub) Detach(subscriber Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx := h.indexOf(subscriber)
	if idx < 0 {
		return
	}
	h.subscribers = append(h.subscribers[:idx:idx], h.subscribers[idx+1:]...)
}

// Broadcast delivers event to the subscribers registered at call time, in
// attachment order. Subscribers may attach or detach from within Receive.
func (h *Hub) Broadcast(event string) {
	for _, subscriber := range h.Subscribers() {
		subscriber.Receive(event)
	}
}

// Subscribers returns a copy of the subscriber list.
func (h *Hub) Subscribers() []Subscriber {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Subscriber(nil), h.subscribers...)
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) indexOf(subscriber Subscriber) int {
	for i, candidate := range h.subscribers {
		if same(candidate, subscriber) {
			return i
		}
	}
	return -1
}

// same compares comparable subscribers by ==, others by deep value equality.
func same(a, b Subscriber) bool {
	aType, bType := reflect.TypeOf(a), reflect.TypeOf(b)
	if aType != bType {
		return false
	}
	if aType.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
