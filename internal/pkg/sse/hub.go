package sse

import (
	"sync"
)

// Event is one server-sent event pushed to company subscribers. Data is
// marshalled to JSON by the HTTP handler at write time.
type Event struct {
	CompanyID string
	Event     string
	Data      interface{}
}

// Hub fans events out to all live subscribers of a company. Attendance
// records and verification outcomes are published here so admin
// dashboards see them without polling.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for a company and returns the event
// channel plus a cleanup function the caller must invoke on disconnect.
func (h *Hub) Subscribe(companyID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[companyID] == nil {
		h.subscribers[companyID] = make(map[chan Event]struct{})
	}
	h.subscribers[companyID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[companyID], ch)
		close(ch)
		if len(h.subscribers[companyID]) == 0 {
			delete(h.subscribers, companyID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every subscriber of a company. Slow
// subscribers with a full buffer are skipped, never blocked on.
func (h *Hub) Publish(companyID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[companyID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a company.
func (h *Hub) SubscriberCount(companyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[companyID]; ok {
		return len(subs)
	}
	return 0
}
