package live

import "sync"

const subscriberBuffer = 16

// Hub fans stored readings and raised alerts out to every connected
// websocket client.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
	}
}

func (h *Hub) Subscribe() chan Event {
	events := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[events] = struct{}{}
	h.mu.Unlock()

	return events
}

func (h *Hub) Unsubscribe(events chan Event) {
	h.mu.Lock()
	delete(h.subscribers, events)
	h.mu.Unlock()
}

// Broadcast never blocks: a subscriber whose buffer is full misses the
// event instead of stalling the sender.
func (h *Hub) Broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for events := range h.subscribers {
		select {
		case events <- event:
		default:
		}
	}
}
