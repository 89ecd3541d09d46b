package catalog

import (
	"sync"

	"github.com/ridloal/lux-storefront/internal/platform/events"
)

const clientBuffer = 8

// Hub fans bus events out to connected storefront clients. It subscribes to
// the bus once; clients come and go through Subscribe.
type Hub struct {
	mu      sync.Mutex
	clients map[chan events.Event]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan events.Event]struct{})}
}

// Attach subscribes the hub to every topic a storefront cares about.
func (h *Hub) Attach(bus *events.Bus) error {
	for _, topic := range []string{events.TopicCatalogChanged, events.TopicSaleRecorded} {
		if err := bus.Subscribe(topic, h.Broadcast); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registers a client. The returned func must be called once the
// client goes away.
func (h *Hub) Subscribe() (<-chan events.Event, func()) {
	ch := make(chan events.Event, clientBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.clients, ch)
			h.mu.Unlock()
		})
	}
}

// Broadcast never blocks: a client whose buffer is full misses the event.
func (h *Hub) Broadcast(e events.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- e:
		default:
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
