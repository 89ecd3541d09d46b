package events

import (
	EventBus "github.com/asaskevich/EventBus"
)

// Topics published inside a service process.
const (
	TopicSaleRecorded   = "sale:recorded"
	TopicCatalogChanged = "catalog:changed"
)

// Event is the payload every topic carries.
type Event struct {
	Topic    string `json:"type"`
	EntityID string `json:"entity_id,omitempty"`
}

type Publisher interface {
	Publish(topic, entityID string)
}

type Bus struct {
	bus EventBus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

// Publish runs subscribers on the caller's goroutine; subscribers must not block.
func (b *Bus) Publish(topic, entityID string) {
	b.bus.Publish(topic, Event{Topic: topic, EntityID: entityID})
}

// Subscribe registers fn for topic. Subscriptions live for the lifetime of the bus.
func (b *Bus) Subscribe(topic string, fn func(Event)) error {
	return b.bus.Subscribe(topic, fn)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(string, string) {}
