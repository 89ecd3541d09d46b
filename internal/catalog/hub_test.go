package catalog

import (
	"testing"

	"github.com/ridloal/lux-storefront/internal/platform/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_FanOut(t *testing.T) {
	bus := events.NewBus()
	hub := NewHub()
	require.NoError(t, hub.Attach(bus))

	a, unsubA := hub.Subscribe()
	b, unsubB := hub.Subscribe()
	defer unsubB()
	assert.Equal(t, 2, hub.ClientCount())

	bus.Publish(events.TopicSaleRecorded, "sale-1")
	assert.Equal(t, events.Event{Topic: "sale:recorded", EntityID: "sale-1"}, <-a)
	assert.Equal(t, events.Event{Topic: "sale:recorded", EntityID: "sale-1"}, <-b)

	unsubA()
	unsubA()
	assert.Equal(t, 1, hub.ClientCount())

	bus.Publish(events.TopicCatalogChanged, "")
	assert.Equal(t, "catalog:changed", (<-b).Topic)
	assert.Len(t, a, 0)
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe()
	defer unsub()

	for i := 0; i < clientBuffer*3; i++ {
		hub.Broadcast(events.Event{Topic: events.TopicCatalogChanged})
	}
	assert.Len(t, ch, clientBuffer)
}
