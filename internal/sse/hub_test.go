package sse

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_store/internal/models"
)

func TestHub_BroadcastAndUnregister(t *testing.T) {
	hub := NewHub()
	client := hub.Register("admin-1")
	assert.Equal(t, 1, hub.ClientCount())

	hub.Broadcast(&Event{Event: EventProductDeactivated, ProductName: "Shipping"})

	msg := <-client.Events
	assert.Equal(t, EventProductDeactivated, msg.Name)

	var got Event
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, "Shipping", got.ProductName)

	hub.Unregister("admin-1")
	assert.Equal(t, 0, hub.ClientCount())
	_, ok := <-client.Events
	assert.False(t, ok)

	// Unknown IDs are ignored.
	hub.Unregister("admin-1")
}

func TestHub_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	client := hub.Register("slow")

	for i := 0; i < cap(client.Events)+10; i++ {
		hub.Broadcast(&Event{Event: EventInventorySnapshot})
	}
	assert.Len(t, client.Events, cap(client.Events))
}

func TestHubNotifier(t *testing.T) {
	hub := NewHub()
	n := NewHubNotifier(hub)

	// Nothing is queued without listeners.
	n.NotifyProductDeactivated("ignored")

	client := hub.Register("admin-1")
	defer hub.Unregister("admin-1")

	n.NotifyOrderPlaced(&models.Receipt{
		OrderID:     "order-1",
		ReferenceID: "ref-1",
		Total:       decimal.RequireFromString("12.5"),
	})
	n.NotifyInventorySnapshot(42, []string{"Shipping"})

	msg := <-client.Events
	assert.Equal(t, EventOrderPlaced, msg.Name)
	var placed Event
	require.NoError(t, json.Unmarshal(msg.Data, &placed))
	assert.Equal(t, "ref-1", placed.ReferenceID)
	require.NotNil(t, placed.Total)
	assert.True(t, decimal.RequireFromString("12.5").Equal(*placed.Total))

	msg = <-client.Events
	assert.Equal(t, EventInventorySnapshot, msg.Name)
	var snap Event
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	require.NotNil(t, snap.TotalQuantity)
	assert.Equal(t, 42, *snap.TotalQuantity)
	assert.Equal(t, []string{"Shipping"}, snap.LowStock)

	assert.Empty(t, client.Events)
}
