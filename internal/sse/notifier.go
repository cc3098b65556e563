package sse

import (
	"time"

	"github.com/GTDGit/gtd_store/internal/models"
)

// InventoryNotifier is the interface services use to emit inventory events.
type InventoryNotifier interface {
	NotifyOrderPlaced(receipt *models.Receipt)
	NotifyProductDeactivated(name string)
	NotifyInventorySnapshot(totalQuantity int, lowStock []string)
}

// HubNotifier implements InventoryNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyOrderPlaced(receipt *models.Receipt) {
	if n.hub.ClientCount() == 0 {
		return
	}
	total := receipt.Total
	n.hub.Broadcast(&Event{
		Event:       EventOrderPlaced,
		OrderID:     receipt.OrderID,
		ReferenceID: receipt.ReferenceID,
		Total:       &total,
		Timestamp:   time.Now(),
	})
}

func (n *HubNotifier) NotifyProductDeactivated(name string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&Event{
		Event:       EventProductDeactivated,
		ProductName: name,
		Timestamp:   time.Now(),
	})
}

func (n *HubNotifier) NotifyInventorySnapshot(totalQuantity int, lowStock []string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&Event{
		Event:         EventInventorySnapshot,
		TotalQuantity: &totalQuantity,
		LowStock:      lowStock,
		Timestamp:     time.Now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) NotifyOrderPlaced(receipt *models.Receipt)                    {}
func (n *NopNotifier) NotifyProductDeactivated(name string)                         {}
func (n *NopNotifier) NotifyInventorySnapshot(totalQuantity int, lowStock []string) {}
