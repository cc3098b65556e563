package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_store/internal/product"
	"github.com/GTDGit/gtd_store/internal/sse"
)

// InventoryReader is the part of the inventory service the report needs.
type InventoryReader interface {
	TotalQuantity() int
	LowStock(threshold int) []product.Snapshot
}

// InventoryReportWorker periodically logs stock levels and pushes a snapshot
// to admin SSE clients.
type InventoryReportWorker struct {
	inventory InventoryReader
	notifier  sse.InventoryNotifier
	threshold int
	interval  time.Duration
}

// NewInventoryReportWorker constructs an InventoryReportWorker.
func NewInventoryReportWorker(inventory InventoryReader, notifier sse.InventoryNotifier, threshold int, interval time.Duration) *InventoryReportWorker {
	return &InventoryReportWorker{
		inventory: inventory,
		notifier:  notifier,
		threshold: threshold,
		interval:  interval,
	}
}

// Start begins the report loop and returns when ctx is cancelled.
func (w *InventoryReportWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		log.Info().Msg("Inventory report worker disabled")
		return
	}
	log.Info().Dur("interval", w.interval).Int("threshold", w.threshold).Msg("Starting inventory report worker")

	w.run()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Inventory report worker stopped")
			return
		}
	}
}

func (w *InventoryReportWorker) run() {
	total := w.inventory.TotalQuantity()
	low := w.inventory.LowStock(w.threshold)

	names := make([]string, 0, len(low))
	for _, p := range low {
		names = append(names, p.Name)
	}

	event := log.Info()
	if len(names) > 0 {
		event = log.Warn()
	}
	event.Int("total_quantity", total).Strs("low_stock", names).Msg("Inventory report")

	w.notifier.NotifyInventorySnapshot(total, names)
}
