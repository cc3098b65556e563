package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_store/internal/service"
	"github.com/GTDGit/gtd_store/internal/utils"
)

var startTime = time.Now()

// Pinger is a dependency whose reachability is reported by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health endpoint.
type HealthHandler struct {
	inventory *service.InventoryService
	redis     Pinger
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when receipt
// caching is disabled.
func NewHealthHandler(inventory *service.InventoryService, redis Pinger) *HealthHandler {
	return &HealthHandler{inventory: inventory, redis: redis}
}

// GetHealth responds with service and Redis status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	redisStatus := "disabled"
	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		redisStatus = "connected"
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "disconnected"
		}
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":   "healthy",
		"version":  "1.0.0",
		"uptime":   int(time.Since(startTime).Seconds()),
		"products": len(h.inventory.ListProducts()),
		"redis":    gin.H{"status": redisStatus},
	})
}
