package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_store/internal/models"
	"github.com/GTDGit/gtd_store/internal/service"
	"github.com/GTDGit/gtd_store/internal/utils"
)

// OrderHandler handles order placement and receipt lookup.
type OrderHandler struct {
	inventory *service.InventoryService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(inventory *service.InventoryService) *OrderHandler {
	return &OrderHandler{inventory: inventory}
}

// CreateOrder handles POST /v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	receipt, err := h.inventory.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err, "Failed to place order")
		return
	}

	utils.Success(c, 201, "Order placed successfully", receipt)
}

// GetOrder handles GET /v1/orders/:referenceId
func (h *OrderHandler) GetOrder(c *gin.Context) {
	receipt, err := h.inventory.GetReceipt(c.Request.Context(), c.Param("referenceId"))
	if err != nil {
		handleError(c, err, "Failed to get order")
		return
	}

	utils.Success(c, 200, "Order retrieved", receipt)
}
