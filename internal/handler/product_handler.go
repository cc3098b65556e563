package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_store/internal/service"
	"github.com/GTDGit/gtd_store/internal/utils"
)

// ProductHandler serves the public product listing.
type ProductHandler struct {
	inventory *service.InventoryService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(inventory *service.InventoryService) *ProductHandler {
	return &ProductHandler{inventory: inventory}
}

// GetProducts handles GET /v1/products. Only active products are listed.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products := h.inventory.ListProducts()
	utils.Success(c, 200, "Products retrieved successfully", gin.H{
		"products": products,
		"total":    len(products),
	})
}

// GetTotalQuantity handles GET /v1/products/total.
func (h *ProductHandler) GetTotalQuantity(c *gin.Context) {
	utils.Success(c, 200, "Total quantity retrieved", gin.H{
		"totalQuantity": h.inventory.TotalQuantity(),
	})
}
