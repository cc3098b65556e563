package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_store/internal/service"
	"github.com/GTDGit/gtd_store/internal/utils"
)

// ProductManagementHandler handles admin product endpoints.
type ProductManagementHandler struct {
	inventory         *service.InventoryService
	lowStockThreshold int
}

// NewProductManagementHandler constructs a ProductManagementHandler.
func NewProductManagementHandler(inventory *service.InventoryService, lowStockThreshold int) *ProductManagementHandler {
	return &ProductManagementHandler{
		inventory:         inventory,
		lowStockThreshold: lowStockThreshold,
	}
}

// ListProducts handles GET /v1/admin/products
func (h *ProductManagementHandler) ListProducts(c *gin.Context) {
	products := h.inventory.AllProducts()
	utils.Success(c, 200, "Products retrieved", gin.H{
		"products":      products,
		"total":         len(products),
		"totalQuantity": h.inventory.TotalQuantity(),
	})
}

// LowStock handles GET /v1/admin/products/low-stock
func (h *ProductManagementHandler) LowStock(c *gin.Context) {
	threshold := h.lowStockThreshold
	if v := c.Query("threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			utils.Error(c, 400, "INVALID_REQUEST", "threshold must be a non-negative integer")
			return
		}
		threshold = n
	}

	products := h.inventory.LowStock(threshold)
	utils.Success(c, 200, "Low stock products retrieved", gin.H{
		"threshold": threshold,
		"products":  products,
	})
}

// CreateProduct handles POST /v1/admin/products
func (h *ProductManagementHandler) CreateProduct(c *gin.Context) {
	var req service.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.inventory.AddProduct(&req)
	if err != nil {
		handleError(c, err, "Failed to create product")
		return
	}

	utils.Success(c, 201, "Product created successfully", product)
}

// DeleteProduct handles DELETE /v1/admin/products/:name
func (h *ProductManagementHandler) DeleteProduct(c *gin.Context) {
	if err := h.inventory.RemoveProduct(c.Param("name")); err != nil {
		handleError(c, err, "Failed to delete product")
		return
	}

	utils.Success(c, 200, "Product deleted successfully", nil)
}

// UpdateQuantity handles PUT /v1/admin/products/:name/quantity
func (h *ProductManagementHandler) UpdateQuantity(c *gin.Context) {
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.inventory.SetQuantity(c.Param("name"), *req.Quantity)
	if err != nil {
		handleError(c, err, "Failed to update quantity")
		return
	}

	utils.Success(c, 200, "Quantity updated", product)
}

// UpdateStatus handles PUT /v1/admin/products/:name/status
func (h *ProductManagementHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.inventory.SetActive(c.Param("name"), *req.Active)
	if err != nil {
		handleError(c, err, "Failed to update status")
		return
	}

	utils.Success(c, 200, "Status updated", product)
}

// SetPromotion handles PUT /v1/admin/products/:name/promotion
func (h *ProductManagementHandler) SetPromotion(c *gin.Context) {
	var req service.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.inventory.SetPromotion(c.Param("name"), &req)
	if err != nil {
		handleError(c, err, "Failed to set promotion")
		return
	}

	utils.Success(c, 200, "Promotion updated", product)
}

// RemovePromotion handles DELETE /v1/admin/products/:name/promotion
func (h *ProductManagementHandler) RemovePromotion(c *gin.Context) {
	product, err := h.inventory.RemovePromotion(c.Param("name"))
	if err != nil {
		handleError(c, err, "Failed to remove promotion")
		return
	}

	utils.Success(c, 200, "Promotion removed", product)
}
