package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one requested line of an order, addressed by product name.
type OrderLine struct {
	ProductName string `json:"productName" binding:"required"`
	Quantity    int    `json:"quantity"`
}

// OrderRequest is the payload accepted by the order endpoint. ReferenceID is
// chosen by the caller and makes the request idempotent while its receipt is
// cached.
type OrderRequest struct {
	ReferenceID string      `json:"referenceId" binding:"required"`
	Lines       []OrderLine `json:"lines" binding:"required,min=1,dive"`
}

// Receipt records a completed order.
type Receipt struct {
	OrderID     string          `json:"orderId"`
	ReferenceID string          `json:"referenceId"`
	Lines       []OrderLine     `json:"lines"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"createdAt"`
}
