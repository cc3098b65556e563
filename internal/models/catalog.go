package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// CatalogProduct is one product definition used to build the store at
// startup. Promotion fields come from a LEFT JOIN and are NULL when the
// product has none.
type CatalogProduct struct {
	ID               int                 `db:"id" json:"id"`
	Position         int                 `db:"position" json:"position"`
	Name             string              `db:"name" json:"name"`
	Kind             string              `db:"kind" json:"kind"`
	Price            decimal.Decimal     `db:"price" json:"price"`
	Quantity         int                 `db:"quantity" json:"quantity"`
	MaxPerOrder      sql.NullInt64       `db:"max_per_order" json:"-"`
	IsActive         bool                `db:"is_active" json:"isActive"`
	PromotionName    sql.NullString      `db:"promotion_name" json:"-"`
	PromotionKind    sql.NullString      `db:"promotion_kind" json:"-"`
	PromotionPercent decimal.NullDecimal `db:"promotion_percent" json:"-"`
}
