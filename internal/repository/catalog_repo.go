package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/gtd_store/internal/models"
)

// CatalogRepository reads the startup catalog. It never writes; inventory
// changes live only in memory.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetProducts returns every catalog product with its promotion, in display order.
func (r *CatalogRepository) GetProducts(ctx context.Context) ([]models.CatalogProduct, error) {
	const q = `
        SELECT
            p.id, p.position, p.name, p.kind, p.price, p.quantity,
            p.max_per_order, p.is_active,
            pr.name AS promotion_name,
            pr.kind AS promotion_kind,
            pr.percent AS promotion_percent
        FROM catalog_products p
        LEFT JOIN catalog_promotions pr ON pr.id = p.promotion_id
        ORDER BY p.position, p.id`

	stmt, err := r.db.PreparexContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var products []models.CatalogProduct
	if err := stmt.SelectContext(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
