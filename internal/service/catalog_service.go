package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/gtd_store/internal/models"
	"github.com/GTDGit/gtd_store/internal/product"
	"github.com/GTDGit/gtd_store/internal/promotion"
	"github.com/GTDGit/gtd_store/internal/store"
	"github.com/GTDGit/gtd_store/internal/utils"
)

// CatalogSource supplies product definitions for the startup catalog.
type CatalogSource interface {
	GetProducts(ctx context.Context) ([]models.CatalogProduct, error)
}

// CatalogService builds the store once at startup.
type CatalogService struct {
	source CatalogSource
}

// NewCatalogService constructs a CatalogService. A nil source selects the
// builtin catalog.
func NewCatalogService(source CatalogSource) *CatalogService {
	return &CatalogService{source: source}
}

// Load builds a store from the configured catalog source.
func (s *CatalogService) Load(ctx context.Context) (*store.Store, error) {
	defs := BuiltinCatalog()
	origin := "builtin"
	if s.source != nil {
		var err error
		if defs, err = s.source.GetProducts(ctx); err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		origin = "postgres"
	}

	st := store.New()
	for _, def := range defs {
		p, err := BuildProduct(def)
		if err != nil {
			return nil, fmt.Errorf("catalog product %q: %w", def.Name, err)
		}
		st.AddProduct(p)
	}

	log.Info().
		Str("source", origin).
		Int("products", len(defs)).
		Int("total_quantity", st.TotalQuantity()).
		Msg("Catalog loaded")
	return st, nil
}

// BuildProduct turns a catalog definition into a product of the matching
// variant, with its promotion attached.
func BuildProduct(def models.CatalogProduct) (product.Product, error) {
	opts := []product.Option{product.WithActive(def.IsActive)}
	if def.PromotionKind.Valid {
		promo, err := promotion.New(
			promotion.Kind(def.PromotionKind.String),
			def.PromotionName.String,
			def.PromotionPercent.Decimal,
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, product.WithPromotion(promo))
	}

	var (
		p   product.Product
		err error
	)
	switch product.Kind(def.Kind) {
	case product.KindStandard:
		var sp *product.Standard
		if sp, err = product.New(def.Name, def.Price, def.Quantity, opts...); err == nil {
			p = sp
		}
	case product.KindNonStocked:
		var np *product.NonStocked
		if np, err = product.NewNonStocked(def.Name, def.Price, opts...); err == nil {
			p = np
		}
	case product.KindLimited:
		if !def.MaxPerOrder.Valid {
			return nil, fmt.Errorf("%w: limited product needs a maximum per order", utils.ErrInvalidArgument)
		}
		var lp *product.Limited
		if lp, err = product.NewLimited(def.Name, def.Price, def.Quantity, int(def.MaxPerOrder.Int64), opts...); err == nil {
			p = lp
		}
	default:
		err = fmt.Errorf("%w: unknown product kind %q", utils.ErrInvalidArgument, def.Kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// BuiltinCatalog is the default store inventory.
func BuiltinCatalog() []models.CatalogProduct {
	withPromotion := func(def models.CatalogProduct, kind promotion.Kind, name string, percent int64) models.CatalogProduct {
		def.PromotionKind = sql.NullString{String: string(kind), Valid: true}
		def.PromotionName = sql.NullString{String: name, Valid: true}
		def.PromotionPercent = decimal.NewNullDecimal(decimal.NewFromInt(percent))
		return def
	}

	return []models.CatalogProduct{
		withPromotion(models.CatalogProduct{
			Position: 1, Name: "MacBook Air M2", Kind: string(product.KindStandard),
			Price: decimal.NewFromInt(1450), Quantity: 100, IsActive: true,
		}, promotion.KindSecondItemHalfPrice, "Second Half price!", 0),
		withPromotion(models.CatalogProduct{
			Position: 2, Name: "Bose QuietComfort Earbuds", Kind: string(product.KindStandard),
			Price: decimal.NewFromInt(250), Quantity: 500, IsActive: true,
		}, promotion.KindBuyTwoGetOneFree, "Third One Free!", 0),
		{
			Position: 3, Name: "Google Pixel 7", Kind: string(product.KindStandard),
			Price: decimal.NewFromInt(500), Quantity: 250, IsActive: true,
		},
		withPromotion(models.CatalogProduct{
			Position: 4, Name: "Windows License", Kind: string(product.KindNonStocked),
			Price: decimal.NewFromInt(125), IsActive: true,
		}, promotion.KindPercentageDiscount, "30% off!", 30),
		{
			Position: 5, Name: "Shipping", Kind: string(product.KindLimited),
			Price: decimal.NewFromInt(10), Quantity: 250, IsActive: true,
			MaxPerOrder: sql.NullInt64{Int64: 1, Valid: true},
		},
	}
}
