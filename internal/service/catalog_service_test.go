package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_store/internal/models"
	"github.com/GTDGit/gtd_store/internal/product"
	"github.com/GTDGit/gtd_store/internal/utils"
)

type stubSource struct {
	products []models.CatalogProduct
	err      error
}

func (s *stubSource) GetProducts(context.Context) ([]models.CatalogProduct, error) {
	return s.products, s.err
}

func TestCatalogService_LoadBuiltin(t *testing.T) {
	st, err := NewCatalogService(nil).Load(context.Background())
	require.NoError(t, err)

	products := st.Products()
	require.Len(t, products, 5)
	assert.Equal(t, 1100, st.TotalQuantity())

	want := []string{
		"MacBook Air M2, Price: $1450, Quantity: 100, Promotion: Second Half price!",
		"Bose QuietComfort Earbuds, Price: $250, Quantity: 500, Promotion: Third One Free!",
		"Google Pixel 7, Price: $500, Quantity: 250, Promotion: None",
		"Windows License, Price: $125, Quantity: Unlimited, Promotion: 30% off!",
		"Shipping, Price: $10, Quantity: 250, Limited to 1 per order!, Promotion: None",
	}
	for i, p := range products {
		assert.Equal(t, want[i], p.Show())
	}
}

func TestCatalogService_LoadFromSource(t *testing.T) {
	src := &stubSource{products: []models.CatalogProduct{
		{Name: "Cable", Kind: "standard", Price: decimal.NewFromInt(3), Quantity: 7, IsActive: true},
	}}
	st, err := NewCatalogService(src).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, st.TotalQuantity())

	_, err = NewCatalogService(&stubSource{err: errors.New("db down")}).Load(context.Background())
	assert.ErrorContains(t, err, "db down")

	bad := &stubSource{products: []models.CatalogProduct{{Name: "X", Kind: "gadget"}}}
	_, err = NewCatalogService(bad).Load(context.Background())
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
}

func TestBuildProduct(t *testing.T) {
	tests := []struct {
		name     string
		def      models.CatalogProduct
		wantKind product.Kind
		wantErr  error
	}{
		{
			name:     "standard",
			def:      models.CatalogProduct{Name: "A", Kind: "standard", Price: decimal.NewFromInt(1), Quantity: 1, IsActive: true},
			wantKind: product.KindStandard,
		},
		{
			name:     "non stocked",
			def:      models.CatalogProduct{Name: "B", Kind: "non_stocked", Price: decimal.NewFromInt(1), IsActive: true},
			wantKind: product.KindNonStocked,
		},
		{
			name: "limited",
			def: models.CatalogProduct{
				Name: "C", Kind: "limited", Price: decimal.NewFromInt(1), Quantity: 5, IsActive: true,
				MaxPerOrder: sql.NullInt64{Int64: 2, Valid: true},
			},
			wantKind: product.KindLimited,
		},
		{
			name:    "limited without maximum",
			def:     models.CatalogProduct{Name: "D", Kind: "limited", Price: decimal.NewFromInt(1), Quantity: 5},
			wantErr: utils.ErrInvalidArgument,
		},
		{
			name:    "negative price",
			def:     models.CatalogProduct{Name: "E", Kind: "standard", Price: decimal.NewFromInt(-1)},
			wantErr: utils.ErrInvalidArgument,
		},
		{
			name: "unknown promotion",
			def: models.CatalogProduct{
				Name: "F", Kind: "standard", Price: decimal.NewFromInt(1),
				PromotionKind: sql.NullString{String: "mystery", Valid: true},
				PromotionName: sql.NullString{String: "?", Valid: true},
			},
			wantErr: utils.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildProduct(tt.def)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, p.Kind())
		})
	}
}

func TestBuildProduct_InactiveFlag(t *testing.T) {
	p, err := BuildProduct(models.CatalogProduct{
		Name: "Hidden", Kind: "standard", Price: decimal.NewFromInt(1), Quantity: 3, IsActive: false,
	})
	require.NoError(t, err)
	assert.False(t, p.IsActive())
}
