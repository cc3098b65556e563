package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_store/internal/config"
	"github.com/GTDGit/gtd_store/internal/database"
)

// TestCatalogRepository_GetProducts runs against DB_TEST_HOST with the
// repository migrations applied.
func TestCatalogRepository_GetProducts(t *testing.T) {
	host := os.Getenv("DB_TEST_HOST")
	if host == "" {
		t.Skip("DB_TEST_HOST not set")
	}
	cfg := &config.DatabaseConfig{
		Host:     host,
		Port:     envOr("DB_TEST_PORT", "5432"),
		User:     envOr("DB_TEST_USER", "postgres"),
		Password: os.Getenv("DB_TEST_PASSWORD"),
		Name:     envOr("DB_TEST_NAME", "postgres"),
		SSLMode:  "disable",
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.RunMigrations(db.DB, "file://../../migrations"))

	products, err := NewCatalogRepository(db).GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 5)

	assert.Equal(t, "MacBook Air M2", products[0].Name)
	assert.Equal(t, "second_item_half_price", products[0].PromotionKind.String)

	assert.Equal(t, "Google Pixel 7", products[2].Name)
	assert.False(t, products[2].PromotionKind.Valid)

	assert.Equal(t, "30", products[3].PromotionPercent.Decimal.String())

	assert.Equal(t, "limited", products[4].Kind)
	assert.EqualValues(t, 1, products[4].MaxPerOrder.Int64)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
