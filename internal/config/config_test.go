package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("CORS_ALLOWED_HOSTS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, CatalogSourceBuiltin, cfg.Catalog.Source)
	assert.Equal(t, 10, cfg.Catalog.LowStockThreshold)
	assert.Empty(t, cfg.Redis.Host)
	assert.Equal(t, 24*time.Hour, cfg.Redis.ReceiptTTL)
	assert.Equal(t, time.Minute, cfg.Worker.InventoryReportInterval)
	assert.Equal(t, 12*time.Hour, cfg.Admin.TokenTTL)
	assert.Equal(t, []string{"localhost:3000", "127.0.0.1:3000"}, cfg.CORSAllowedHosts)
}

func TestLoad_CORSAllowedHosts(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("CORS_ALLOWED_HOSTS", " Admin.Store.test , ,store.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"admin.store.test", "store.test"}, cfg.CORSAllowedHosts)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_PostgresCatalogNeedsDatabase(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CATALOG_SOURCE", CatalogSourcePostgres)
	t.Setenv("DB_HOST", "")

	_, err := Load()
	assert.ErrorContains(t, err, "database configuration incomplete")

	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "store")
	t.Setenv("DB_NAME", "store")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5432", cfg.DB.Port)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown catalog source", key: "CATALOG_SOURCE", val: "csv"},
		{name: "bad duration", key: "INVENTORY_REPORT_INTERVAL", val: "soon"},
		{name: "negative duration", key: "RECEIPT_TTL", val: "-1m"},
		{name: "negative threshold", key: "LOW_STOCK_THRESHOLD", val: "-4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
