package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Catalog sources accepted by CATALOG_SOURCE.
const (
	CatalogSourceBuiltin  = "builtin"
	CatalogSourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	// CORSAllowedHosts lists origin hosts (host[:port]) allowed by CORS.
	CORSAllowedHosts []string

	Admin   AdminConfig
	Catalog CatalogConfig
	DB      DatabaseConfig
	Redis   RedisConfig
	Worker  WorkerConfig
}

// AdminConfig holds the single admin credential for catalog management.
type AdminConfig struct {
	Email        string
	PasswordHash string
	TokenTTL     time.Duration
}

// CatalogConfig selects where the startup catalog comes from.
type CatalogConfig struct {
	Source            string
	MigrationsPath    string
	LowStockThreshold int
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters. An empty Host disables
// receipt caching.
type RedisConfig struct {
	Host       string
	Port       string
	Password   string
	DB         int
	ReceiptTTL time.Duration
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	InventoryReportInterval time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first.
func Load() (*Config, error) {
	// A missing .env is fine; production relies on real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.CORSAllowedHosts = splitList(getEnv("CORS_ALLOWED_HOSTS", "localhost:3000,127.0.0.1:3000"))

	cfg.Admin = AdminConfig{
		Email:        getEnv("ADMIN_EMAIL", ""),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	cfg.Catalog = CatalogConfig{
		Source:            getEnv("CATALOG_SOURCE", CatalogSourceBuiltin),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "file://migrations"),
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 10),
	}

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	var err error
	if cfg.Admin.TokenTTL, err = parseDurationEnv("ADMIN_TOKEN_TTL", "12h"); err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TOKEN_TTL: %w", err)
	}
	if cfg.Redis.ReceiptTTL, err = parseDurationEnv("RECEIPT_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid RECEIPT_TTL: %w", err)
	}
	if cfg.Worker.InventoryReportInterval, err = parseDurationEnv("INVENTORY_REPORT_INTERVAL", "1m"); err != nil {
		return nil, fmt.Errorf("invalid INVENTORY_REPORT_INTERVAL: %w", err)
	}

	switch cfg.Catalog.Source {
	case CatalogSourceBuiltin:
	case CatalogSourcePostgres:
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
		}
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE must be %q or %q", CatalogSourceBuiltin, CatalogSourcePostgres)
	}

	if cfg.Catalog.LowStockThreshold < 0 {
		return nil, errors.New("LOW_STOCK_THRESHOLD must be >= 0")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

// splitList splits a comma separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
