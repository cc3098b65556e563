package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GTDGit/gtd_store/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "store",
		Password: "p@ss word",
		Name:     "catalog",
		SSLMode:  "disable",
	})
	assert.Equal(t, "postgres://store:p%40ss%20word@db:5432/catalog?sslmode=disable", dsn)
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, backoff(1))
	assert.Equal(t, 2*time.Second, backoff(3))
	assert.Equal(t, 5*time.Second, backoff(10))
}

func TestConnect_NilConfig(t *testing.T) {
	_, err := Connect(context.Background(), nil)
	assert.Error(t, err)
}

func TestConnect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Connect(ctx, &config.DatabaseConfig{
		Host: "127.0.0.1", Port: "1", User: "u", Name: "n", SSLMode: "disable",
	})
	assert.Error(t, err)
}
