package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GTDGit/gtd_store/internal/models"
	"github.com/GTDGit/gtd_store/internal/utils"
)

// pendingMarker holds a reference ID while its order is being placed.
const pendingMarker = "pending"

// ReceiptCache keeps order receipts by caller reference ID so a repeated
// request is recognised instead of buying twice.
type ReceiptCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewReceiptCache creates a new ReceiptCache.
func NewReceiptCache(redis *RedisClient, ttl time.Duration) *ReceiptCache {
	return &ReceiptCache{
		redis: redis,
		ttl:   ttl,
	}
}

// key returns the Redis key for a reference ID.
func (c *ReceiptCache) key(referenceID string) string {
	return fmt.Sprintf("order:ref:%s", referenceID)
}

// Reserve claims referenceID. It returns false when the ID is already taken
// by a pending or completed order.
func (c *ReceiptCache) Reserve(ctx context.Context, referenceID string) (bool, error) {
	ok, err := c.redis.SetNX(ctx, c.key(referenceID), pendingMarker, c.ttl)
	if err != nil {
		return false, fmt.Errorf("failed to reserve reference id: %w", err)
	}
	return ok, nil
}

// Save stores the receipt under its reference ID, replacing the reservation.
func (c *ReceiptCache) Save(ctx context.Context, receipt *models.Receipt) error {
	jsonData, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt: %w", err)
	}
	if err := c.redis.Set(ctx, c.key(receipt.ReferenceID), string(jsonData), c.ttl); err != nil {
		return fmt.Errorf("failed to store receipt: %w", err)
	}
	return nil
}

// Get returns the receipt for referenceID. A missing key or an order still
// in flight yields utils.ErrNotFound.
func (c *ReceiptCache) Get(ctx context.Context, referenceID string) (*models.Receipt, error) {
	raw, err := c.redis.Get(ctx, c.key(referenceID))
	if errors.Is(err, redis.Nil) || raw == pendingMarker {
		return nil, fmt.Errorf("%w: receipt %q", utils.ErrNotFound, referenceID)
	}
	if err != nil {
		return nil, err
	}

	var receipt models.Receipt
	if err := json.Unmarshal([]byte(raw), &receipt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal receipt: %w", err)
	}
	return &receipt, nil
}

// Release frees a reservation after a rejected order so the caller can retry.
func (c *ReceiptCache) Release(ctx context.Context, referenceID string) error {
	return c.redis.Delete(ctx, c.key(referenceID))
}
