package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/safetrip/safetrip/internal/domain"
)

// Cache key prefixes and TTLs.
const (
	spotKeyPrefix     = "spot:"
	negCacheKeySuffix = ":neg"

	// DefaultSpotTTL is the TTL for cached spot data. The catalog is
	// read-mostly, so a long TTL is acceptable.
	DefaultSpotTTL = 1 * time.Hour

	// NegativeCacheTTL is the TTL for negative cache entries.
	NegativeCacheTTL = 5 * time.Minute
)

// ErrCacheMiss indicates the key is not cached either way.
var ErrCacheMiss = errors.New("cache miss")

// GetSpot retrieves a spot from cache by id.
// Returns ErrCacheMiss if not cached, or domain.ErrSpotNotFound if the
// absence of the spot is negatively cached.
func (c *Cache) GetSpot(ctx context.Context, id uuid.UUID) (*domain.Spot, error) {
	key := spotKeyPrefix + id.String()

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var spot domain.Spot
		if err := json.Unmarshal(data, &spot); err != nil {
			return nil, fmt.Errorf("corrupt cached spot: %w", err)
		}
		return &spot, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	neg, err := c.client.Exists(ctx, key+negCacheKeySuffix).Result()
	if err != nil {
		return nil, fmt.Errorf("redis exists failed: %w", err)
	}
	if neg > 0 {
		return nil, domain.ErrSpotNotFound
	}

	return nil, ErrCacheMiss
}

// SetSpot stores a spot in cache and clears any negative entry.
func (c *Cache) SetSpot(ctx context.Context, spot *domain.Spot) error {
	key := spotKeyPrefix + spot.ID.String()

	data, err := json.Marshal(spot)
	if err != nil {
		return fmt.Errorf("failed to marshal spot: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, DefaultSpotTTL)
	pipe.Del(ctx, key+negCacheKeySuffix)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// SetSpotMissing records that a spot id does not exist, for a short TTL,
// so repeated lookups of bogus ids do not hit the store.
func (c *Cache) SetSpotMissing(ctx context.Context, id uuid.UUID) error {
	key := spotKeyPrefix + id.String() + negCacheKeySuffix
	if err := c.client.Set(ctx, key, "1", NegativeCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateSpot drops both positive and negative entries for a spot.
func (c *Cache) InvalidateSpot(ctx context.Context, id uuid.UUID) error {
	key := spotKeyPrefix + id.String()
	if err := c.client.Del(ctx, key, key+negCacheKeySuffix).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
