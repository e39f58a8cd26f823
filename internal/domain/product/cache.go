// internal/domain/product/cache.go
package product

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 10 * time.Minute

// Cache caches rendered product pages in Redis, keyed by slug. Cart
// mutations invalidate the entry for the touched product so stale stock
// or pricing is never served.
type Cache struct {
	redisClient *redis.Client
}

// NewCache creates a product page cache
func NewCache(redisClient *redis.Client) *Cache {
	return &Cache{redisClient: redisClient}
}

func (c *Cache) key(slug string) string {
	return fmt.Sprintf("product:slug:%s", slug)
}

// Get returns the cached product for a slug, or nil on a miss.
func (c *Cache) Get(slug string) (*Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := c.redisClient.Get(ctx, c.key(slug)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var product Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Set stores a product under its slug. Failures are ignored; the cache
// is an optimization, not a source of truth.
func (c *Cache) Set(product *Product) {
	data, err := json.Marshal(product)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c.redisClient.Set(ctx, c.key(product.Slug), data, cacheTTL)
}

// Invalidate drops the cached entry for a slug.
func (c *Cache) Invalidate(slug string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c.redisClient.Del(ctx, c.key(slug))
}
