// Package cache keeps read-mostly menu data in redis. Every call is best effort:
// a nil cache, a missing client or a redis error behaves like a miss.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"eathub/models"

	"github.com/redis/go-redis/v9"
)

const (
	KeyCategories = "eathub:categories"
	KeyFeatured   = "eathub:menu:featured"
	KeyPublicMenu = "eathub:menu:public"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON decodes key into dst and reports whether it was found.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if !c.enabled() {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("cache.get_failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Warn("cache.decode_failed", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if !c.enabled() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("cache.encode_failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.Warn("cache.set_failed", "key", key, "error", err)
	}
}

// Featured returns the featured items in featured order. ok is false on a miss.
func (c *Cache) Featured(ctx context.Context) (items []models.MenuItem, ok bool) {
	if !c.enabled() {
		return nil, false
	}
	n, err := c.rdb.Exists(ctx, KeyFeatured).Result()
	if err != nil || n == 0 {
		return nil, false
	}
	members, err := c.rdb.ZRange(ctx, KeyFeatured, 0, -1).Result()
	if err != nil {
		slog.Warn("cache.zrange_failed", "key", KeyFeatured, "error", err)
		return nil, false
	}
	items = make([]models.MenuItem, 0, len(members))
	for _, m := range members {
		var item models.MenuItem
		if err := json.Unmarshal([]byte(m), &item); err != nil {
			slog.Warn("cache.decode_failed", "key", KeyFeatured, "error", err)
			return nil, false
		}
		items = append(items, item)
	}
	return items, true
}

// PutFeatured replaces the featured set, scoring each item by its featured order.
// An empty list leaves nothing behind, so the next read misses.
func (c *Cache) PutFeatured(ctx context.Context, items []models.MenuItem) {
	if !c.enabled() {
		return
	}
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, KeyFeatured)
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			slog.Warn("cache.encode_failed", "key", KeyFeatured, "error", err)
			return
		}
		// ID breaks ties between equal featured orders.
		score := float64(item.FeaturedOrder) + float64(item.ID)/1e9
		pipe.ZAdd(ctx, KeyFeatured, redis.Z{Score: score, Member: raw})
	}
	if len(items) > 0 {
		pipe.Expire(ctx, KeyFeatured, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("cache.put_featured_failed", "error", err)
	}
}

// Invalidate drops keys after a mutation.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.enabled() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache.invalidate_failed", "keys", keys, "error", err)
	}
}

// InvalidateMenu drops everything derived from menu items.
func (c *Cache) InvalidateMenu(ctx context.Context) {
	c.Invalidate(ctx, KeyFeatured, KeyPublicMenu)
}
