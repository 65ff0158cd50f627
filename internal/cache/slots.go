// Package cache provides a short-TTL Redis cache for computed free
// slots. The cache is optional: every method is a no-op on a nil
// receiver, so the server runs unchanged without a Redis address.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"psychcare-server/internal/config"
)

// SlotCache caches resolver output per (doctor, date).
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSlotCache connects to Redis and returns the cache, or nil when no
// address is configured or the server is unreachable.
func NewSlotCache(cfg config.RedisConfig, ttl time.Duration) *SlotCache {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return &SlotCache{client: client, ttl: ttl}
}

func slotKey(doctorID, date string) string {
	return "slots:" + doctorID + ":" + date
}

// Get returns the cached slots for a doctor/date, with ok=false on any
// miss or error.
func (c *SlotCache) Get(ctx context.Context, doctorID, date string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, slotKey(doctorID, date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// Set stores the computed slots for a doctor/date. Errors are dropped;
// the cache is advisory.
func (c *SlotCache) Set(ctx context.Context, doctorID, date string, slots []string) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.client.Set(ctx, slotKey(doctorID, date), raw, c.ttl)
}

// Invalidate drops the cached slots for one doctor/date, used after a
// booking or cancellation touches that date.
func (c *SlotCache) Invalidate(ctx context.Context, doctorID, date string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, slotKey(doctorID, date))
}

// InvalidateDoctor drops every cached date for a doctor. Availability
// edits change recurring windows, which touch an unbounded set of dates.
func (c *SlotCache) InvalidateDoctor(ctx context.Context, doctorID string) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, slotKey(doctorID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
