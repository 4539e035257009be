// Package slotscache caches per-day open-slot listings in Redis. Entries are
// short-lived and additionally invalidated whenever the day's calendar changes
// hands (a request lands, a consultation is accepted, an accepted one is
// cancelled), so a stale listing can only survive for one TTL after an
// availability edit.
package slotscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orienta-vg/consultation-service/pkg/types"
)

// Cache кэш списков доступных слотов
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает новый экземпляр кэша слотов
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(psychologistID string, date time.Time) string {
	return fmt.Sprintf("slots:%s:%s", psychologistID, date.Format("2006-01-02"))
}

// Get returns the cached listing, or (nil, false) on a miss. Redis outages are
// reported as misses; the caller recomputes from the database.
func (c *Cache) Get(ctx context.Context, psychologistID string, date time.Time) ([]types.TimeString, bool, error) {
	raw, err := c.client.Get(ctx, key(psychologistID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("slotscache: get: %w", err)
	}

	var slots []types.TimeString
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false, fmt.Errorf("slotscache: unmarshal: %w", err)
	}

	return slots, true, nil
}

// Set stores a listing with the configured TTL.
func (c *Cache) Set(ctx context.Context, psychologistID string, date time.Time, slots []types.TimeString) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("slotscache: marshal: %w", err)
	}

	if err := c.client.Set(ctx, key(psychologistID, date), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("slotscache: set: %w", err)
	}

	return nil
}

// Invalidate drops the cached listing for one psychologist-day.
func (c *Cache) Invalidate(ctx context.Context, psychologistID string, date time.Time) error {
	if err := c.client.Del(ctx, key(psychologistID, date)).Err(); err != nil {
		return fmt.Errorf("slotscache: del: %w", err)
	}
	return nil
}
