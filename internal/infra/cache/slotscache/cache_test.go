package slotscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orienta-vg/consultation-service/pkg/types"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, ttl), mr
}

var testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	// Промах до записи
	_, ok, err := cache.Get(ctx, "psy-1", testDate)
	require.NoError(t, err)
	assert.False(t, ok)

	slots := []types.TimeString{"09:00", "10:00", "11:00"}
	require.NoError(t, cache.Set(ctx, "psy-1", testDate, slots))

	got, ok, err := cache.Get(ctx, "psy-1", testDate)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, slots, got)

	// Другой день - другой ключ
	_, ok, err = cache.Get(ctx, "psy-1", testDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "psy-1", testDate, []types.TimeString{"09:00"}))
	require.NoError(t, cache.Invalidate(ctx, "psy-1", testDate))

	_, ok, err := cache.Get(ctx, "psy-1", testDate)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheTTL(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "psy-1", testDate, []types.TimeString{"09:00"}))

	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "psy-1", testDate)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheEmptyListing(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	// Пустой список тоже кэшируется и отличим от промаха
	require.NoError(t, cache.Set(ctx, "psy-1", testDate, []types.TimeString{}))

	got, ok, err := cache.Get(ctx, "psy-1", testDate)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}
