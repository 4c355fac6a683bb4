package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

func sampleContact() *domain.ContactNumbers {
	return &domain.ContactNumbers{
		ID:               "c-1",
		UnifiedPhone:     "920031103",
		MarketingPhone:   "0512345678",
		FloatingPhone:    "0500000000",
		FloatingWhatsapp: "0500000000",
	}
}

func TestMemoryCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewMemoryCacheWithClock(5*time.Minute, clock)

	_, err := c.Get(ctx)
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, sampleContact()))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "c-1", got.ID)

	// still fresh one second before the window closes
	now = now.Add(5*time.Minute - time.Second)
	_, err = c.Get(ctx)
	require.NoError(t, err)

	// stale once the window elapses
	now = now.Add(time.Second)
	_, err = c.Get(ctx)
	require.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(5 * time.Minute)
	require.NoError(t, c.Set(ctx, sampleContact()))

	_, err := c.Get(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx))
	_, err = c.Get(ctx)
	require.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(5 * time.Minute)
	require.NoError(t, c.Set(ctx, sampleContact()))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	got.MarketingPhone = "0599999999"

	again, err := c.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "0512345678", again.MarketingPhone)
}

func TestRedisCache_RoundTripAndInvalidate(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()
	c := NewRedisCache(client, 5*time.Minute)

	_, err := c.Get(ctx)
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, sampleContact()))
	got, err := c.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "920031103", got.UnifiedPhone)

	require.NoError(t, c.Invalidate(ctx))
	_, err = c.Get(ctx)
	require.ErrorIs(t, err, ErrMiss)
}

func TestRedisCache_ExpiresAfterTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()
	c := NewRedisCache(client, 5*time.Minute)

	require.NoError(t, c.Set(ctx, sampleContact()))
	mr.FastForward(5*time.Minute + time.Second)

	_, err := c.Get(ctx)
	require.ErrorIs(t, err, ErrMiss)
}
