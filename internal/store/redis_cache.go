package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

const contactCacheKey = "settings:contact:current"

// RedisCache shares the contact cache across instances, so an invalidation
// performed by one instance is visible to all of them.
type RedisCache struct {
	c   *redis.Client
	ttl time.Duration
}

func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{c: c, ttl: ttl}
}

var _ ContactCache = (*RedisCache)(nil)

func (r *RedisCache) Get(ctx context.Context) (*domain.ContactNumbers, error) {
	raw, err := r.c.Get(ctx, contactCacheKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, err
	}
	var c domain.ContactNumbers
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		// a corrupt entry behaves like a miss; the next Set overwrites it
		return nil, ErrMiss
	}
	return &c, nil
}

func (r *RedisCache) Set(ctx context.Context, c *domain.ContactNumbers) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.c.Set(ctx, contactCacheKey, string(raw), r.ttl).Err()
}

func (r *RedisCache) Invalidate(ctx context.Context) error {
	return r.c.Del(ctx, contactCacheKey).Err()
}
