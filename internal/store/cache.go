// Package store holds the transient cache in front of the contact record
// store. Two backends exist: an in-process one (default, per-instance) and a
// Redis one for multi-instance deployments where per-instance staleness is
// not acceptable.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

var ErrMiss = errors.New("cache miss")

// ContactCache caches the current contact numbers record for a bounded
// window. Get returns ErrMiss when the value is absent or expired.
type ContactCache interface {
	Get(ctx context.Context) (*domain.ContactNumbers, error)
	Set(ctx context.Context, c *domain.ContactNumbers) error
	Invalidate(ctx context.Context) error
}

// MemoryCache is the per-process implementation. The clock is injected so
// tests control expiry. Readers on other instances may see values up to one
// TTL old after a write here; that staleness window is accepted.
type MemoryCache struct {
	mu    sync.Mutex
	value *domain.ContactNumbers
	setAt time.Time
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return NewMemoryCacheWithClock(ttl, time.Now)
}

func NewMemoryCacheWithClock(ttl time.Duration, now func() time.Time) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: now}
}

var _ ContactCache = (*MemoryCache)(nil)

func (c *MemoryCache) Get(_ context.Context) (*domain.ContactNumbers, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil || c.now().Sub(c.setAt) >= c.ttl {
		return nil, ErrMiss
	}
	cp := *c.value
	return &cp, nil
}

func (c *MemoryCache) Set(_ context.Context, v *domain.ContactNumbers) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *v
	c.value = &cp
	c.setAt = c.now()
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.setAt = time.Time{}
	return nil
}
