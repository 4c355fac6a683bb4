package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

// MemoryContactRepository backs the contact settings API when the database is
// not reachable at startup, and unit tests. Same latest-by-creation semantics
// as the Postgres implementation.
type MemoryContactRepository struct {
	mu      sync.RWMutex
	records []*domain.ContactNumbers
	now     func() time.Time

	// Seeds counts how many times the default record was created, so tests
	// can assert the lazy seed happened exactly once.
	Seeds int
}

func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{now: time.Now}
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

func (r *MemoryContactRepository) GetOrCreateDefault(_ context.Context) (*domain.ContactNumbers, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if latest := r.latestLocked(); latest != nil {
		cp := *latest
		return &cp, nil
	}

	def := domain.DefaultContactNumbers()
	ts := r.now()
	c := &domain.ContactNumbers{
		ID:               uuid.NewString(),
		UnifiedPhone:     def.UnifiedPhone,
		MarketingPhone:   def.MarketingPhone,
		FloatingPhone:    def.FloatingPhone,
		FloatingWhatsapp: def.FloatingWhatsapp,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
	r.records = append(r.records, c)
	r.Seeds++
	cp := *c
	return &cp, nil
}

func (r *MemoryContactRepository) latestLocked() *domain.ContactNumbers {
	var latest *domain.ContactNumbers
	for _, c := range r.records {
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	return latest
}

func (r *MemoryContactRepository) ApplyUpdate(_ context.Context, id string, fields map[string]string) (*domain.ContactNumbers, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.records {
		if c.ID != id {
			continue
		}
		if v, ok := fields[domain.FieldUnifiedPhone]; ok {
			c.UnifiedPhone = v
		}
		if v, ok := fields[domain.FieldMarketingPhone]; ok {
			c.MarketingPhone = v
		}
		if v, ok := fields[domain.FieldFloatingPhone]; ok {
			c.FloatingPhone = v
		}
		if v, ok := fields[domain.FieldFloatingWhatsapp]; ok {
			c.FloatingWhatsapp = v
		}
		c.UpdatedAt = r.now()
		cp := *c
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *MemoryContactRepository) ResetToDefaults(_ context.Context, id string) (*domain.ContactNumbers, error) {
	def := domain.DefaultContactNumbers()
	return r.ApplyUpdate(context.Background(), id, map[string]string{
		domain.FieldUnifiedPhone:     def.UnifiedPhone,
		domain.FieldMarketingPhone:   def.MarketingPhone,
		domain.FieldFloatingPhone:    def.FloatingPhone,
		domain.FieldFloatingWhatsapp: def.FloatingWhatsapp,
	})
}
