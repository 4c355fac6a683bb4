package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

// MemoryHistoryRepository mirrors the Postgres history repository for DB-less
// runs and tests.
type MemoryHistoryRepository struct {
	mu      sync.RWMutex
	entries []*domain.ContactHistory
	now     func() time.Time
}

func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{now: time.Now}
}

var _ HistoryRepository = (*MemoryHistoryRepository)(nil)

func (r *MemoryHistoryRepository) Append(_ context.Context, h *domain.ContactHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = r.now()
	}
	cp := *h
	r.entries = append(r.entries, &cp)
	return nil
}

func matches(h *domain.ContactHistory, filters HistoryFilters) bool {
	if filters.Action != nil && h.Action != *filters.Action {
		return false
	}
	if filters.StartDate != nil && h.CreatedAt.Before(*filters.StartDate) {
		return false
	}
	if filters.EndDate != nil && h.CreatedAt.After(*filters.EndDate) {
		return false
	}
	return true
}

func (r *MemoryHistoryRepository) List(_ context.Context, filters HistoryFilters, page, limit int) ([]*domain.ContactHistory, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []*domain.ContactHistory{}
	for _, h := range r.entries {
		if matches(h, filters) {
			filtered = append(filtered, h)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]*domain.ContactHistory, 0, end-start)
	for _, h := range filtered[start:end] {
		cp := *h
		out = append(out, &cp)
	}
	return out, total, nil
}

func (r *MemoryHistoryRepository) CountByAction(_ context.Context, filters HistoryFilters) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[string]int{}
	for _, h := range r.entries {
		if matches(h, filters) {
			counts[h.Action]++
		}
	}
	return counts, nil
}

func (r *MemoryHistoryRepository) Delete(_ context.Context, id string) error {
	if id == "" {
		return ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.entries {
		if h.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
