package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

// MemoryUnitStatusRepository backs the unit-status API when no database is
// available, and tests.
type MemoryUnitStatusRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.UnitStatus // projectID -> record
	now     func() time.Time
}

func NewMemoryUnitStatusRepository() *MemoryUnitStatusRepository {
	return &MemoryUnitStatusRepository{
		records: map[string]*domain.UnitStatus{},
		now:     time.Now,
	}
}

var _ UnitStatusRepository = (*MemoryUnitStatusRepository)(nil)

func (r *MemoryUnitStatusRepository) ListAll(_ context.Context) ([]*domain.UnitStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.UnitStatus, 0, len(r.records))
	for _, u := range r.records {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectName < out[j].ProjectName })
	return out, nil
}

func (r *MemoryUnitStatusRepository) Upsert(_ context.Context, projectID, projectName string, statuses []domain.StatusShare, totalUnits int) (*domain.UnitStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now()
	u, ok := r.records[projectID]
	if !ok {
		u = &domain.UnitStatus{ID: uuid.NewString(), ProjectID: projectID, CreatedAt: ts}
		r.records[projectID] = u
	}
	u.ProjectName = projectName
	u.TotalUnits = totalUnits
	u.Statuses = append([]domain.StatusShare{}, statuses...)
	u.UpdatedAt = ts
	cp := *u
	return &cp, nil
}

func (r *MemoryUnitStatusRepository) UpdateStatuses(_ context.Context, projectID string, statuses []domain.StatusShare, totalUnits *int) (*domain.UnitStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.records[projectID]
	if !ok {
		return nil, ErrNotFound
	}
	u.Statuses = append([]domain.StatusShare{}, statuses...)
	if totalUnits != nil {
		u.TotalUnits = *totalUnits
	}
	u.UpdatedAt = r.now()
	cp := *u
	return &cp, nil
}

func (r *MemoryUnitStatusRepository) DeleteByProject(_ context.Context, projectID string) error {
	if projectID == "" {
		return ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, projectID)
	return nil
}
