package repository

import (
	"context"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

// UnitStatusRepository stores the per-project unit-status percentages, keyed
// by project id (one row per project).
type UnitStatusRepository interface {
	ListAll(ctx context.Context) ([]*domain.UnitStatus, error)

	// Upsert creates the project row or replaces its name, totals and shares.
	Upsert(ctx context.Context, projectID, projectName string, statuses []domain.StatusShare, totalUnits int) (*domain.UnitStatus, error)

	// UpdateStatuses replaces the shares (and total when non-nil) of an
	// existing project. ErrNotFound when the project has no row.
	UpdateStatuses(ctx context.Context, projectID string, statuses []domain.StatusShare, totalUnits *int) (*domain.UnitStatus, error)

	DeleteByProject(ctx context.Context, projectID string) error
}
