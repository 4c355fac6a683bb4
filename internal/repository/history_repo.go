package repository

import (
	"context"
	"time"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
)

// HistoryFilters narrow history queries. All filters combine with AND.
type HistoryFilters struct {
	Action    *string    // exact match on the action enum
	StartDate *time.Time // created_at >= StartDate
	EndDate   *time.Time // created_at <= EndDate
}

// HistoryRepository is the append-only audit log store. Entries are never
// updated; retention is unbounded.
type HistoryRepository interface {
	// Append persists one entry. The caller treats failures as best-effort.
	Append(ctx context.Context, h *domain.ContactHistory) error

	// List returns one page of matching entries, newest first, plus the
	// total count over the same filters.
	List(ctx context.Context, filters HistoryFilters, page, limit int) ([]*domain.ContactHistory, int, error)

	// CountByAction aggregates per-action counts over the same filtered set
	// the List query sees, not over the whole table.
	CountByAction(ctx context.Context, filters HistoryFilters) (map[string]int, error)

	// Delete removes a single entry by id. ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
