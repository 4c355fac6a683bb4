package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/repository"
)

// HistoryQuery carries the list parameters after parsing. Zero Page/Limit
// mean the defaults (1 and 10).
type HistoryQuery struct {
	Page      int
	Limit     int
	Action    string
	StartDate *time.Time
	EndDate   *time.Time
}

// Pagination mirrors what the history screen renders.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// HistoryStats counts entries per action over the filtered set. Actions with
// no matches are omitted from the JSON.
type HistoryStats struct {
	Total  int `json:"total"`
	Create int `json:"create,omitempty"`
	Update int `json:"update,omitempty"`
	Delete int `json:"delete,omitempty"`
	Reset  int `json:"reset,omitempty"`
}

// HistoryPage is one page of audit entries plus its metadata.
type HistoryPage struct {
	History    []*domain.ContactHistory `json:"history"`
	Pagination Pagination               `json:"pagination"`
	Stats      HistoryStats             `json:"stats"`
}

// HistoryService reads and prunes the audit log.
type HistoryService struct {
	repo   repository.HistoryRepository
	logger *zap.Logger
}

func NewHistoryService(repo repository.HistoryRepository, logger *zap.Logger) *HistoryService {
	return &HistoryService{repo: repo, logger: logger}
}

func (q HistoryQuery) filters() repository.HistoryFilters {
	f := repository.HistoryFilters{StartDate: q.StartDate, EndDate: q.EndDate}
	if q.Action != "" {
		action := q.Action
		f.Action = &action
	}
	return f
}

// List returns one page of entries, newest first. The per-action stats are
// computed over the same filtered set as the page, so they stay consistent
// with the filter the screen currently shows.
func (s *HistoryService) List(ctx context.Context, q HistoryQuery) (*HistoryPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	filters := q.filters()
	entries, total, err := s.repo.List(ctx, filters, page, limit)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountByAction(ctx, filters)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &HistoryPage{
		History: entries,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page*limit < total,
			HasPrev:    page > 1,
		},
		Stats: HistoryStats{
			Total:  total,
			Create: counts[domain.ActionCreate],
			Update: counts[domain.ActionUpdate],
			Delete: counts[domain.ActionDelete],
			Reset:  counts[domain.ActionReset],
		},
	}, nil
}

// Delete removes a single entry. repository.ErrNotFound when the id is unknown.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// exportPageLimit caps how many entries one Excel export fetches.
const exportPageLimit = 5000

// ListForExport fetches up to exportPageLimit filtered entries for the Excel
// export, newest first.
func (s *HistoryService) ListForExport(ctx context.Context, q HistoryQuery) ([]*domain.ContactHistory, error) {
	entries, _, err := s.repo.List(ctx, q.filters(), 1, exportPageLimit)
	return entries, err
}
