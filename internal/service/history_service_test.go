package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/repository"
)

func seedHistory(t *testing.T, repo *repository.MemoryHistoryRepository, action string, at time.Time) string {
	t.Helper()
	h := &domain.ContactHistory{Action: action, CreatedAt: at}
	require.NoError(t, repo.Append(context.Background(), h))
	return h.ID
}

func newHistoryFixture(t *testing.T) (*HistoryService, *repository.MemoryHistoryRepository) {
	t.Helper()
	repo := repository.NewMemoryHistoryRepository()
	return NewHistoryService(repo, zap.NewNop()), repo
}

func TestHistoryList_PaginationMetadata(t *testing.T) {
	svc, repo := newHistoryFixture(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedHistory(t, repo, domain.ActionUpdate, base.Add(time.Duration(i)*time.Minute))
	}

	page, err := svc.List(context.Background(), HistoryQuery{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, page.History, 10)
	assert.Equal(t, 25, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)

	// newest first: page 2 starts at the 11th newest entry
	assert.True(t, page.History[0].CreatedAt.After(page.History[9].CreatedAt))
}

func TestHistoryList_DefaultsAndClamping(t *testing.T) {
	svc, repo := newHistoryFixture(t)
	seedHistory(t, repo, domain.ActionUpdate, time.Now())

	page, err := svc.List(context.Background(), HistoryQuery{Page: -3, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 10, page.Pagination.Limit)
	assert.False(t, page.Pagination.HasPrev)
}

func TestHistoryList_StatsFollowTheFilter(t *testing.T) {
	svc, repo := newHistoryFixture(t)
	june := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	july := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	seedHistory(t, repo, domain.ActionUpdate, june)
	seedHistory(t, repo, domain.ActionReset, june)
	seedHistory(t, repo, domain.ActionUpdate, july)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	page, err := svc.List(context.Background(), HistoryQuery{StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	// the July update is outside the window, so stats exclude it too
	assert.Equal(t, 2, page.Stats.Total)
	assert.Equal(t, 1, page.Stats.Update)
	assert.Equal(t, 1, page.Stats.Reset)
}

func TestHistoryList_ActionFilterScopesStats(t *testing.T) {
	svc, repo := newHistoryFixture(t)
	now := time.Now()
	seedHistory(t, repo, domain.ActionUpdate, now)
	seedHistory(t, repo, domain.ActionUpdate, now.Add(time.Minute))
	seedHistory(t, repo, domain.ActionReset, now.Add(2*time.Minute))

	page, err := svc.List(context.Background(), HistoryQuery{Action: domain.ActionUpdate})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Stats.Total)
	assert.Equal(t, 2, page.Stats.Update)
	assert.Zero(t, page.Stats.Reset)
	assert.Len(t, page.History, 2)
}

func TestHistoryList_EmptyLog(t *testing.T) {
	svc, _ := newHistoryFixture(t)

	page, err := svc.List(context.Background(), HistoryQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.History)
	assert.Zero(t, page.Pagination.Total)
	assert.Zero(t, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
}

func TestHistoryDelete(t *testing.T) {
	svc, repo := newHistoryFixture(t)
	id := seedHistory(t, repo, domain.ActionUpdate, time.Now())

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.ErrorIs(t, svc.Delete(context.Background(), id), repository.ErrNotFound)
}

func TestListForExport_ReturnsFilteredEntries(t *testing.T) {
	svc, repo := newHistoryFixture(t)
	now := time.Now()
	seedHistory(t, repo, domain.ActionUpdate, now)
	seedHistory(t, repo, domain.ActionReset, now.Add(time.Minute))

	entries, err := svc.ListForExport(context.Background(), HistoryQuery{Action: domain.ActionReset})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionReset, entries[0].Action)
}
