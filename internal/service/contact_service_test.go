package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/repository"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/store"
)

type contactFixture struct {
	svc     *ContactService
	repo    *repository.MemoryContactRepository
	history *repository.MemoryHistoryRepository
	cache   *store.MemoryCache
	clock   *fakeClock
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newContactFixture(t *testing.T) *contactFixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := repository.NewMemoryContactRepository()
	history := repository.NewMemoryHistoryRepository()
	cache := store.NewMemoryCacheWithClock(5*time.Minute, clock.Now)
	logger := zap.NewNop()
	svc := NewContactService(repo, cache, NewAuditRecorder(history, logger), logger)
	return &contactFixture{svc: svc, repo: repo, history: history, cache: cache, clock: clock}
}

func testMeta() RequestMeta {
	return RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test-agent"}
}

func (f *contactFixture) historyEntries(t *testing.T) []*domain.ContactHistory {
	t.Helper()
	entries, _, err := f.history.List(context.Background(), repository.HistoryFilters{}, 1, 100)
	require.NoError(t, err)
	return entries
}

func TestCurrent_SeedsDefaultsOnce(t *testing.T) {
	f := newContactFixture(t)

	first, degraded := f.svc.Current(context.Background())
	assert.False(t, degraded)
	assert.Equal(t, "920031103", first.UnifiedPhone)
	assert.Equal(t, "0500000000", first.MarketingPhone)

	second, _ := f.svc.Current(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.repo.Seeds)

	// lazy seeding never writes history
	assert.Empty(t, f.historyEntries(t))
}

type failingContactRepo struct{}

func (failingContactRepo) GetOrCreateDefault(context.Context) (*domain.ContactNumbers, error) {
	return nil, errors.New("connection refused")
}
func (failingContactRepo) ApplyUpdate(context.Context, string, map[string]string) (*domain.ContactNumbers, error) {
	return nil, errors.New("connection refused")
}
func (failingContactRepo) ResetToDefaults(context.Context, string) (*domain.ContactNumbers, error) {
	return nil, errors.New("connection refused")
}

func TestCurrent_DegradesToDefaultsOnStoreFailure(t *testing.T) {
	logger := zap.NewNop()
	svc := NewContactService(failingContactRepo{}, store.NewMemoryCache(time.Minute),
		NewAuditRecorder(repository.NewMemoryHistoryRepository(), logger), logger)

	snap, degraded := svc.Current(context.Background())
	assert.True(t, degraded)
	assert.Equal(t, domain.DefaultContactNumbers(), snap)
}

func TestPartialUpdate_ChangesOnlyDifferingFields(t *testing.T) {
	f := newContactFixture(t)

	res, err := f.svc.PartialUpdate(context.Background(), ContactInput{
		MarketingPhone: "0512345678",
		FloatingPhone:  "0500000000", // equal to current, not a change
	}, testMeta())
	require.NoError(t, err)

	assert.Equal(t, []string{domain.FieldMarketingPhone}, res.Changed)
	assert.Equal(t, "0512345678", res.Data.MarketingPhone)
	assert.Equal(t, "920031103", res.Data.UnifiedPhone)

	entries := f.historyEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionUpdate, entries[0].Action)
	assert.Equal(t, []string{domain.FieldMarketingPhone}, entries[0].ChangedFields)
	assert.Equal(t, "0500000000", entries[0].OldData.MarketingPhone)
	assert.Equal(t, "0512345678", entries[0].NewData.MarketingPhone)
	assert.Equal(t, "10.0.0.1", entries[0].IPAddress)
}

func TestPartialUpdate_NoOpSkipsStoreAndHistory(t *testing.T) {
	f := newContactFixture(t)

	res, err := f.svc.PartialUpdate(context.Background(), ContactInput{
		UnifiedPhone: "920031103",
	}, testMeta())
	require.NoError(t, err)
	assert.Empty(t, res.Changed)
	assert.Empty(t, f.historyEntries(t))
}

func TestPartialUpdate_NormalizesSeparators(t *testing.T) {
	f := newContactFixture(t)

	res, err := f.svc.PartialUpdate(context.Background(), ContactInput{
		UnifiedPhone: "920 031-104",
	}, testMeta())
	require.NoError(t, err)
	assert.Equal(t, "920031104", res.Data.UnifiedPhone)
}

func TestPartialUpdate_CollectsAllViolations(t *testing.T) {
	f := newContactFixture(t)

	_, err := f.svc.PartialUpdate(context.Background(), ContactInput{
		UnifiedPhone:   "12345",
		MarketingPhone: "0612345678",
	}, testMeta())

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Len(t, valErr.Errors, 2)
	assert.Empty(t, f.historyEntries(t))
}

func TestReplace_WritesAllFieldsAndLogsThem(t *testing.T) {
	f := newContactFixture(t)

	snap, err := f.svc.Replace(context.Background(), ContactInput{
		UnifiedPhone:     "123456789",
		MarketingPhone:   "0511111111",
		FloatingPhone:    "0522222222",
		FloatingWhatsapp: "0500000000", // unchanged value still logged
	}, testMeta())
	require.NoError(t, err)
	assert.Equal(t, "123456789", snap.UnifiedPhone)

	entries := f.historyEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ContactFieldNames(), entries[0].ChangedFields)
}

func TestReplace_RequiresAllFields(t *testing.T) {
	f := newContactFixture(t)

	_, err := f.svc.Replace(context.Background(), ContactInput{
		UnifiedPhone: "123456789",
	}, testMeta())

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Len(t, valErr.Errors, 3)
}

func TestReset_RestoresDefaults(t *testing.T) {
	f := newContactFixture(t)

	_, err := f.svc.PartialUpdate(context.Background(), ContactInput{MarketingPhone: "0512345678"}, testMeta())
	require.NoError(t, err)

	snap, err := f.svc.Reset(context.Background(), testMeta())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultContactNumbers(), snap)

	entries := f.historyEntries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActionReset, entries[0].Action)
	assert.Equal(t, "0512345678", entries[0].OldData.MarketingPhone)
}

func TestCurrent_CacheServesUntilTTL(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()

	first, _ := f.svc.Current(ctx)

	// mutate behind the cache's back
	_, err := f.repo.ApplyUpdate(ctx, seededID(t, f.repo), map[string]string{
		domain.FieldMarketingPhone: "0599999999",
	})
	require.NoError(t, err)

	stale, _ := f.svc.Current(ctx)
	assert.Equal(t, first.MarketingPhone, stale.MarketingPhone, "within TTL the cached value wins")

	f.clock.Advance(5 * time.Minute)
	fresh, _ := f.svc.Current(ctx)
	assert.Equal(t, "0599999999", fresh.MarketingPhone)
}

func TestMutationsInvalidateCache(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Current(ctx)
	_, err := f.svc.PartialUpdate(ctx, ContactInput{MarketingPhone: "0511111111"}, testMeta())
	require.NoError(t, err)

	snap, _ := f.svc.Current(ctx)
	assert.Equal(t, "0511111111", snap.MarketingPhone, "read after write sees the new value")
}

func seededID(t *testing.T, repo *repository.MemoryContactRepository) string {
	t.Helper()
	c, err := repo.GetOrCreateDefault(context.Background())
	require.NoError(t, err)
	return c.ID
}
