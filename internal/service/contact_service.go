package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/phone"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/repository"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/store"
)

// Per-field validation messages, as shown on the settings screen.
const (
	msgUnifiedInvalid          = "الرقم الموحد يجب أن يكون 9 أرقام"
	msgMarketingInvalid        = "رقم التسويق الرئيسي يجب أن يبدأ بـ 05"
	msgFloatingPhoneInvalid    = "رقم الهاتف العائم يجب أن يبدأ بـ 05"
	msgFloatingWhatsappInvalid = "رقم الواتساب العائم يجب أن يبدأ بـ 05"
)

// ContactInput is the request body of a partial or full update. Empty fields
// count as absent.
type ContactInput struct {
	UnifiedPhone     string `json:"unifiedPhone"`
	MarketingPhone   string `json:"marketingPhone"`
	FloatingPhone    string `json:"floatingPhone"`
	FloatingWhatsapp string `json:"floatingWhatsapp"`
}

// Field returns the raw value of the named field.
func (in ContactInput) Field(name string) string {
	switch name {
	case domain.FieldUnifiedPhone:
		return in.UnifiedPhone
	case domain.FieldMarketingPhone:
		return in.MarketingPhone
	case domain.FieldFloatingPhone:
		return in.FloatingPhone
	case domain.FieldFloatingWhatsapp:
		return in.FloatingWhatsapp
	}
	return ""
}

// UpdateResult is the outcome of a partial update.
type UpdateResult struct {
	Data    domain.ContactSnapshot
	Changed []string // empty when the request was a no-op
}

// ContactService orchestrates reads and mutations of the contact numbers
// record: validation, cache handling, persistence and audit logging.
type ContactService struct {
	repo   repository.ContactRepository
	cache  store.ContactCache
	audit  *AuditRecorder
	logger *zap.Logger
}

func NewContactService(repo repository.ContactRepository, cache store.ContactCache, audit *AuditRecorder, logger *zap.Logger) *ContactService {
	return &ContactService{repo: repo, cache: cache, audit: audit, logger: logger}
}

// current is the read-through path: cache hit, else load from the store and
// repopulate.
func (s *ContactService) current(ctx context.Context) (*domain.ContactNumbers, error) {
	c, err := s.cache.Get(ctx)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, store.ErrMiss) {
		s.logger.Warn("contact cache read failed", zap.Error(err))
	}

	c, err = s.repo.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, c); err != nil {
		s.logger.Warn("contact cache populate failed", zap.Error(err))
	}
	return c, nil
}

// Current returns the numbers for the settings screen. The read path degrades
// to the hardcoded defaults instead of failing, so the screen always renders;
// the second return value reports that degradation.
func (s *ContactService) Current(ctx context.Context) (domain.ContactSnapshot, bool) {
	c, err := s.current(ctx)
	if err != nil {
		s.logger.Error("contact read degraded to defaults", zap.Error(err))
		return domain.DefaultContactNumbers(), true
	}
	return c.Snapshot(), false
}

// validate collects every violation among the present fields, not just the
// first one.
func validate(in ContactInput, requireAll bool) []string {
	errs := []string{}
	if (requireAll || in.UnifiedPhone != "") && !phone.ValidateUnified(in.UnifiedPhone) {
		errs = append(errs, msgUnifiedInvalid)
	}
	if (requireAll || in.MarketingPhone != "") && !phone.ValidateMarketing(in.MarketingPhone) {
		errs = append(errs, msgMarketingInvalid)
	}
	if (requireAll || in.FloatingPhone != "") && !phone.ValidateMarketing(in.FloatingPhone) {
		errs = append(errs, msgFloatingPhoneInvalid)
	}
	if (requireAll || in.FloatingWhatsapp != "") && !phone.ValidateMarketing(in.FloatingWhatsapp) {
		errs = append(errs, msgFloatingWhatsappInvalid)
	}
	return errs
}

func formatField(name, raw string) string {
	if name == domain.FieldUnifiedPhone {
		return phone.FormatUnified(raw)
	}
	return phone.FormatMarketing(raw)
}

// PartialUpdate applies the present fields that actually differ from the
// current values. A request that changes nothing succeeds without touching
// the store or the history log.
func (s *ContactService) PartialUpdate(ctx context.Context, in ContactInput, meta RequestMeta) (*UpdateResult, error) {
	if errs := validate(in, false); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	cur, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	before := cur.Snapshot()

	updates := map[string]string{}
	changed := []string{}
	for _, name := range domain.ContactFieldNames() {
		raw := in.Field(name)
		if raw == "" || raw == before.Field(name) {
			continue
		}
		updates[name] = formatField(name, raw)
		changed = append(changed, name)
	}

	if len(updates) == 0 {
		return &UpdateResult{Data: before}, nil
	}

	updated, err := s.repo.ApplyUpdate(ctx, cur.ID, updates)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("contact cache invalidate failed", zap.Error(err))
	}

	after := updated.Snapshot()
	s.audit.Record(ctx, domain.ActionUpdate, &before, &after, changed, meta)
	return &UpdateResult{Data: after, Changed: changed}, nil
}

// Replace writes all four fields unconditionally, even when a value equals
// the current one, and always logs all four field names as changed.
func (s *ContactService) Replace(ctx context.Context, in ContactInput, meta RequestMeta) (domain.ContactSnapshot, error) {
	if errs := validate(in, true); len(errs) > 0 {
		return domain.ContactSnapshot{}, &ValidationError{Errors: errs}
	}

	cur, err := s.current(ctx)
	if err != nil {
		return domain.ContactSnapshot{}, &ReadError{Err: err}
	}
	if cur.ID == "" {
		return domain.ContactSnapshot{}, repository.ErrNotFound
	}
	before := cur.Snapshot()

	updates := map[string]string{}
	for _, name := range domain.ContactFieldNames() {
		updates[name] = formatField(name, in.Field(name))
	}

	updated, err := s.repo.ApplyUpdate(ctx, cur.ID, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ContactSnapshot{}, err
		}
		return domain.ContactSnapshot{}, &WriteError{Err: err}
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("contact cache invalidate failed", zap.Error(err))
	}

	after := updated.Snapshot()
	s.audit.Record(ctx, domain.ActionUpdate, &before, &after, domain.ContactFieldNames(), meta)
	return after, nil
}

// Reset overwrites the record with the hardcoded defaults. Delete is defined
// as this reset; the record itself is never removed.
func (s *ContactService) Reset(ctx context.Context, meta RequestMeta) (domain.ContactSnapshot, error) {
	cur, err := s.current(ctx)
	if err != nil {
		return domain.ContactSnapshot{}, err
	}
	before := cur.Snapshot()

	reset, err := s.repo.ResetToDefaults(ctx, cur.ID)
	if err != nil {
		return domain.ContactSnapshot{}, err
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("contact cache invalidate failed", zap.Error(err))
	}

	after := reset.Snapshot()
	s.audit.Record(ctx, domain.ActionReset, &before, &after, domain.ContactFieldNames(), meta)
	return after, nil
}
