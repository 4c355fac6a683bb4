package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/repository"
)

// RequestMeta is the slice of the HTTP request the audit trail keeps.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuditRecorder appends contact history entries. Recording is best-effort:
// a failed append is logged and swallowed, it never rolls back or delays the
// mutation that triggered it.
type AuditRecorder struct {
	repo   repository.HistoryRepository
	logger *zap.Logger
}

func NewAuditRecorder(repo repository.HistoryRepository, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{repo: repo, logger: logger}
}

func (a *AuditRecorder) Record(ctx context.Context, action string, oldData, newData *domain.ContactSnapshot, changedFields []string, meta RequestMeta) {
	h := &domain.ContactHistory{
		Action:        action,
		OldData:       oldData,
		NewData:       newData,
		ChangedFields: changedFields,
		IPAddress:     meta.IPAddress,
		UserAgent:     meta.UserAgent,
	}
	if err := a.repo.Append(ctx, h); err != nil {
		// structured so silent audit gaps are detectable operationally
		a.logger.Error("contact history append failed",
			zap.String("action", action),
			zap.Strings("changed_fields", changedFields),
			zap.Error(err))
	}
}
