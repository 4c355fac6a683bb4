package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/repository"
)

// ErrIncompleteUnitStatus is returned when required unit-status fields are
// missing or a percentage is out of range.
var ErrIncompleteUnitStatus = errors.New("incomplete unit status payload")

// UnitStatusInput is the upsert payload for a project's status shares.
type UnitStatusInput struct {
	ProjectID   string               `json:"projectId"`
	ProjectName string               `json:"projectName"`
	TotalUnits  int                  `json:"totalUnits"`
	Statuses    []domain.StatusShare `json:"statuses"`
}

// UnitStatusService manages the manually-entered per-project status
// percentages shown on the dashboard.
type UnitStatusService struct {
	repo    repository.UnitStatusRepository
	backend *BackendClient // optional; resolves project names when configured
	logger  *zap.Logger
}

func NewUnitStatusService(repo repository.UnitStatusRepository, backend *BackendClient, logger *zap.Logger) *UnitStatusService {
	return &UnitStatusService{repo: repo, backend: backend, logger: logger}
}

func (s *UnitStatusService) List(ctx context.Context) ([]*domain.UnitStatus, error) {
	return s.repo.ListAll(ctx)
}

func validShares(statuses []domain.StatusShare) bool {
	for _, sh := range statuses {
		if sh.Status == "" || sh.Percentage < 0 || sh.Percentage > 100 {
			return false
		}
	}
	return true
}

// Upsert creates or replaces a project's record. A missing project name is
// resolved from the listings backend when a client is configured.
func (s *UnitStatusService) Upsert(ctx context.Context, in UnitStatusInput) (*domain.UnitStatus, error) {
	if in.ProjectID == "" || in.Statuses == nil || !validShares(in.Statuses) {
		return nil, ErrIncompleteUnitStatus
	}
	if in.ProjectName == "" {
		if s.backend == nil {
			return nil, ErrIncompleteUnitStatus
		}
		name, err := s.backend.GetProjectName(ctx, in.ProjectID)
		if err != nil {
			s.logger.Warn("project name lookup failed", zap.String("project_id", in.ProjectID), zap.Error(err))
			return nil, ErrIncompleteUnitStatus
		}
		in.ProjectName = name
	}
	if in.TotalUnits < 0 {
		in.TotalUnits = 0
	}
	return s.repo.Upsert(ctx, in.ProjectID, in.ProjectName, in.Statuses, in.TotalUnits)
}

// UpdateShares replaces an existing project's shares and optionally its total.
func (s *UnitStatusService) UpdateShares(ctx context.Context, projectID string, statuses []domain.StatusShare, totalUnits *int) (*domain.UnitStatus, error) {
	if projectID == "" || statuses == nil || !validShares(statuses) {
		return nil, ErrIncompleteUnitStatus
	}
	return s.repo.UpdateStatuses(ctx, projectID, statuses, totalUnits)
}

func (s *UnitStatusService) Delete(ctx context.Context, projectID string) error {
	if projectID == "" {
		return ErrIncompleteUnitStatus
	}
	return s.repo.DeleteByProject(ctx, projectID)
}

// Cleanup drops legacy status labels from every project and reports how many
// records changed.
func (s *UnitStatusService) Cleanup(ctx context.Context) (int, error) {
	allowed := map[string]bool{}
	for _, a := range domain.AllowedUnitStatuses() {
		allowed[a] = true
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, rec := range records {
		kept := make([]domain.StatusShare, 0, len(rec.Statuses))
		for _, sh := range rec.Statuses {
			if allowed[sh.Status] {
				kept = append(kept, sh)
			}
		}
		if len(kept) == len(rec.Statuses) {
			continue
		}
		if _, err := s.repo.UpdateStatuses(ctx, rec.ProjectID, kept, nil); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
