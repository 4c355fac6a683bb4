package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/domain"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/repository"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/service"
)

const (
	msgUnitStatusIncomplete = "بيانات غير مكتملة"
	msgProjectIDRequired    = "projectId مطلوب"
	msgProjectNotFound      = "المشروع غير موجود"
	msgUnitStatusFailed     = "خطأ في معالجة نسب الحالات"
	msgCleanupFailed        = "حدث خطأ أثناء تنظيف البيانات"
)

// UnitStatusHandler serves the per-project unit-status percentage records.
type UnitStatusHandler struct {
	svc    *service.UnitStatusService
	logger *zap.Logger
}

func NewUnitStatusHandler(svc *service.UnitStatusService, logger *zap.Logger) *UnitStatusHandler {
	return &UnitStatusHandler{svc: svc, logger: logger}
}

func (h *UnitStatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("unit status list failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(msgUnitStatusFailed))
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: all})
}

func (h *UnitStatusHandler) Post(w http.ResponseWriter, r *http.Request) {
	var in service.UnitStatusInput
	if err := readBodyJSON(r, maxBodyBytes, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(msgUnitStatusIncomplete))
		return
	}

	updated, err := h.svc.Upsert(r.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrIncompleteUnitStatus) {
			writeJSON(w, http.StatusBadRequest, Fail(msgUnitStatusIncomplete))
			return
		}
		h.logger.Error("unit status upsert failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(msgUnitStatusFailed))
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: updated})
}

type unitStatusPutBody struct {
	ProjectID  string               `json:"projectId"`
	Statuses   []domain.StatusShare `json:"statuses"`
	TotalUnits *int                 `json:"totalUnits"`
}

func (h *UnitStatusHandler) Put(w http.ResponseWriter, r *http.Request) {
	var in unitStatusPutBody
	if err := readBodyJSON(r, maxBodyBytes, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(msgUnitStatusIncomplete))
		return
	}

	updated, err := h.svc.UpdateShares(r.Context(), in.ProjectID, in.Statuses, in.TotalUnits)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncompleteUnitStatus):
			writeJSON(w, http.StatusBadRequest, Fail(msgUnitStatusIncomplete))
		case errors.Is(err, repository.ErrNotFound):
			writeJSON(w, http.StatusNotFound, Fail(msgProjectNotFound))
		default:
			h.logger.Error("unit status update failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail(msgUnitStatusFailed))
		}
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: updated})
}

func (h *UnitStatusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		writeJSON(w, http.StatusBadRequest, Fail(msgProjectIDRequired))
		return
	}
	if err := h.svc.Delete(r.Context(), projectID); err != nil {
		h.logger.Error("unit status delete failed", zap.String("project_id", projectID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(msgUnitStatusFailed))
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true})
}

// Cleanup purges legacy status labels from every project record.
func (h *UnitStatusHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	updated, err := h.svc.Cleanup(r.Context())
	if err != nil {
		h.logger.Error("unit status cleanup failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(msgCleanupFailed))
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("تم تنظيف %d مشروع من الحالات القديمة", updated),
		Data:    map[string]int{"updatedCount": updated},
	})
}
