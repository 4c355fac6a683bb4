package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/repository"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/service"
)

const (
	msgHistoryFetched      = "تم جلب تاريخ التغييرات بنجاح"
	msgHistoryFetchFailed  = "خطأ في جلب تاريخ التغييرات"
	msgHistoryIDRequired   = "معرف السجل مطلوب"
	msgHistoryNotFound     = "السجل غير موجود"
	msgHistoryDeleted      = "تم حذف السجل بنجاح"
	msgHistoryDeleteFailed = "خطأ في حذف السجل"
	msgHistoryExportFailed = "خطأ في تصدير تاريخ التغييرات"
)

// ContactHistoryHandler serves the audit log: paginated listing, single-entry
// deletion and Excel export.
type ContactHistoryHandler struct {
	svc    *service.HistoryService
	logger *zap.Logger
}

func NewContactHistoryHandler(svc *service.HistoryService, logger *zap.Logger) *ContactHistoryHandler {
	return &ContactHistoryHandler{svc: svc, logger: logger}
}

func historyQuery(r *http.Request) (service.HistoryQuery, bool) {
	q := service.HistoryQuery{
		Page:   parseInt(r.URL.Query().Get("page"), 1),
		Limit:  parseInt(r.URL.Query().Get("limit"), 10),
		Action: r.URL.Query().Get("action"),
	}
	start, ok := parseDate(r.URL.Query().Get("startDate"))
	if !ok {
		return q, false
	}
	end, ok := parseDate(r.URL.Query().Get("endDate"))
	if !ok {
		return q, false
	}
	q.StartDate = start
	q.EndDate = end
	return q, true
}

func (h *ContactHistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	q, ok := historyQuery(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail(msgInvalidData))
		return
	}

	page, err := h.svc.List(r.Context(), q)
	if err != nil {
		h.logger.Error("contact history list failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(msgHistoryFetchFailed))
		return
	}
	writeJSON(w, http.StatusOK, Ok(msgHistoryFetched, page))
}

func (h *ContactHistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, Fail(msgHistoryIDRequired))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail(msgHistoryNotFound))
			return
		}
		h.logger.Error("contact history delete failed", zap.String("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(msgHistoryDeleteFailed))
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: msgHistoryDeleted})
}

// Export streams the filtered audit log as an Excel workbook.
func (h *ContactHistoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	q, ok := historyQuery(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail(msgInvalidData))
		return
	}

	entries, err := h.svc.ListForExport(r.Context(), q)
	if err != nil {
		h.logger.Error("contact history export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(msgHistoryExportFailed))
		return
	}

	data, err := GenerateContactHistoryExport(entries)
	if err != nil {
		h.logger.Error("contact history export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(msgHistoryExportFailed))
		return
	}

	filename := fmt.Sprintf("contact-history-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}
