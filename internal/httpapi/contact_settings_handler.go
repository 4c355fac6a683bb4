package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/repository"
	"github.com/raf-aleaqarih/raf-dashboard-main/internal/service"
)

// User-facing messages for the contact settings verbs.
const (
	msgFetched          = "تم جلب أرقام التواصل بنجاح"
	msgFetchedDefaults  = "تم جلب أرقام التواصل بنجاح (بيانات افتراضية)"
	msgUpdated          = "تم تحديث أرقام التواصل بنجاح"
	msgUpdatedAll       = "تم تحديث جميع أرقام التواصل بنجاح"
	msgNoChanges        = "لم يتم إجراء أي تغييرات"
	msgInvalidData      = "بيانات غير صحيحة"
	msgUpdateFailed     = "خطأ في تحديث أرقام التواصل"
	msgBadContentType   = "نوع المحتوى يجب أن يكون application/json"
	msgBadBody          = "بيانات الطلب غير صحيحة"
	msgAllRequired      = "جميع الأرقام مطلوبة"
	msgReadFailed       = "فشل في جلب البيانات الحالية"
	msgWriteFailed      = "فشل في تحديث البيانات"
	msgRecordNotFound   = "لم يتم العثور على بيانات التواصل"
	msgResetDone        = "تم إعادة تعيين أرقام التواصل بنجاح"
	msgResetFailed      = "خطأ في إعادة تعيين أرقام التواصل"
	msgDBTimeout        = "انتهت مهلة الاتصال بقاعدة البيانات"
	msgDBConnection     = "مشكلة في الاتصال بقاعدة البيانات"
	msgDBRefused        = "فشل في الاتصال بقاعدة البيانات"
	msgDBUnreachable    = "لا يمكن العثور على قاعدة البيانات"
)

const maxBodyBytes = 1 << 20

// ContactSettingsHandler serves the four verbs of the contact numbers
// resource.
type ContactSettingsHandler struct {
	svc     *service.ContactService
	devMode bool // echo raw error detail in responses
	logger  *zap.Logger
}

func NewContactSettingsHandler(svc *service.ContactService, devMode bool, logger *zap.Logger) *ContactSettingsHandler {
	return &ContactSettingsHandler{svc: svc, devMode: devMode, logger: logger}
}

func (h *ContactSettingsHandler) detail(err error) string {
	if h.devMode && err != nil {
		return err.Error()
	}
	return ""
}

// connectivityMessage maps a classified store failure to its user-facing
// message, falling back to the operation's generic message.
func connectivityMessage(err error, fallback string) string {
	var connErr *repository.ConnectivityError
	if errors.As(err, &connErr) {
		switch connErr.Kind {
		case repository.KindTimeout:
			return msgDBTimeout
		case repository.KindConnection:
			return msgDBConnection
		case repository.KindRefused:
			return msgDBRefused
		case repository.KindUnreachable:
			return msgDBUnreachable
		}
	}
	var valErr *repository.ValidationError
	if errors.As(err, &valErr) {
		return msgInvalidData
	}
	return fallback
}

// Get returns the current numbers. The service already degraded to defaults
// on store failure, so this always answers success.
func (h *ContactSettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, degraded := h.svc.Current(r.Context())
	message := msgFetched
	if degraded {
		message = msgFetchedDefaults
	}
	writeJSON(w, http.StatusOK, Ok(message, data))
}

// Post applies a partial update: any subset of the four fields.
func (h *ContactSettingsHandler) Post(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if err := readBodyJSON(r, maxBodyBytes, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(msgBadBody))
		return
	}

	result, err := h.svc.PartialUpdate(r.Context(), in, requestMeta(r))
	if err != nil {
		var valErr *service.ValidationError
		if errors.As(err, &valErr) {
			resp := Fail(msgInvalidData)
			resp.Errors = valErr.Errors
			writeJSON(w, http.StatusBadRequest, resp)
			return
		}
		h.logger.Error("contact partial update failed", zap.Error(err))
		resp := Fail(msgUpdateFailed)
		resp.Error = h.detail(err)
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	message := msgUpdated
	if len(result.Changed) == 0 {
		message = msgNoChanges
	}
	writeJSON(w, http.StatusOK, Ok(message, result.Data))
}

// Put replaces all four fields. The envelope checks run before any business
// logic: content type, then body shape, then required fields.
func (h *ContactSettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeJSON(w, http.StatusBadRequest, Fail(msgBadContentType))
		return
	}

	var in service.ContactInput
	if err := readBodyJSON(r, maxBodyBytes, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(msgBadBody))
		return
	}

	missing := map[string]bool{
		"unifiedPhone":     in.UnifiedPhone == "",
		"marketingPhone":   in.MarketingPhone == "",
		"floatingPhone":    in.FloatingPhone == "",
		"floatingWhatsapp": in.FloatingWhatsapp == "",
	}
	for _, absent := range missing {
		if absent {
			resp := Fail(msgAllRequired)
			resp.MissingFields = missing
			writeJSON(w, http.StatusBadRequest, resp)
			return
		}
	}

	data, err := h.svc.Replace(r.Context(), in, requestMeta(r))
	if err != nil {
		h.writePutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(msgUpdatedAll, data))
}

// writePutError reports which step of the replace failed, with the
// connectivity-refined message for anything unclassified.
func (h *ContactSettingsHandler) writePutError(w http.ResponseWriter, err error) {
	var valErr *service.ValidationError
	if errors.As(err, &valErr) {
		resp := Fail(msgInvalidData)
		resp.Errors = valErr.Errors
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, Fail(msgRecordNotFound))
		return
	}

	h.logger.Error("contact replace failed", zap.Error(err))

	var readErr *service.ReadError
	if errors.As(err, &readErr) {
		resp := Fail(msgReadFailed)
		resp.Error = h.detail(readErr.Err)
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}
	var writeErr *service.WriteError
	if errors.As(err, &writeErr) {
		resp := Fail(msgWriteFailed)
		resp.Error = h.detail(writeErr.Err)
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	resp := Fail(connectivityMessage(err, msgUpdateFailed))
	resp.Error = h.detail(err)
	writeJSON(w, http.StatusInternalServerError, resp)
}

// Delete resets the record to the hardcoded defaults.
func (h *ContactSettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Reset(r.Context(), requestMeta(r))
	if err != nil {
		h.logger.Error("contact reset failed", zap.Error(err))
		resp := Fail(msgResetFailed)
		resp.Error = h.detail(err)
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}
	writeJSON(w, http.StatusOK, Ok(msgResetDone, data))
}
