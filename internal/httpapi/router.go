package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux; the API surface is small
// enough that a third-party router buys nothing.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
	auth   func(http.HandlerFunc) http.HandlerFunc
}

func NewRouter(logger *zap.Logger, auth func(http.HandlerFunc) http.HandlerFunc) *Router {
	if auth == nil {
		auth = func(h http.HandlerFunc) http.HandlerFunc { return h }
	}
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
		auth:   auth,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterContactSettingsRoutes maps the four verbs of the contact numbers
// resource onto one path.
func (r *Router) RegisterContactSettingsRoutes(h *ContactSettingsHandler) {
	r.Handle("/api/settings/contact", r.auth(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.Get(w, req)
		case http.MethodPost:
			h.Post(w, req)
		case http.MethodPut:
			h.Put(w, req)
		case http.MethodDelete:
			h.Delete(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}

// RegisterContactHistoryRoutes maps the audit log listing, deletion and export.
func (r *Router) RegisterContactHistoryRoutes(h *ContactHistoryHandler) {
	r.Handle("/api/settings/contact/history", r.auth(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.Get(w, req)
		case http.MethodDelete:
			h.Delete(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	r.Handle("/api/settings/contact/history/export", r.auth(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Export(w, req)
	}))
}

// RegisterUnitStatusRoutes maps the per-project status percentage records.
func (r *Router) RegisterUnitStatusRoutes(h *UnitStatusHandler) {
	r.Handle("/api/unit-status", r.auth(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.Get(w, req)
		case http.MethodPost:
			h.Post(w, req)
		case http.MethodPut:
			h.Put(w, req)
		case http.MethodDelete:
			h.Delete(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	r.Handle("/api/unit-status/cleanup", r.auth(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Cleanup(w, req)
	}))
}

// RegisterHealthRoutes maps the liveness probe. No auth: load balancers hit it.
func (r *Router) RegisterHealthRoutes(h *HealthHandler) {
	r.Handle("/api/health", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Get(w, req)
	})
}
