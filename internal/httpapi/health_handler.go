package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/raf-aleaqarih/raf-dashboard-main/internal/service"
)

// HealthHandler answers the liveness probe with store and upstream status.
type HealthHandler struct {
	db      *sql.DB
	backend *service.BackendClient
	env     string
	started time.Time
}

func NewHealthHandler(db *sql.DB, backend *service.BackendClient, env string) *HealthHandler {
	return &HealthHandler{db: db, backend: backend, env: env, started: time.Now()}
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	dbStatus := "disabled"
	if h.db != nil {
		dbStatus = "ok"
		if err := h.db.PingContext(ctx); err != nil {
			dbStatus = "down"
		}
	}

	backendStatus := "disabled"
	if h.backend != nil {
		backendStatus = "ok"
		if err := h.backend.Ping(ctx); err != nil {
			backendStatus = "down"
		}
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]any{
			"status":        "ok",
			"environment":   h.env,
			"uptimeSeconds": int(time.Since(h.started).Seconds()),
			"database":      dbStatus,
			"backend":       backendStatus,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		},
	})
}
