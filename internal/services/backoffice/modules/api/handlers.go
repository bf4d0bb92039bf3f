package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/format"
	"github.com/louisbranch/backoffice/internal/platform/theme"
	"github.com/louisbranch/backoffice/internal/platform/timeouts"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/themepref"
)

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"
)

type handlers struct {
	db          Database
	now         func() time.Time
	resolveMode module.ResolveThemeMode
}

// HealthResponse is the /api/health body.
type HealthResponse struct {
	Status       string `json:"status"`
	Database     string `json:"database"`
	DatabaseSize string `json:"database_size,omitempty"`
	Timestamp    string `json:"timestamp"`
}

func (h handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(httpx.RequestContext(r), timeouts.StoreQuery)
	defer cancel()

	response := HealthResponse{
		Status:    statusOK,
		Database:  statusOK,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		log.Printf("backoffice health check failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		response.Status = statusUnavailable
		response.Database = statusUnavailable
		status = http.StatusServiceUnavailable
	} else if size, err := h.db.Size(ctx); err == nil {
		response.DatabaseSize = format.Bytes(size)
	}
	w.Header().Set("Cache-Control", "no-store")
	_ = httpx.WriteJSON(w, status, response)
}

// handleTheme returns the composed theme for ?mode= and ?dir=. Without a
// mode the stored preference applies.
func (h handlers) handleTheme(w http.ResponseWriter, r *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, theme.Compose(h.mode(r), theme.ParseDirection(r.URL.Query().Get("dir"))))
}

func (h handlers) mode(r *http.Request) theme.Mode {
	if raw := r.URL.Query().Get("mode"); raw != "" {
		return theme.ParseMode(raw)
	}
	if h.resolveMode != nil {
		return h.resolveMode(r)
	}
	return themepref.Read(r)
}
