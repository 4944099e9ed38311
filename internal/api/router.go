// internal/api/router.go
//
// Admin HTTP surface for the settings store.
//
// Routes
// ------
//
//	GET  /healthz           – 200 "ok" once settings are loaded, else 503
//	GET  /settings          – current Snapshot as JSON, 503 before first load
//	POST /settings/reload   – re-run the full load; 204, 422, or 500
//	GET  /metrics           – Prometheus exposition
//
// A rejected reload leaves the previous snapshot serving; the response body
// carries the loader's error so operators can fix config.yml.
//
// Notes
// -----
// • Every response passes through middleware.Security.
// • Oxford commas, two spaces after periods.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/ftop/internal/middleware"
	"github.com/yanizio/ftop/internal/settings"
)

// Source is what the router needs from a settings store.
type Source interface {
	Current() *settings.Snapshot
	Reload() error
}

// NewRouter builds the admin handler over src.
func NewRouter(src Source, log *zap.SugaredLogger) http.Handler {
	h := &handlers{src: src, log: log}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Security)

	r.Get("/healthz", h.health)
	r.Get("/settings", h.settings)
	r.Post("/settings/reload", h.reload)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

type handlers struct {
	src Source
	log *zap.SugaredLogger
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.src.Current() == nil {
		http.Error(w, "settings not loaded", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *handlers) settings(w http.ResponseWriter, r *http.Request) {
	snap := h.src.Current()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "settings not loaded"})
		return
	}
	writeJSON(w, http.StatusOK, snap.View())
}

func (h *handlers) reload(w http.ResponseWriter, r *http.Request) {
	err := h.src.Reload()
	switch {
	case err == nil:
		h.log.Infow("settings reloaded via admin API", "remote", r.RemoteAddr)
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, settings.ErrInvalidConfiguration):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case errors.Is(err, settings.ErrFileChanged):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
