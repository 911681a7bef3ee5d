package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// NewMux returns the raw mux so main() can still attach /shutdown.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	d.Log = d.logger()

	// Dashboard
	dh := DashboardHandler{App: d.App, Cfg: d.Cfg}
	mux.HandleFunc("/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: d.Limiter.Limit(dh.Page),
	}))

	// Charts
	ch := ChartsHandler{App: d.App, Session: d.Session, Cfg: d.Cfg}
	mux.HandleFunc("/charts/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: d.Limiter.Limit(ch.GetByPath),
	}))

	// JSON API
	ah := APIHandler{App: d.App, Session: d.Session}
	mux.HandleFunc("/api/summary", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Summary,
	}))
	mux.HandleFunc("/api/aggregate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Aggregate,
	}))
	mux.HandleFunc("/api/view", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.View,
	}))
	mux.HandleFunc("/api/selection", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: ah.ResetSelection,
	}))
	mux.HandleFunc("/api/selection/", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: ah.PutSelection, // expects /api/selection/{axis}
	}))

	// Config
	cfh := ConfigHandler{Cfg: d.Cfg}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfh.Get,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfh.Validate,
	}))

	// Health
	hh := HealthHandler{App: d.App}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}

// NewHandler wraps mux in the standard middleware chain.
func NewHandler(d Deps, mux *http.ServeMux) http.Handler {
	log := d.logger()
	return Chain(mux, RequestID, AccessLog(log), Recover(log), Cors)
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}
