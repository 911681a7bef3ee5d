package httpapi

import (
	"net/http"

	"salary-dashboard/internal/config"
)

// ConfigHandler exposes the effective configuration read-only.
type ConfigHandler struct {
	Cfg config.Config
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Cfg)
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	_, vr := config.NormalizeAndValidate(h.Cfg)
	writeJSON(w, r, vr)
}
