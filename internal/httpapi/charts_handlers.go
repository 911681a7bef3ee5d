package httpapi

import (
	"bytes"
	"net/http"
	"path"
	"strings"

	"salary-dashboard/internal/app"
	"salary-dashboard/internal/chart"
	"salary-dashboard/internal/config"
	"salary-dashboard/internal/domain"
)

type ChartsHandler struct {
	App     *app.App
	Session *app.Session
	Cfg     config.Config
}

// GetByPath serves /charts/{axis}/{measure}.{svg|png}.
func (h ChartsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/charts/"), "/"), "/")
	if len(parts) != 2 {
		WriteError(w, r, http.StatusNotFound, "not_found", "expected /charts/{axis}/{measure}.{svg|png}")
		return
	}

	f, err := domain.ParseCategoryField(parts[0])
	if err != nil {
		WriteError(w, r, http.StatusNotFound, "bad_axis", err.Error())
		return
	}
	ext := path.Ext(parts[1])
	m, err := domain.ParseMeasure(strings.TrimSuffix(parts[1], ext))
	if err != nil {
		WriteError(w, r, http.StatusNotFound, "bad_measure", err.Error())
		return
	}
	format, err := chart.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		WriteError(w, r, http.StatusNotFound, "bad_format", err.Error())
		return
	}

	sel := selectionFor(h.Session, f, r.URL.Query())
	spec := chart.SpecFor(f, m).WithSize(h.Cfg.Charts.Width, h.Cfg.Charts.Height, h.Cfg.Charts.BarWidth)
	spec.Format = format

	rows, err := h.App.Aggregate(f, sel)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if sel.IsEmpty() {
		w.Header().Set("X-Warning", "empty selection")
	}

	var buf bytes.Buffer
	if err := chart.RenderBarChart(&buf, rows, spec); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
