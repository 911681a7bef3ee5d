package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"salary-dashboard/internal/app"
	"salary-dashboard/internal/chart"
	"salary-dashboard/internal/config"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var pageTmpl = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templatesFS, "templates/dashboard.html"),
)

type DashboardHandler struct {
	App *app.App
	Cfg config.Config
}

type page struct {
	Title          string
	TotalEmployees int
	Sections       []pageSection
}

type pageSection struct {
	app.Section
	Panels []pagePanel
}

type pagePanel struct {
	app.Panel
	CategoryLabel string
	ValueLabel    string
	SVG           template.HTML
	Cells         []cell
}

type cell struct {
	Category string
	Value    string
}

func (h DashboardHandler) spec(p app.Panel, sec app.Section) chart.Spec {
	c := h.Cfg.Charts
	return chart.SpecFor(sec.Axis, p.Measure).WithSize(c.Width, c.Height, c.BarWidth)
}

func (h DashboardHandler) build(v app.View) page {
	pg := page{Title: v.Title, TotalEmployees: v.TotalEmployees}
	for _, sec := range v.Sections {
		ps := pageSection{Section: sec}
		for _, p := range sec.Panels {
			spec := h.spec(p, sec)

			var svg bytes.Buffer
			// a bytes.Buffer never fails to write
			_ = chart.RenderBarChart(&svg, p.Rows, spec)

			pp := pagePanel{
				Panel:         p,
				CategoryLabel: spec.CategoryLabel,
				ValueLabel:    spec.ValueLabel,
				SVG:           template.HTML(svg.String()),
			}
			for _, row := range p.Rows {
				val := chart.NotAvailable
				if f, ok := row.Value(p.Measure); ok {
					val = chart.FormatValue(p.Measure, f)
				}
				pp.Cells = append(pp.Cells, cell{Category: row.Category, Value: val})
			}
			ps.Panels = append(ps.Panels, pp)
		}
		pg.Sections = append(pg.Sections, ps)
	}
	return pg
}

// Page re-renders the whole dashboard for the selections in the request's
// query string.
func (h DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such page")
		return
	}

	v, err := h.App.Render(pageSelections(h.App, r.URL.Query()))
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, h.build(v)); err != nil {
		LoggerFrom(r.Context()).Error("render page", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "render_failed", "could not render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
