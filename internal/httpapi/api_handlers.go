package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"salary-dashboard/internal/analysis"
	"salary-dashboard/internal/app"
	"salary-dashboard/internal/domain"
)

type APIHandler struct {
	App     *app.App
	Session *app.Session
}

type summaryResp struct {
	TotalEmployees int      `json:"totalEmployees"`
	JobTitles      []string `json:"jobTitles"`
	Countries      []string `json:"countries"`
}

func (h APIHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, summaryResp{
		TotalEmployees: h.App.TotalEmployees(),
		JobTitles:      h.App.Options(domain.JobTitle),
		Countries:      h.App.Options(domain.Country),
	})
}

type aggregateResp struct {
	Axis      domain.CategoryField    `json:"axis"`
	Selection []string                `json:"selection"`
	Rows      []analysis.AggregateRow `json:"rows"`
	Warning   string                  `json:"warning,omitempty"`
}

// Aggregate returns both measures per category for ?axis=job_title|country.
// Without value params the session's selection is used.
func (h APIHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := domain.ParseCategoryField(q.Get("axis"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_axis", err.Error())
		return
	}

	sel := selectionFor(h.Session, f, q)
	resp := aggregateResp{Axis: f, Selection: sel.Values(), Rows: []analysis.AggregateRow{}}
	if sel.IsEmpty() {
		resp.Warning = "empty selection"
		writeJSON(w, r, resp)
		return
	}

	rows, err := h.App.Aggregate(f, sel)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if rows != nil {
		resp.Rows = rows
	}
	writeJSON(w, r, resp)
}

// View returns the full dashboard view for the session's selections.
func (h APIHandler) View(w http.ResponseWriter, r *http.Request) {
	v, err := h.Session.Render()
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, r, v)
}

type selectionReq struct {
	Values []string `json:"values"`
}

// PutSelection replaces one axis' selection: PUT /api/selection/{axis}.
func (h APIHandler) PutSelection(w http.ResponseWriter, r *http.Request) {
	f, err := domain.ParseCategoryField(strings.TrimPrefix(r.URL.Path, "/api/selection/"))
	if err != nil {
		WriteError(w, r, http.StatusNotFound, "bad_axis", err.Error())
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req selectionReq
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	sel := h.Session.Select(f, req.Values)
	writeJSON(w, r, map[string]any{"axis": f, "selection": sel.Values()})
}

// ResetSelection restores the default selections: DELETE /api/selection.
func (h APIHandler) ResetSelection(w http.ResponseWriter, r *http.Request) {
	h.Session.Reset()
	w.WriteHeader(http.StatusNoContent)
}
