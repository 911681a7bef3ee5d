package httpapi

import (
	"net/url"

	"salary-dashboard/internal/analysis"
	"salary-dashboard/internal/app"
	"salary-dashboard/internal/domain"
)

const (
	// submittedParam marks a form post, so an absent axis means "nothing selected"
	// rather than "keep the current selection".
	submittedParam = "submitted"
	resetParam     = "reset"
	valueParam     = "value"
)

// pageSelections reads the page's selections from its own query string, so
// every tab carries its state in the URL. Without a submitted form (or with
// reset) both axes fall back to the defaults.
func pageSelections(a *app.App, q url.Values) app.Selections {
	sel := a.DefaultSelections()
	if q.Has(resetParam) || !q.Has(submittedParam) {
		return sel
	}
	for _, f := range domain.Fields {
		sel[f] = a.SelectionFor(f, q[string(f)])
	}
	return sel
}

// selectionFor returns the explicit value params when present, otherwise the
// session's current selection for f.
func selectionFor(s *app.Session, f domain.CategoryField, q url.Values) analysis.Selection {
	if q.Has(valueParam) || q.Has(submittedParam) {
		return analysis.NewSelection(q[valueParam]...)
	}
	return s.Selections()[f]
}
