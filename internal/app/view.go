package app

import (
	"salary-dashboard/internal/analysis"
	"salary-dashboard/internal/domain"
)

const PageTitle = "Employee Salary Analysis"

// Selections maps each axis to its current selection. A missing axis
// counts as an empty selection.
type Selections map[domain.CategoryField]analysis.Selection

// Clone returns a shallow copy; Selection values are immutable.
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// View is everything the UI needs to draw one page.
type View struct {
	Title          string    `json:"title"`
	TotalEmployees int       `json:"totalEmployees"`
	Sections       []Section `json:"sections"`
}

type Section struct {
	Axis    domain.CategoryField `json:"axis"`
	Heading string               `json:"heading"`
	Prompt  string               `json:"prompt"`
	Options []Option             `json:"options"`
	// Warning is set instead of Panels when nothing is selected.
	Warning string  `json:"warning,omitempty"`
	Panels  []Panel `json:"panels,omitempty"`
}

type Option struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// Panel is one chart: a measure plotted per category.
type Panel struct {
	Measure domain.Measure          `json:"measure"`
	Title   string                  `json:"title"`
	Rows    []analysis.AggregateRow `json:"rows"`
	// Undefined lists categories whose value could not be computed.
	Undefined []string `json:"undefined,omitempty"`
}

// SelectedValues returns the selected option values in display order.
func (s Section) SelectedValues() []string {
	var out []string
	for _, o := range s.Options {
		if o.Selected {
			out = append(out, o.Value)
		}
	}
	return out
}

func warningFor(f domain.CategoryField) string {
	switch f {
	case domain.JobTitle:
		return "Please select at least one job title."
	case domain.Country:
		return "Please select at least one country."
	}
	return "Please select at least one value."
}

// Render builds the full view for sel over the cached table. It has no side
// effects beyond the state bookkeeping and may be called any number of times.
func (a *App) Render(sel Selections) (View, error) {
	table, total, values, err := a.beginRender()
	if err != nil {
		return View{}, err
	}
	defer a.endRender()

	return BuildView(table, total, values, sel), nil
}

// beginRender counts one more render in flight; State reports Rendering
// until every begun render has ended.
func (a *App) beginRender() ([]domain.EmployeeRecord, int, map[domain.CategoryField][]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == Init {
		return nil, 0, nil, ErrNotLoaded
	}
	a.inflight++
	return a.table, a.total, a.values, nil
}

func (a *App) endRender() {
	a.mu.Lock()
	a.inflight--
	a.mu.Unlock()
}

// BuildView is the pure part of Render.
func BuildView(table []domain.EmployeeRecord, total int, values map[domain.CategoryField][]string, sel Selections) View {
	v := View{Title: PageTitle, TotalEmployees: total}
	for _, f := range domain.Fields {
		s := sel[f].Restrict(values[f])
		sec := Section{
			Axis:    f,
			Heading: "Analysis by " + f.Label(),
			Prompt:  "Select " + f.Plural(),
		}
		for _, val := range values[f] {
			sec.Options = append(sec.Options, Option{Value: val, Selected: s.Contains(val)})
		}

		if s.IsEmpty() {
			sec.Warning = warningFor(f)
			v.Sections = append(v.Sections, sec)
			continue
		}

		for _, m := range domain.Measures {
			rows := analysis.AggregateBy(table, f, s)
			p := Panel{Measure: m, Title: m.Title(f), Rows: rows}
			for _, r := range rows {
				if _, ok := r.Value(m); !ok {
					p.Undefined = append(p.Undefined, r.Category)
				}
			}
			sec.Panels = append(sec.Panels, p)
		}
		v.Sections = append(v.Sections, sec)
	}
	return v
}
