// Package app orchestrates the dashboard: it loads the wide table once and
// renders the full view for any pair of selections.
package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"salary-dashboard/internal/analysis"
	"salary-dashboard/internal/domain"
)

// DataSource is the read side of the store.
type DataSource interface {
	CountDistinctEmployees(ctx context.Context) (int, error)
	FetchEmployeeSalaryTable(ctx context.Context) ([]domain.EmployeeRecord, error)
}

type State int

const (
	Init State = iota
	Loaded
	Rendering
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case Loaded:
		return "loaded"
	case Rendering:
		return "rendering"
	}
	return "unknown"
}

var ErrNotLoaded = errors.New("app: table not loaded")

// App holds the wide table for the lifetime of the process.
type App struct {
	ds  DataSource
	log *zap.Logger

	mu     sync.Mutex
	state  State // Init or Loaded; Rendering is derived from inflight
	total  int
	table  []domain.EmployeeRecord
	values map[domain.CategoryField][]string

	inflight int
}

func New(ds DataSource, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{ds: ds, log: log, state: Init}
}

// Load queries the store on the first call only. On failure the App stays
// in Init and the DataAccessError is returned.
func (a *App) Load(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != Init {
		return nil
	}

	total, err := a.ds.CountDistinctEmployees(ctx)
	if err != nil {
		return err
	}
	table, err := a.ds.FetchEmployeeSalaryTable(ctx)
	if err != nil {
		return err
	}

	a.total = total
	a.table = table
	a.values = make(map[domain.CategoryField][]string, len(domain.Fields))
	for _, f := range domain.Fields {
		a.values[f] = analysis.DistinctValues(table, f)
	}
	a.state = Loaded

	a.log.Info("table loaded",
		zap.Int("total_employees", total),
		zap.Int("rows", len(table)),
		zap.Int("job_titles", len(a.values[domain.JobTitle])),
		zap.Int("countries", len(a.values[domain.Country])),
	)
	return nil
}

func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == Loaded && a.inflight > 0 {
		return Rendering
	}
	return a.state
}

// TotalEmployees is the distinct employee count read at load time.
func (a *App) TotalEmployees() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Options returns the values offered for f: the non-null distinct values of
// the loaded table in first-encountered order.
func (a *App) Options(f domain.CategoryField) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	vals := a.values[f]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// DefaultSelections selects every offered value on both axes.
func (a *App) DefaultSelections() Selections {
	sel := Selections{}
	for _, f := range domain.Fields {
		sel[f] = analysis.NewSelection(a.Options(f)...)
	}
	return sel
}

// SelectionFor builds a selection for f from values, dropping any the loaded
// table does not offer.
func (a *App) SelectionFor(f domain.CategoryField, values []string) analysis.Selection {
	return analysis.NewSelection(values...).Restrict(a.Options(f))
}

// Aggregate runs the aggregator over the cached table.
func (a *App) Aggregate(f domain.CategoryField, sel analysis.Selection) ([]analysis.AggregateRow, error) {
	table, err := a.snapshot()
	if err != nil {
		return nil, err
	}
	return analysis.AggregateBy(table, f, sel), nil
}

func (a *App) snapshot() ([]domain.EmployeeRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == Init {
		return nil, ErrNotLoaded
	}
	return a.table, nil
}
