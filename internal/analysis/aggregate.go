// Package analysis filters the wide employee table by a Selection and
// aggregates it per category.
package analysis

import (
	"math"

	"github.com/shopspring/decimal"

	"salary-dashboard/internal/domain"
)

// AggregateRow holds both measures for one category value.
// MeanCompensation is nil when no row in the group has a finite compensation.
type AggregateRow struct {
	Category              string   `json:"category"`
	MeanCompensation      *float64 `json:"meanCompensation"`
	DistinctEmployeeCount int      `json:"distinctEmployeeCount"`
}

// Value returns the row's value for m. ok is false for an undefined mean.
func (r AggregateRow) Value(m domain.Measure) (v float64, ok bool) {
	switch m {
	case domain.MeanCompensation:
		if r.MeanCompensation == nil {
			return 0, false
		}
		return *r.MeanCompensation, true
	case domain.DistinctEmployeeCount:
		return float64(r.DistinctEmployeeCount), true
	}
	return 0, false
}

// DistinctValues returns the non-null values of f in first-encountered order.
func DistinctValues(table []domain.EmployeeRecord, f domain.CategoryField) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range table {
		v, ok := r.Category(f)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

type group struct {
	sum       decimal.Decimal
	n         int64
	employees map[string]struct{}
}

// AggregateBy keeps the rows whose f value is in sel and returns one row per
// category present, in first-encountered order. Rows with a null category
// never match. table is not modified.
func AggregateBy(table []domain.EmployeeRecord, f domain.CategoryField, sel Selection) []AggregateRow {
	if sel.IsEmpty() {
		return nil
	}

	grouped := make(map[string]*group)
	order := make([]string, 0)

	for _, r := range table {
		key, ok := r.Category(f)
		if !ok || !sel.Contains(key) {
			continue
		}
		g, exists := grouped[key]
		if !exists {
			g = &group{employees: make(map[string]struct{})}
			grouped[key] = g
			order = append(order, key)
		}
		if r.HasID() {
			g.employees[r.EmployeeID] = struct{}{}
		}
		if c, ok := compensation(r); ok {
			g.sum = g.sum.Add(decimal.NewFromFloat(c))
			g.n++
		}
	}

	out := make([]AggregateRow, 0, len(order))
	for _, key := range order {
		g := grouped[key]
		row := AggregateRow{Category: key, DistinctEmployeeCount: len(g.employees)}
		if g.n > 0 {
			mean, _ := g.sum.Div(decimal.NewFromInt(g.n)).Float64()
			row.MeanCompensation = &mean
		}
		out = append(out, row)
	}
	return out
}

// compensation returns the row's compensation when it can take part in a
// mean. SQLite hands back REAL overflow literals as ±Inf; those count as
// missing, like NULL, since neither decimal nor JSON can carry them.
func compensation(r domain.EmployeeRecord) (float64, bool) {
	if r.YearlyCompensation == nil {
		return 0, false
	}
	c := *r.YearlyCompensation
	if math.IsInf(c, 0) || math.IsNaN(c) {
		return 0, false
	}
	return c, true
}
