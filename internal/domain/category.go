package domain

import "fmt"

// CategoryField names a grouping column of the wide table.
type CategoryField string

const (
	JobTitle CategoryField = "job_title"
	Country  CategoryField = "country"
)

// Fields lists the axes in the order the dashboard shows them.
var Fields = []CategoryField{JobTitle, Country}

func ParseCategoryField(s string) (CategoryField, error) {
	switch CategoryField(s) {
	case JobTitle, Country:
		return CategoryField(s), nil
	}
	return "", fmt.Errorf("unknown category field %q", s)
}

// Label is the human-readable axis label.
func (f CategoryField) Label() string {
	switch f {
	case JobTitle:
		return "Job Title"
	case Country:
		return "Country"
	}
	return string(f)
}

// Plural is used in prompts, e.g. "Select Job Titles".
func (f CategoryField) Plural() string {
	switch f {
	case JobTitle:
		return "Job Titles"
	case Country:
		return "Countries"
	}
	return string(f)
}

// Measure names an aggregate value plotted on a chart's y-axis.
type Measure string

const (
	MeanCompensation      Measure = "mean_compensation"
	DistinctEmployeeCount Measure = "distinct_employee_count"
)

// Measures lists the charts rendered per axis, in order.
var Measures = []Measure{MeanCompensation, DistinctEmployeeCount}

func ParseMeasure(s string) (Measure, error) {
	switch Measure(s) {
	case MeanCompensation, DistinctEmployeeCount:
		return Measure(s), nil
	}
	return "", fmt.Errorf("unknown measure %q", s)
}

func (m Measure) Label() string {
	switch m {
	case MeanCompensation:
		return "Average Salary"
	case DistinctEmployeeCount:
		return "Number of Employees"
	}
	return string(m)
}

// Title builds the chart title for m sliced by f, e.g. "Average Salary by Country".
func (m Measure) Title(f CategoryField) string {
	return m.Label() + " by " + f.Label()
}
