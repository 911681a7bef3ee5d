package domain

// EmployeeRecord is one row of the wide employee/salary/country table.
// An employee appears once per salary row and office mapping it joins with.
// EmployeeID is empty when the source column is NULL.
type EmployeeRecord struct {
	EmployeeID         string   `json:"employeeId"`
	JobTitle           *string  `json:"jobTitle"`
	YearlyCompensation *float64 `json:"yearlyCompensation"`
	Country            *string  `json:"country"`
	FullName           *string  `json:"fullName"`
}

// HasID reports whether the row carries an employee id. Rows without one
// still feed the mean but never count as a distinct employee.
func (r EmployeeRecord) HasID() bool { return r.EmployeeID != "" }

// Category returns the record's value for the given grouping field.
// ok is false when the value is null or the field is unknown.
func (r EmployeeRecord) Category(f CategoryField) (value string, ok bool) {
	var p *string
	switch f {
	case JobTitle:
		p = r.JobTitle
	case Country:
		p = r.Country
	}
	if p == nil {
		return "", false
	}
	return *p, true
}
