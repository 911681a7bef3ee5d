// Package storetest builds throwaway SQLite files with the dashboard schema.
package storetest

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

type Employee struct {
	ID        int
	JobTitle  *string
	FirstName string
	LastName  string
	OfficeID  int
}

type Salary struct {
	EmployeeID         int
	YearlyCompensation *float64
}

type Office struct {
	OfficeID int
	Country  *string
}

type Fixture struct {
	Employees []Employee
	Salaries  []Salary
	Offices   []Office
}

func Str(s string) *string   { return &s }
func Num(f float64) *float64 { return &f }

// Scenario is the three-employee dataset: E1 and E2 are US engineers paid
// 100000 and 120000, E3 is a Canadian manager with no salary row.
func Scenario() Fixture {
	return Fixture{
		Employees: []Employee{
			{ID: 1, JobTitle: Str("Engineer"), FirstName: "Ada", LastName: "One", OfficeID: 10},
			{ID: 2, JobTitle: Str("Engineer"), FirstName: "Bo", LastName: "Two", OfficeID: 10},
			{ID: 3, JobTitle: Str("Manager"), FirstName: "Cy", LastName: "Three", OfficeID: 20},
		},
		Salaries: []Salary{
			{EmployeeID: 1, YearlyCompensation: Num(100000)},
			{EmployeeID: 2, YearlyCompensation: Num(120000)},
		},
		Offices: []Office{
			{OfficeID: 10, Country: Str("US")},
			{OfficeID: 20, Country: Str("CA")},
		},
	}
}

const schema = `
CREATE TABLE EMPLOYEE (
  EmployeeId INTEGER PRIMARY KEY,
  JobTitle TEXT,
  FirstName TEXT,
  LastName TEXT,
  OfficeId INTEGER
);
CREATE TABLE Salary (
  EmployeeId INTEGER,
  YearlyCompensation REAL
);
CREATE TABLE OfficeCountryMapping (
  OfficeId INTEGER,
  Country TEXT
);`

// Create writes f into a new database file under t.TempDir and returns its path.
func Create(t testing.TB, f Fixture) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.db")
	if err := Write(path, f); err != nil {
		t.Fatalf("storetest: %v", err)
	}
	return path
}

// CreateRaw runs arbitrary DDL instead of the dashboard schema, for
// broken-schema cases.
func CreateRaw(t testing.TB, ddl string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raw.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("storetest: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(ddl); err != nil {
		t.Fatalf("storetest: %v", err)
	}
	return path
}

// Write creates the schema at path and inserts f in one transaction.
func Write(path string, f Fixture) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(schema); err != nil {
		return err
	}
	for _, e := range f.Employees {
		if _, err := tx.Exec(`
INSERT INTO EMPLOYEE(EmployeeId, JobTitle, FirstName, LastName, OfficeId)
VALUES(?,?,?,?,?);`, e.ID, e.JobTitle, e.FirstName, e.LastName, e.OfficeID); err != nil {
			return err
		}
	}
	for _, s := range f.Salaries {
		if _, err := tx.Exec(`
INSERT INTO Salary(EmployeeId, YearlyCompensation) VALUES(?,?);`,
			s.EmployeeID, s.YearlyCompensation); err != nil {
			return err
		}
	}
	for _, o := range f.Offices {
		if _, err := tx.Exec(`
INSERT INTO OfficeCountryMapping(OfficeId, Country) VALUES(?,?);`,
			o.OfficeID, o.Country); err != nil {
			return err
		}
	}
	return tx.Commit()
}
