package store

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"salary-dashboard/internal/domain"
)

const countDistinctEmployeesQuery = `
SELECT COUNT(DISTINCT EmployeeId) AS total_employees
FROM EMPLOYEE;`

const employeeSalaryTableQuery = `
SELECT
  e.EmployeeId,
  e.JobTitle,
  s.YearlyCompensation,
  cm.Country,
  e.FirstName || ' ' || e.LastName AS FullName
FROM EMPLOYEE e
LEFT JOIN Salary s ON e.EmployeeId = s.EmployeeId
LEFT JOIN OfficeCountryMapping cm ON cm.OfficeId = e.OfficeId;`

// DataSource runs the dashboard's read queries. Every call opens its own
// connection and closes it before returning; nothing is cached.
type DataSource struct {
	Path          string
	BusyTimeoutMS int
	Log           *zap.Logger
}

func NewDataSource(path string, busyTimeoutMS int, log *zap.Logger) *DataSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &DataSource{Path: path, BusyTimeoutMS: busyTimeoutMS, Log: log}
}

// withConn opens a scoped connection, runs fn and releases the connection on
// every exit path. Failures come back as *DataAccessError.
func (s *DataSource) withConn(ctx context.Context, op string, fn func(*sql.DB) error) error {
	db, err := Open(ctx, s.Path, s.BusyTimeoutMS)
	if err != nil {
		s.Log.Error("store open failed", zap.String("op", op), zap.String("path", s.Path), zap.Error(err))
		return &DataAccessError{Op: op, Err: err}
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			s.Log.Warn("store close failed", zap.String("op", op), zap.Error(cerr))
		}
	}()

	if err := fn(db.Pool); err != nil {
		s.Log.Error("store query failed", zap.String("op", op), zap.Error(err))
		return &DataAccessError{Op: op, Err: err}
	}
	return nil
}

func (s *DataSource) CountDistinctEmployees(ctx context.Context) (int, error) {
	var n int
	err := s.withConn(ctx, "count distinct employees", func(db *sql.DB) error {
		return db.QueryRowContext(ctx, countDistinctEmployeesQuery).Scan(&n)
	})
	if err != nil {
		return 0, err
	}
	s.Log.Debug("counted employees", zap.Int("total", n))
	return n, nil
}

func (s *DataSource) FetchEmployeeSalaryTable(ctx context.Context) ([]domain.EmployeeRecord, error) {
	var (
		out  []domain.EmployeeRecord
		noID int
	)
	err := s.withConn(ctx, "fetch employee salary table", func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, employeeSalaryTableQuery)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				r        domain.EmployeeRecord
				id       sql.NullString
				title    sql.NullString
				comp     sql.NullFloat64
				country  sql.NullString
				fullName sql.NullString
			)
			if err := rows.Scan(&id, &title, &comp, &country, &fullName); err != nil {
				return err
			}
			if id.Valid {
				r.EmployeeID = id.String
			} else {
				noID++
			}
			r.JobTitle = nullString(title)
			r.YearlyCompensation = nullFloat(comp)
			r.Country = nullString(country)
			r.FullName = nullString(fullName)
			out = append(out, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if noID > 0 {
		s.Log.Warn("rows without employee id", zap.Int("rows", noID))
	}
	s.Log.Debug("fetched employee salary table", zap.Int("rows", len(out)))
	return out, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
