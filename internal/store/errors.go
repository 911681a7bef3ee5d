package store

import "fmt"

// DataAccessError reports that the store could not be reached or queried:
// missing file, missing table or column, malformed query, bad row.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }
