package sqltable

import (
	"context"
	"database/sql"
)

var (
	_ Rows    = &sql.Rows{}
	_ Queryer = &sql.DB{}
	_ Queryer = &sql.Tx{}
	_ Queryer = &sql.Conn{}
)

// Rows abstracts the methods of *sql.Rows
// used to scan a result set into records.
//
// The usage pattern is the same as for sql.Rows:
// call Next before every Scan, Close when done
// and check Err after Next returned false.
type Rows interface {
	// Columns returns the names of the columns in the result set
	// in the order of the query.
	Columns() ([]string, error)

	// Scan copies the column values from the current row
	// into the variables pointed to by dest.
	Scan(dest ...any) error

	Close() error

	// Next prepares the next result row for reading with Scan.
	// It returns false if there are no more rows or an error occurred.
	Next() bool

	// Err returns the error, if any, that was encountered during iteration.
	Err() error
}

// Queryer is implemented by *sql.DB, *sql.Tx and *sql.Conn.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
