// Package store runs assembled search queries against SQLite or PostgreSQL
// and scans the results. Query construction lives in sqlq and relevance;
// this package only executes what they build.
package store

import (
	"context"
	"errors"

	"github.com/jpl-au/sift/internal/sqlq"
)

var (
	// ErrUnsupportedDriver is returned by Open for a driver other than
	// sqlite or postgres.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	// ErrNoRelevance is returned when a query result has no relevance column.
	ErrNoRelevance = errors.New("result has no relevance column")
)

// Querier executes select statements built with sqlq.
type Querier interface {
	// Query runs q and returns every row.
	Query(ctx context.Context, q *sqlq.Select) ([]ResultRow, error)

	// Count returns the number of rows q would produce without pagination.
	Count(ctx context.Context, q *sqlq.Select) (int64, error)

	// Dialect reports the placeholder style queries are rendered in.
	Dialect() sqlq.Dialect

	// Close releases the connection.
	Close() error
}

// Tracer observes each statement before it runs. Used for --verbose SQL
// logging.
type Tracer func(query string, args []any)
