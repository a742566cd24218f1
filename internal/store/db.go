// db.go provides connection management for both supported drivers.
//
// This is the only file that imports database drivers. SQLite connections
// get a busy timeout so a search never fails on a briefly locked file;
// demo databases are additionally put in WAL mode when created.
//
// SQLite's built-in LOWER folds ASCII only. It is replaced on every SQLite
// connection with a Unicode lower case matching strings.ToLower, which is
// what search terms are folded with.

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/jpl-au/sift/internal/sqlq"
	"modernc.org/sqlite"

	// Register postgres driver
	_ "github.com/lib/pq"
)

func init() {
	sqlite.MustRegisterDeterministicScalarFunction("lower", 1, unicodeLower)
}

// unicodeLower implements LOWER(x) for SQLite. NULL stays NULL; other
// non-text values are lowered in their text form.
func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(fmt.Sprint(v)), nil
	}
}

// DB executes queries on a database/sql connection.
type DB struct {
	db      *sql.DB
	dialect sqlq.Dialect
	trace   Tracer
}

// Compile-time interface compliance check.
var _ Querier = (*DB)(nil)

// Open connects to a database. kind is any driver name sqlq.ParseDialect
// accepts. The connection is verified with a ping.
func Open(ctx context.Context, kind, dsn string) (*DB, error) {
	dialect, err := sqlq.ParseDialect(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, kind)
	}

	name := "sqlite"
	if dialect == sqlq.Postgres {
		name = "postgres"
	}
	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}

	if dialect == sqlq.SQLite {
		// Busy timeout: wait for a writer holding the lock rather than fail
		// with "database is locked".
		if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting busy timeout: %w", err)
		}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to %s database: %w", dialect, err)
	}
	return New(db, dialect), nil
}

// New wraps an existing connection.
func New(db *sql.DB, dialect sqlq.Dialect) *DB {
	return &DB{db: db, dialect: dialect}
}

// WithTracer sets a function called with every statement before it runs.
func (s *DB) WithTracer(t Tracer) *DB {
	s.trace = t
	return s
}

// Dialect implements Querier.
func (s *DB) Dialect() sqlq.Dialect { return s.dialect }

// Close implements Querier.
func (s *DB) Close() error {
	return s.db.Close()
}

// Query implements Querier.
func (s *DB) Query(ctx context.Context, q *sqlq.Select) ([]ResultRow, error) {
	query, args := q.Build(s.dialect)
	s.traced(query, args)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// Count implements Querier.
func (s *DB) Count(ctx context.Context, q *sqlq.Select) (int64, error) {
	query, args := q.Count(s.dialect)
	s.traced(query, args)

	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	return n, nil
}

func (s *DB) traced(query string, args []any) {
	if s.trace != nil {
		s.trace(query, args)
	}
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback
// automatically. If fn returns an error the transaction is rolled back.
func (s *DB) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
