// dialect.go handles placeholder differences between SQL backends.
//
// Queries are assembled with "?" placeholders throughout and rebound once at
// Build time. Fragments from different sources (caller filters, the
// relevance expression, the threshold) can then be concatenated without
// tracking parameter positions.

package sqlq

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownDialect is returned by ParseDialect for unsupported driver names.
var ErrUnknownDialect = errors.New("unknown SQL dialect")

// Dialect identifies the placeholder and pagination syntax of a backend.
type Dialect int

const (
	// SQLite uses "?" placeholders and requires LIMIT before OFFSET.
	SQLite Dialect = iota
	// Postgres uses numbered "$1" placeholders.
	Postgres
)

// String returns the database/sql driver name for the dialect.
func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	default:
		return "dialect(" + strconv.Itoa(int(d)) + ")"
	}
}

// ParseDialect maps a driver name to its dialect. "sqlite3" and
// "postgresql" are accepted as aliases.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDialect, driver)
	}
}

// Rebind rewrites "?" placeholders for the dialect. Question marks inside
// single-quoted literals are left alone.
func Rebind(d Dialect, query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
			b.WriteByte(c)
		case c == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
