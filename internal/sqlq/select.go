// Package sqlq builds SELECT statements from composable parts.
//
// A Select accumulates select-list expressions, joins, filters, grouping,
// post-aggregation filters, ordering and pagination, each carrying its own
// bound arguments. Nothing is executed here: Build renders the statement
// and its arguments for a dialect, and the caller hands both to
// database/sql.
//
// Callers may add Where filters before or after other components have added
// grouping or Having clauses. Where applies to rows, Having to groups, so
// the two never interfere.
package sqlq

import (
	"strconv"
	"strings"
)

// fragment is a piece of SQL text with the arguments for its placeholders.
type fragment struct {
	sql  string
	args []any
}

// Select is a deferred SELECT statement.
type Select struct {
	from    string
	columns []fragment
	joins   []fragment
	where   []fragment
	groupBy []string
	having  []fragment
	orderBy []string
	limit   int
	offset  int
}

// From starts a SELECT over table.
func From(table string) *Select {
	return &Select{from: table}
}

// Table returns the table named in the FROM clause.
func (s *Select) Table() string { return s.from }

// Columns appends plain column references to the select list.
func (s *Select) Columns(cols ...string) {
	for _, c := range cols {
		s.columns = append(s.columns, fragment{sql: c})
	}
}

// SelectExpr appends a computed expression to the select list.
func (s *Select) SelectExpr(expr string, args ...any) {
	s.columns = append(s.columns, fragment{sql: expr, args: args})
}

// LeftJoin adds "LEFT JOIN table ON on".
func (s *Select) LeftJoin(table, on string, args ...any) {
	s.joins = append(s.joins, fragment{sql: "LEFT JOIN " + table + " ON " + on, args: args})
}

// Where adds a row filter. Multiple filters are combined with AND.
func (s *Select) Where(cond string, args ...any) {
	s.where = append(s.where, fragment{sql: cond, args: args})
}

// GroupBy appends grouping terms.
func (s *Select) GroupBy(terms ...string) {
	s.groupBy = append(s.groupBy, terms...)
}

// Having adds a post-aggregation filter. Multiple filters are combined with AND.
func (s *Select) Having(cond string, args ...any) {
	s.having = append(s.having, fragment{sql: cond, args: args})
}

// OrderBy appends ordering terms ("relevance DESC", "users.id").
func (s *Select) OrderBy(terms ...string) {
	s.orderBy = append(s.orderBy, terms...)
}

// Limit caps the number of rows returned. Zero or negative removes the cap.
func (s *Select) Limit(n int) {
	s.limit = max(n, 0)
}

// Offset skips the first n rows. Negative values are treated as zero.
func (s *Select) Offset(n int) {
	s.offset = max(n, 0)
}

// Clone returns an independent copy, so a base query can be reused for
// several searches.
func (s *Select) Clone() *Select {
	c := *s
	c.columns = cloneFragments(s.columns)
	c.joins = cloneFragments(s.joins)
	c.where = cloneFragments(s.where)
	c.having = cloneFragments(s.having)
	c.groupBy = append([]string(nil), s.groupBy...)
	c.orderBy = append([]string(nil), s.orderBy...)
	return &c
}

func cloneFragments(fs []fragment) []fragment {
	if fs == nil {
		return nil
	}
	out := make([]fragment, len(fs))
	for i, f := range fs {
		out[i] = fragment{sql: f.sql, args: append([]any(nil), f.args...)}
	}
	return out
}

// Build renders the statement for a dialect. Arguments are returned in the
// order their placeholders appear in the text.
func (s *Select) Build(d Dialect) (string, []any) {
	var b strings.Builder
	args := s.body(&b)

	if len(s.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(s.orderBy, ", "))
	}

	switch {
	case s.limit > 0:
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(s.limit))
	case s.offset > 0 && d == SQLite:
		// SQLite rejects OFFSET without LIMIT
		b.WriteString(" LIMIT -1")
	}
	if s.offset > 0 {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(s.offset))
	}

	return Rebind(d, b.String()), args
}

// Count renders a statement returning the number of rows the query would
// produce without pagination. Ordering is dropped.
func (s *Select) Count(d Dialect) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM (")
	args := s.body(&b)
	b.WriteString(") AS counted")
	return Rebind(d, b.String()), args
}

// body writes everything from SELECT through HAVING.
func (s *Select) body(b *strings.Builder) []any {
	var args []any

	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteString("*")
	}
	for i, c := range s.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.sql)
		args = append(args, c.args...)
	}

	b.WriteString(" FROM ")
	b.WriteString(s.from)

	for _, j := range s.joins {
		b.WriteString(" ")
		b.WriteString(j.sql)
		args = append(args, j.args...)
	}

	args = writeConditions(b, " WHERE ", s.where, args)

	if len(s.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(s.groupBy, ", "))
	}

	return writeConditions(b, " HAVING ", s.having, args)
}

func writeConditions(b *strings.Builder, keyword string, conds []fragment, args []any) []any {
	if len(conds) == 0 {
		return args
	}
	b.WriteString(keyword)
	for i, c := range conds {
		if i > 0 {
			b.WriteString(" AND ")
		}
		if len(conds) > 1 {
			b.WriteString("(" + c.sql + ")")
		} else {
			b.WriteString(c.sql)
		}
		args = append(args, c.args...)
	}
	return args
}
