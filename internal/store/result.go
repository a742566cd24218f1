// result.go scans search results.
//
// A search selects "entity.*" plus the relevance column, so the shape of
// a result row is only known at run time. Rows are scanned generically and
// kept in select-list order.

package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jpl-au/sift/internal/relevance"
)

// ResultRow is one entity returned by a search.
type ResultRow struct {
	Columns   []string // entity columns in select-list order
	Values    []any    // values for Columns; nil for NULL
	Relevance float64
}

// Get returns the value of a column and whether the column exists.
func (r ResultRow) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// String returns a column value formatted for display. NULL renders empty.
func (r ResultRow) String(column string) string {
	v, _ := r.Get(column)
	return FormatValue(v)
}

// MarshalJSON encodes the row as an object keeping column order, with the
// relevance under "relevance".
func (r ResultRow) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, c := range r.Columns {
		if err := writeMember(&b, c, r.Values[i]); err != nil {
			return nil, err
		}
		b.WriteByte(',')
	}
	if err := writeMember(&b, relevance.RelevanceColumn, r.Relevance); err != nil {
		return nil, err
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func writeMember(b *bytes.Buffer, key string, v any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	val, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	b.Write(k)
	b.WriteByte(':')
	b.Write(val)
	return nil
}

// FormatValue renders a scanned value for display.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

// scanResults reads every row, splitting off the relevance column.
func scanResults(rows *sql.Rows) ([]ResultRow, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	rel := -1
	for i, c := range cols {
		if c == relevance.RelevanceColumn {
			rel = i
		}
	}
	if rel < 0 {
		return nil, ErrNoRelevance
	}

	names := make([]string, 0, len(cols)-1)
	names = append(names, cols[:rel]...)
	names = append(names, cols[rel+1:]...)

	var out []ResultRow
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}

		score, err := toFloat(vals[rel])
		if err != nil {
			return nil, err
		}
		row := ResultRow{Columns: names, Relevance: score}
		for i, v := range vals {
			if i == rel {
				continue
			}
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row.Values = append(row.Values, v)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// toFloat converts a relevance value. SQLite returns integers or floats;
// PostgreSQL numeric sums arrive as text.
func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case []byte:
		return parseFloat(string(x))
	case string:
		return parseFloat(x)
	default:
		return 0, fmt.Errorf("relevance has unexpected type %T", v)
	}
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse relevance %q: %w", s, err)
	}
	return f, nil
}
