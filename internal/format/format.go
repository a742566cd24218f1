// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// search logic while this package handles presentation concerns like
// column alignment, tree rendering and markdown for explain output.
package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jpl-au/sift/internal/log"
	"github.com/jpl-au/sift/internal/service"
	"github.com/jpl-au/sift/internal/store"
)

// maxCell is the widest a result cell is printed before truncation.
const maxCell = 40

// number formats a weight or score without a trailing ".0".
func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// Results prints a ranked result table: rank, relevance, then every entity
// column. columns limits and orders the entity columns shown; nil shows all.
func Results(w io.Writer, res *service.Result, columns []string) error {
	if len(res.Rows) == 0 {
		fmt.Fprintf(w, "no %s match %q (threshold %s)\n", res.Entity, res.Text, number(res.Threshold))
		return nil
	}

	cols := columns
	if len(cols) == 0 {
		cols = res.Rows[0].Columns
	}

	header := append([]string{"#", "RELEVANCE"}, upper(cols)...)
	table := [][]string{header}
	for i, row := range res.Rows {
		line := []string{strconv.Itoa(res.Offset + i + 1), number(row.Relevance)}
		for _, c := range cols {
			line = append(line, truncate(row.String(c), maxCell))
		}
		table = append(table, line)
	}
	writeTable(w, table)

	first := res.Offset + 1
	last := res.Offset + len(res.Rows)
	fmt.Fprintf(w, "\n%d-%d of %d (threshold %s)\n", first, last, res.Total, number(res.Threshold))
	return nil
}

func upper(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToUpper(s)
	}
	return out
}

// writeTable prints rows with columns padded to a common width. The last
// column is not padded.
func writeTable(w io.Writer, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	for _, r := range rows {
		var b strings.Builder
		for i, cell := range r {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(r)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

// Entities prints each entity as a tree of its columns and joins.
func Entities(w io.Writer, infos []service.EntityInfo) error {
	for i, e := range infos {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s.%s, default threshold %s)\n", e.Name, e.Table, e.Key, number(e.DefaultThreshold))

		items := make([]string, 0, len(e.Columns)+len(e.Joins))
		for _, c := range e.Columns {
			items = append(items, fmt.Sprintf("%s  %s", c.Column, number(c.Weight)))
		}
		for _, j := range e.Joins {
			s := "join " + j.Table + " on " + j.On
			if !j.Active {
				s += " [unused]"
			}
			items = append(items, s)
		}
		for k, item := range items {
			connector := "├── "
			if k == len(items)-1 {
				connector = "└── "
			}
			fmt.Fprintln(w, connector+item)
		}
	}
	return nil
}

// Explain renders an explanation as markdown.
func Explain(ex *service.Explanation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Search plan: %s\n\n", ex.Entity)

	fmt.Fprintf(&b, "- **Tokens:** %s\n", codeList(ex.Tokens))
	if ex.Phrase != "" {
		fmt.Fprintf(&b, "- **Phrase:** `%s`\n", ex.Phrase)
	}
	fmt.Fprintf(&b, "- **Threshold:** relevance > %s (default %s)\n", number(ex.Threshold), number(ex.DefaultThreshold))
	if ex.Score != nil {
		verdict := "excluded"
		if ex.Pass != nil && *ex.Pass {
			verdict = "included"
		}
		fmt.Fprintf(&b, "- **Row score:** %s, %s\n", number(*ex.Score), verdict)
	}

	b.WriteString("\n## Relevance terms\n\n")
	if len(ex.Terms) == 0 {
		b.WriteString("No terms: every row scores 0 and nothing is returned.\n")
	}
	for i, t := range ex.Terms {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}

	fmt.Fprintf(&b, "\n## SQL (%s)\n\n```sql\n%s\n```\n", ex.Dialect, ex.SQL)

	if len(ex.Args) > 0 {
		b.WriteString("\n## Arguments\n\n")
		for i, a := range ex.Args {
			fmt.Fprintf(&b, "%d. `%s`\n", i+1, store.FormatValue(a))
		}
	}
	return b.String()
}

func codeList(ss []string) string {
	if len(ss) == 0 {
		return "none"
	}
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}

// Comparison prints both rankings' sizes and the diff between them.
func Comparison(w io.Writer, cmp *service.Comparison, colour bool) error {
	fmt.Fprintf(w, "a: %d of %d rows, threshold %s\n", len(cmp.A.Rows), cmp.A.Total, number(cmp.A.Threshold))
	fmt.Fprintf(w, "b: %d of %d rows, threshold %s\n\n", len(cmp.B.Rows), cmp.B.Total, number(cmp.B.Threshold))
	if !cmp.Diff.Changed {
		fmt.Fprintln(w, "rankings are identical")
		return nil
	}
	return cmp.Diff.Write(w, colour)
}

// History prints audit log entries, newest first, as an aligned table.
// Failed operations show their error in place of the result count.
func History(w io.Writer, entries []log.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no history")
		return nil
	}
	table := [][]string{{"TIME", "SOURCE", "AUTHOR", "ENTITY", "QUERY", "RESULT"}}
	for _, e := range entries {
		result := strconv.Itoa(e.Results)
		if !e.Success {
			result = "error: " + truncate(e.Error, maxCell)
		}
		table = append(table, []string{
			time.UnixMilli(e.Start).Format("2006-01-02 15:04:05"),
			e.Source,
			e.Author,
			e.Entity,
			truncate(e.Query, maxCell),
			result,
		})
	}
	writeTable(w, table)
	return nil
}
