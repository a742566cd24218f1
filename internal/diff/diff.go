// Package diff compares two search rankings line by line, used by
// "sift compare" to show how a change of text or weights reorders results.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines unchanged lines are kept on each side of a change; longer
// unchanged runs collapse to "...".
const contextLines = 3

const (
	red   = "\033[31m"
	green = "\033[32m"
	reset = "\033[0m"
)

// Result is a line diff between two labelled rankings.
type Result struct {
	Old     string `json:"old"`
	New     string `json:"new"`
	Diff    string `json:"diff"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Changed bool   `json:"changed"`
}

// Lines diffs two rankings given one line per row.
func Lines(oldLines, newLines []string, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(text(oldLines), text(newLines))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	r := Result{Old: oldLabel, New: newLabel}
	var out strings.Builder
	for _, d := range diffs {
		lines := split(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			r.Removed += len(lines)
			writeLines(&out, "- ", lines)
		case diffmatchpatch.DiffInsert:
			r.Added += len(lines)
			writeLines(&out, "+ ", lines)
		default:
			if len(lines) > 2*contextLines {
				writeLines(&out, "  ", lines[:contextLines])
				out.WriteString("  ...\n")
				lines = lines[len(lines)-contextLines:]
			}
			writeLines(&out, "  ", lines)
		}
	}
	r.Diff = out.String()
	r.Changed = r.Added+r.Removed > 0
	return r
}

func text(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func split(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func writeLines(b *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		b.WriteString(prefix)
		b.WriteString(l)
		b.WriteByte('\n')
	}
}

// Colourise wraps removed lines in red and added lines in green.
func Colourise(d string) string {
	var b strings.Builder
	for _, line := range split(d) {
		switch {
		case strings.HasPrefix(line, "- "):
			line = red + line + reset
		case strings.HasPrefix(line, "+ "):
			line = green + line + reset
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Format returns the diff under a "---"/"+++" header.
func (r Result) Format(colour bool) string {
	body := r.Diff
	if colour {
		body = Colourise(body)
	}
	return fmt.Sprintf("--- %s\n+++ %s\n%s", r.Old, r.New, body)
}

// Write prints Format(colour) and a summary of moved rows to w.
func (r Result) Write(w io.Writer, colour bool) error {
	_, err := fmt.Fprintf(w, "%s\n%d added, %d removed\n", r.Format(colour), r.Added, r.Removed)
	return err
}
