// expr.go defines the relevance expression tree.
//
// The tree is the single description of what a search matches. Render
// lowers it to SQL; Score and Pass evaluate it in memory. Both walk the
// same nodes, so the SQL and the in-memory semantics cannot drift apart.

package relevance

import (
	"strconv"
	"strings"
)

// Match is a boolean predicate over a single column.
type Match interface {
	Node
	// Target returns the column the predicate reads.
	Target() Column
	// Test reports whether a column value satisfies the predicate. A nil
	// value (SQL NULL) never matches.
	Test(value *string) bool
	String() string
}

// PhraseMatch compares a column with the whole search phrase. Tier is
// TierPhrasePrefix (starts with) or TierSubstring (contains).
type PhraseMatch struct {
	Column Column
	Phrase string
	Tier   Tier
}

// TokenMatch compares a column with each token, matching when any token
// does. Tier is TierWholeWord (equals), TierPrefix or TierSubstring.
type TokenMatch struct {
	Column Column
	Tokens []string
	Tier   Tier
}

// Rung is one step of a Ladder.
type Rung struct {
	Match      Match
	Multiplier float64
}

// Ladder scores a column by its first matching rung: weight × multiplier,
// or zero when no rung matches. Rungs are ordered strongest first, so a
// value matching several tiers is credited once, at its strongest.
type Ladder struct {
	Weight float64
	Rungs  []Rung
}

// WeightedSum adds up the ladders of every searchable column.
type WeightedSum struct {
	Terms []Ladder
}

// Threshold is the post-aggregation filter: the summed relevance of a
// group must strictly exceed Min.
type Threshold struct {
	Sum WeightedSum
	Min float64
}

func (m PhraseMatch) Target() Column { return m.Column }
func (m TokenMatch) Target() Column  { return m.Column }

// Test implements Match.
func (m PhraseMatch) Test(value *string) bool {
	if value == nil {
		return false
	}
	return compare(m.Tier.comparison(), strings.ToLower(*value), m.Phrase)
}

// Test implements Match.
func (m TokenMatch) Test(value *string) bool {
	if value == nil {
		return false
	}
	v := strings.ToLower(*value)
	cmp := m.Tier.comparison()
	for _, tok := range m.Tokens {
		if compare(cmp, v, tok) {
			return true
		}
	}
	return false
}

func compare(cmp comparison, value, term string) bool {
	switch cmp {
	case compareEquals:
		return value == term
	case comparePrefix:
		return strings.HasPrefix(value, term)
	default:
		return strings.Contains(value, term)
	}
}

func (m PhraseMatch) String() string {
	return m.Column.Qualified() + " " + m.Tier.String() + " " + strconv.Quote(m.Phrase)
}

func (m TokenMatch) String() string {
	quoted := make([]string, len(m.Tokens))
	for i, t := range m.Tokens {
		quoted[i] = strconv.Quote(t)
	}
	return m.Column.Qualified() + " " + m.Tier.String() + " any[" + strings.Join(quoted, " ") + "]"
}

// Row is a single joined row keyed by qualified column name. A missing key
// or nil value stands for NULL.
type Row map[string]*string

// Score evaluates the ladder for one row.
func (l Ladder) Score(row Row) float64 {
	for _, r := range l.Rungs {
		if r.Match.Test(row[r.Match.Target().Qualified()]) {
			return l.Weight * r.Multiplier
		}
	}
	return 0
}

// Score evaluates the relevance of one row.
func (s WeightedSum) Score(row Row) float64 {
	var total float64
	for _, l := range s.Terms {
		total += l.Score(row)
	}
	return total
}

// Pass sums the relevance of the rows forming one group, as produced by
// joining an entity row to its related rows, and reports whether the
// group clears the threshold.
func (t Threshold) Pass(rows ...Row) (float64, bool) {
	var total float64
	for _, r := range rows {
		total += t.Sum.Score(r)
	}
	return total, total > t.Min
}

func (l Ladder) String() string {
	parts := make([]string, len(l.Rungs))
	for i, r := range l.Rungs {
		parts[i] = r.Match.String() + " → " + formatNumber(l.Weight*r.Multiplier)
	}
	return strings.Join(parts, " | ")
}

func (s WeightedSum) String() string {
	if len(s.Terms) == 0 {
		return "0"
	}
	lines := make([]string, len(s.Terms))
	for i, l := range s.Terms {
		lines[i] = "+ " + l.String()
	}
	return strings.Join(lines, "\n")
}

func (t Threshold) String() string {
	return "relevance > " + formatNumber(t.Min)
}

// formatNumber renders weights and scores without a trailing ".0" for
// whole numbers.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
