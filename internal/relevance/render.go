// render.go lowers the expression tree to SQL.
//
// All search terms travel as bound "?" parameters. Only validated
// identifiers and numeric literals derived from the configuration are
// written into the SQL text.

package relevance

import "strings"

// Node is an expression tree node: PhraseMatch, TokenMatch, Ladder,
// WeightedSum or Threshold. The set is closed.
type Node interface {
	render(r *renderer)
}

// Render returns the SQL for an expression tree node and the arguments for
// its placeholders.
func Render(n Node) (string, []any) {
	var r renderer
	n.render(&r)
	return r.b.String(), r.args
}

type renderer struct {
	b    strings.Builder
	args []any
}

func (m PhraseMatch) render(r *renderer) { r.compare(m.Column, m.Tier.comparison(), m.Phrase) }
func (m TokenMatch) render(r *renderer)  { r.tokens(m) }
func (l Ladder) render(r *renderer)      { r.ladder(l) }
func (s WeightedSum) render(r *renderer) { r.sum(s) }

func (t Threshold) render(r *renderer) {
	r.b.WriteString("SUM(")
	r.sum(t.Sum)
	r.b.WriteString(") > ?")
	r.args = append(r.args, t.Min)
}

func (r *renderer) tokens(m TokenMatch) {
	if len(m.Tokens) == 1 {
		r.compare(m.Column, m.Tier.comparison(), m.Tokens[0])
		return
	}
	r.b.WriteString("(")
	for i, tok := range m.Tokens {
		if i > 0 {
			r.b.WriteString(" OR ")
		}
		r.compare(m.Column, m.Tier.comparison(), tok)
	}
	r.b.WriteString(")")
}

// compare writes a case-insensitive comparison of a column with term.
// Terms are already lower-case.
func (r *renderer) compare(col Column, cmp comparison, term string) {
	r.b.WriteString("LOWER(CAST(")
	r.b.WriteString(col.Qualified())
	r.b.WriteString(" AS TEXT))")
	switch cmp {
	case compareEquals:
		r.b.WriteString(" = ?")
		r.args = append(r.args, term)
	case comparePrefix:
		r.b.WriteString(" LIKE ? ESCAPE '" + likeEscape + "'")
		r.args = append(r.args, escapeLike(term)+"%")
	default:
		r.b.WriteString(" LIKE ? ESCAPE '" + likeEscape + "'")
		r.args = append(r.args, "%"+escapeLike(term)+"%")
	}
}

func (r *renderer) ladder(l Ladder) {
	r.b.WriteString("CASE")
	for _, rung := range l.Rungs {
		r.b.WriteString(" WHEN ")
		rung.Match.render(r)
		r.b.WriteString(" THEN ")
		r.b.WriteString(formatNumber(l.Weight * rung.Multiplier))
	}
	r.b.WriteString(" ELSE 0 END")
}

func (r *renderer) sum(s WeightedSum) {
	if len(s.Terms) == 0 {
		r.b.WriteString("0")
		return
	}
	for i, l := range s.Terms {
		if i > 0 {
			r.b.WriteString(" + ")
		}
		r.ladder(l)
	}
}
