// search.go implements the predicate and relevance expression builders, the
// threshold resolver and the query assembler.

package relevance

import (
	"math"
	"strings"
)

// RelevanceColumn is the alias of the computed relevance in the select list.
const RelevanceColumn = "relevance"

// Request describes one search.
type Request struct {
	Text string

	// Threshold overrides the configuration's default minimum relevance.
	// Zero disables filtering beyond excluding rows that match nothing.
	Threshold *float64

	// RequireFullText adds a phrase ladder on top of the token ladders so
	// rows containing the whole phrase rank above token-only matches.
	RequireFullText bool

	// FullTextOnly drops token matching entirely; only the whole phrase
	// is matched.
	FullTextOnly bool

	// OrderBy holds secondary ordering terms applied after relevance, for
	// callers that need a deterministic order among equal scores.
	OrderBy []string
}

// Plan is the resolved form of a Request against a Config.
type Plan struct {
	Tokens    []string
	Phrase    string
	Sum       WeightedSum
	Threshold Threshold
}

// Query is the query surface a search is attached to. *sqlq.Select
// satisfies it.
type Query interface {
	SelectExpr(expr string, args ...any)
	LeftJoin(table, on string, args ...any)
	GroupBy(terms ...string)
	Having(cond string, args ...any)
	OrderBy(terms ...string)
}

// Prepare validates a request and builds its plan without touching any
// query.
func Prepare(cfg *Config, req Request) (*Plan, error) {
	threshold, err := resolveThreshold(cfg, req.Threshold)
	if err != nil {
		return nil, err
	}

	phrase := Phrase(req.Text)
	if req.FullTextOnly && phrase == "" {
		return nil, invalidArg("full-text-only search needs non-empty text")
	}

	var tokens []string
	if !req.FullTextOnly {
		tokens = Tokenize(req.Text)
	}

	sum := buildSum(cfg.columns, tokens, phrase, req)
	return &Plan{
		Tokens:    tokens,
		Phrase:    phrase,
		Sum:       sum,
		Threshold: Threshold{Sum: sum, Min: threshold},
	}, nil
}

// BuildSearchQuery attaches a search to q: the entity's columns and the
// summed relevance are selected, active joins are applied as LEFT JOINs,
// rows are grouped by the entity key, groups at or below the threshold are
// dropped and the rest ordered by relevance, highest first.
//
// q should not already select columns; the entity table's columns are
// added here. Callers may add Where filters and pagination before or after
// this call. Errors are returned before q is modified.
func BuildSearchQuery(cfg *Config, q Query, req Request) (*Plan, error) {
	plan, err := Prepare(cfg, req)
	if err != nil {
		return nil, err
	}

	for _, term := range req.OrderBy {
		if strings.ContainsAny(term, ";'\"") {
			return nil, invalidArg("order term %q contains a quote or semicolon", term)
		}
	}

	e := cfg.entity
	q.SelectExpr(e.Table + ".*")
	for _, j := range cfg.used {
		q.LeftJoin(j.Table, j.On())
	}

	sumSQL, sumArgs := Render(plan.Sum)
	q.SelectExpr("SUM("+sumSQL+") AS "+RelevanceColumn, sumArgs...)
	q.GroupBy(e.Table + "." + e.Key)

	havingSQL, havingArgs := Render(plan.Threshold)
	q.Having(havingSQL, havingArgs...)

	q.OrderBy(append([]string{RelevanceColumn + " DESC"}, req.OrderBy...)...)
	return plan, nil
}

// resolveThreshold returns the explicit threshold when given, otherwise
// the configuration default. The result is never negative, so a group
// with zero relevance can never pass.
func resolveThreshold(cfg *Config, explicit *float64) (float64, error) {
	if len(cfg.columns) == 0 {
		return 0, configErr("columns", "no searchable columns", nil)
	}
	if explicit == nil {
		return cfg.DefaultThreshold(), nil
	}
	t := *explicit
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, invalidArg("threshold must be a finite number")
	}
	if t < 0 {
		return 0, invalidArg("threshold must not be negative, got %s", formatNumber(t))
	}
	return t, nil
}

// buildSum produces one token ladder and, when the phrase is requested,
// one phrase ladder per column.
func buildSum(cols []Column, tokens []string, phrase string, req Request) WeightedSum {
	var sum WeightedSum
	for _, c := range cols {
		if !req.FullTextOnly && len(tokens) > 0 {
			sum.Terms = append(sum.Terms, tokenLadder(c, tokens))
		}
		if phrase != "" && (req.RequireFullText || req.FullTextOnly) {
			sum.Terms = append(sum.Terms, phraseLadder(c, phrase, req.FullTextOnly))
		}
	}
	return sum
}

func tokenLadder(c Column, tokens []string) Ladder {
	rung := func(t Tier) Rung {
		return Rung{Match: TokenMatch{Column: c, Tokens: tokens, Tier: t}, Multiplier: t.Multiplier()}
	}
	return Ladder{
		Weight: c.Weight,
		Rungs:  []Rung{rung(TierWholeWord), rung(TierPrefix), rung(TierSubstring)},
	}
}

// phraseLadder matches the whole phrase. With tokens in play only a
// phrase prefix is credited, since the token ladder already covers weaker
// matches. For phrase-only searches a phrase found mid-value earns the
// substring tier.
func phraseLadder(c Column, phrase string, only bool) Ladder {
	rungs := []Rung{{
		Match:      PhraseMatch{Column: c, Phrase: phrase, Tier: TierPhrasePrefix},
		Multiplier: TierPhrasePrefix.Multiplier(),
	}}
	if only {
		rungs = append(rungs, Rung{
			Match:      PhraseMatch{Column: c, Phrase: phrase, Tier: TierSubstring},
			Multiplier: TierSubstring.Multiplier(),
		})
	}
	return Ladder{Weight: c.Weight, Rungs: rungs}
}

// Searcher binds a Config for repeated searches.
type Searcher struct {
	cfg *Config
}

// NewSearcher returns a Searcher for cfg.
func NewSearcher(cfg *Config) *Searcher {
	return &Searcher{cfg: cfg}
}

// Config returns the bound configuration.
func (s *Searcher) Config() *Config { return s.cfg }

// Apply is BuildSearchQuery for the bound configuration.
func (s *Searcher) Apply(q Query, req Request) (*Plan, error) {
	return BuildSearchQuery(s.cfg, q, req)
}

// Score evaluates the relevance a single joined row would receive.
func (s *Searcher) Score(req Request, row Row) (float64, error) {
	plan, err := Prepare(s.cfg, req)
	if err != nil {
		return 0, err
	}
	return plan.Sum.Score(row), nil
}
