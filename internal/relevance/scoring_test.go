package relevance_test

import (
	"math"
	"testing"

	"github.com/jpl-au/sift/internal/relevance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row builds a Row from alternating qualified-column/value pairs.
func row(kv ...string) relevance.Row {
	r := relevance.Row{}
	for i := 0; i+1 < len(kv); i += 2 {
		v := kv[i+1]
		r[kv[i]] = &v
	}
	return r
}

func people() *relevance.Config {
	return relevance.New("users", "id").
		Column("first_name", 10).
		Column("last_name", 10).
		Column("bio", 2).
		Column("email", 5).
		MustBuild()
}

func score(t *testing.T, cfg *relevance.Config, req relevance.Request, r relevance.Row) float64 {
	t.Helper()
	s, err := relevance.NewSearcher(cfg).Score(req, r)
	require.NoError(t, err)
	return s
}

func TestScore_WholeWordSingleColumn(t *testing.T) {
	r := row("users.first_name", "John", "users.last_name", "Smith", "users.email", "js@example.com")
	assert.Equal(t, 150.0, score(t, people(), relevance.Request{Text: "John"}, r))
}

func TestScore_PhrasePrioritisedWithoutExclusion(t *testing.T) {
	req := relevance.Request{Text: "John Doe", RequireFullText: true}
	full := score(t, people(), req, row("users.first_name", "John Doe"))
	partial := score(t, people(), req, row("users.first_name", "John"))

	assert.Equal(t, 150.0, partial)
	// phrase prefix 10×30 plus token prefix 10×5
	assert.Equal(t, 350.0, full)
	assert.Greater(t, full, partial)
}

func TestScore_FullTextOnlySuppressesTokens(t *testing.T) {
	req := relevance.Request{Text: "John Doe", FullTextOnly: true}
	assert.Zero(t, score(t, people(), req, row("users.first_name", "John")))
	assert.Equal(t, 300.0, score(t, people(), req, row("users.first_name", "john doe jr")))
	assert.Equal(t, 10.0, score(t, people(), req, row("users.first_name", "Mr John Doe")))
}

func TestScore_TierOrdering(t *testing.T) {
	const w = 4
	cfg := relevance.New("t", "id").Column("c", w).MustBuild()
	col := "t.c"

	phrase := score(t, cfg, relevance.Request{Text: "abc def", FullTextOnly: true}, row(col, "ABC DEF ghi"))
	whole := score(t, cfg, relevance.Request{Text: "abc"}, row(col, "Abc"))
	prefix := score(t, cfg, relevance.Request{Text: "abc"}, row(col, "abcdef"))
	substring := score(t, cfg, relevance.Request{Text: "abc"}, row(col, "xxabcxx"))
	none := score(t, cfg, relevance.Request{Text: "abc"}, row(col, "xyz"))

	assert.Equal(t, 30.0*w, phrase)
	assert.Equal(t, 15.0*w, whole)
	assert.Equal(t, 5.0*w, prefix)
	assert.Equal(t, 1.0*w, substring)
	assert.Zero(t, none)
	assert.True(t, phrase > whole && whole > prefix && prefix > substring && substring > none)
}

func TestScore_AnyTokenNoDoubleCount(t *testing.T) {
	cfg := relevance.New("t", "id").Column("c", 1).MustBuild()
	// both tokens are substrings; the tier is credited once
	assert.Equal(t, 1.0, score(t, cfg, relevance.Request{Text: "foo bar"}, row("t.c", "xfoo xbar")))
	// strongest tier wins across tokens
	assert.Equal(t, 15.0, score(t, cfg, relevance.Request{Text: "foo bar"}, row("t.c", "bar")))
}

func TestScore_NullNeverMatches(t *testing.T) {
	r := relevance.Row{"users.first_name": nil}
	assert.Zero(t, score(t, people(), relevance.Request{Text: "john"}, r))
}

func TestScore_Monotonic(t *testing.T) {
	r := row("t.a", "john", "t.b", "johnny")
	req := relevance.Request{Text: "john"}

	one := relevance.New("t", "id").Column("a", 3).MustBuild()
	two := relevance.New("t", "id").Column("a", 3).Column("b", 1).MustBuild()

	s1 := score(t, one, req, r)
	s2 := score(t, two, req, r)
	assert.Greater(t, s2, s1)
}

func TestThreshold_ZeroRelevanceAlwaysExcluded(t *testing.T) {
	zero := 0.0
	plan, err := relevance.Prepare(people(), relevance.Request{Text: "john", Threshold: &zero})
	require.NoError(t, err)

	got, pass := plan.Threshold.Pass(row("users.first_name", "alice"))
	assert.Zero(t, got)
	assert.False(t, pass)

	got, pass = plan.Threshold.Pass(row("users.bio", "knows john"))
	assert.Equal(t, 2.0, got)
	assert.True(t, pass)
}

func TestThreshold_DefaultIsStrict(t *testing.T) {
	cfg := relevance.New("t", "id").Column("a", 10).Column("b", 10).MustBuild()
	plan, err := relevance.Prepare(cfg, relevance.Request{Text: "john"})
	require.NoError(t, err)
	assert.Equal(t, 10.0, plan.Threshold.Min)

	got, pass := plan.Threshold.Pass(row("t.a", "xjohnx"))
	assert.Equal(t, 10.0, got)
	assert.False(t, pass)

	got, pass = plan.Threshold.Pass(row("t.a", "john"))
	assert.Equal(t, 150.0, got)
	assert.True(t, pass)
}

func TestThreshold_JoinAggregation(t *testing.T) {
	cfg := relevance.New("users", "id").
		Column("name", 10).
		Column("posts.title", 5).
		Join("posts", "users.id", "posts.user_id").
		MustBuild()
	zero := 0.0
	plan, err := relevance.Prepare(cfg, relevance.Request{Text: "lang", Threshold: &zero})
	require.NoError(t, err)

	got, pass := plan.Threshold.Pass(
		row("users.name", "Ann", "posts.title", "golang tips"),
		row("users.name", "Ann", "posts.title", "golang tricks"),
	)
	assert.Equal(t, 10.0, got)
	assert.True(t, pass)
}

func TestPrepare_EmptyText(t *testing.T) {
	plan, err := relevance.Prepare(people(), relevance.Request{Text: "  !! "})
	require.NoError(t, err)
	assert.Empty(t, plan.Tokens)
	assert.Empty(t, plan.Sum.Terms)

	got, pass := plan.Threshold.Pass(row("users.first_name", "anything"))
	assert.Zero(t, got)
	assert.False(t, pass)
}

func TestPrepare_InvalidArguments(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)
	neg := -1.0

	tests := []struct {
		name string
		req  relevance.Request
	}{
		{"full text only without text", relevance.Request{Text: "   ", FullTextOnly: true}},
		{"NaN threshold", relevance.Request{Text: "x", Threshold: &nan}},
		{"infinite threshold", relevance.Request{Text: "x", Threshold: &inf}},
		{"negative threshold", relevance.Request{Text: "x", Threshold: &neg}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := relevance.Prepare(people(), tt.req)
			assert.ErrorIs(t, err, relevance.ErrInvalidArgument)
		})
	}
}

func TestPrepare_FullTextOnlySkipsTokens(t *testing.T) {
	plan, err := relevance.Prepare(people(), relevance.Request{Text: "John Doe", FullTextOnly: true})
	require.NoError(t, err)
	assert.Nil(t, plan.Tokens)
	assert.Equal(t, "john doe", plan.Phrase)
	require.Len(t, plan.Sum.Terms, 4)
	for _, l := range plan.Sum.Terms {
		for _, r := range l.Rungs {
			assert.IsType(t, relevance.PhraseMatch{}, r.Match)
		}
	}
}

func TestPlan_String(t *testing.T) {
	cfg := relevance.New("t", "id").Column("c", 2).MustBuild()
	plan, err := relevance.Prepare(cfg, relevance.Request{Text: "go"})
	require.NoError(t, err)
	assert.Equal(t,
		`+ t.c whole-word any["go"] → 30 | t.c prefix any["go"] → 10 | t.c substring any["go"] → 2`,
		plan.Sum.String())
	assert.Equal(t, "relevance > 2", plan.Threshold.String())
}
