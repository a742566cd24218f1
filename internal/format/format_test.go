package format_test

import (
	"strings"
	"testing"

	"github.com/jpl-au/sift/internal/diff"
	"github.com/jpl-au/sift/internal/format"
	"github.com/jpl-au/sift/internal/log"
	"github.com/jpl-au/sift/internal/service"
	"github.com/jpl-au/sift/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result() *service.Result {
	cols := []string{"id", "name", "bio"}
	return &service.Result{
		Entity:    "users",
		Text:      "john",
		Threshold: 6,
		Total:     7,
		Offset:    2,
		Key:       "id",
		Rows: []store.ResultRow{
			{Columns: cols, Values: []any{int64(1), "John", strings.Repeat("long bio ", 10)}, Relevance: 150},
			{Columns: cols, Values: []any{int64(3), "Johnny", nil}, Relevance: 50.5},
		},
	}
}

func TestResults(t *testing.T) {
	var b strings.Builder
	require.NoError(t, format.Results(&b, result(), nil))

	lines := strings.Split(b.String(), "\n")
	assert.Equal(t, "#  RELEVANCE  ID  NAME    BIO", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "3  150        1   John    long bio"))
	assert.True(t, strings.HasSuffix(lines[1], "..."))
	assert.Equal(t, "4  50.5       3   Johnny  ", lines[2])
	assert.Contains(t, b.String(), "3-4 of 7 (threshold 6)")
}

func TestResults_Columns(t *testing.T) {
	var b strings.Builder
	require.NoError(t, format.Results(&b, result(), []string{"name"}))
	assert.True(t, strings.HasPrefix(b.String(), "#  RELEVANCE  NAME\n"))
}

func TestResults_Empty(t *testing.T) {
	var b strings.Builder
	res := &service.Result{Entity: "users", Text: "zz", Threshold: 6.75}
	require.NoError(t, format.Results(&b, res, nil))
	assert.Equal(t, "no users match \"zz\" (threshold 6.75)\n", b.String())
}

func TestEntities(t *testing.T) {
	var b strings.Builder
	err := format.Entities(&b, []service.EntityInfo{{
		Name:             "users",
		Table:            "users",
		Key:              "id",
		DefaultThreshold: 5.5,
		Columns:          []service.ColumnInfo{{Column: "users.name", Weight: 10}, {Column: "posts.title", Weight: 1}},
		Joins: []service.JoinInfo{
			{Table: "posts", On: "users.id = posts.user_id", Active: true},
			{Table: "teams", On: "users.team_id = teams.id"},
		},
	}})
	require.NoError(t, err)
	assert.Equal(t, `users (users.id, default threshold 5.5)
├── users.name  10
├── posts.title  1
├── join posts on users.id = posts.user_id
└── join teams on users.team_id = teams.id [unused]
`, b.String())
}

func TestExplain(t *testing.T) {
	score, pass := 350.0, true
	md := format.Explain(&service.Explanation{
		Entity:           "users",
		Dialect:          "sqlite",
		SQL:              "SELECT 1",
		Args:             []any{"john", 6.0},
		Tokens:           []string{"john"},
		Phrase:           "john",
		Terms:            []string{"+ users.name whole-word any[\"john\"] → 150"},
		Threshold:        6,
		DefaultThreshold: 6,
		Score:            &score,
		Pass:             &pass,
	})

	assert.Contains(t, md, "# Search plan: users")
	assert.Contains(t, md, "- **Tokens:** `john`")
	assert.Contains(t, md, "relevance > 6 (default 6)")
	assert.Contains(t, md, "- **Row score:** 350, included")
	assert.Contains(t, md, "```sql\nSELECT 1\n```")
	assert.Contains(t, md, "2. `6`")
}

func TestExplain_NoTerms(t *testing.T) {
	md := format.Explain(&service.Explanation{Entity: "users", Dialect: "sqlite", SQL: "SELECT 1"})
	assert.Contains(t, md, "- **Tokens:** none")
	assert.Contains(t, md, "every row scores 0")
	assert.NotContains(t, md, "## Arguments")
}

func TestComparison(t *testing.T) {
	a, b := result(), result()
	var out strings.Builder
	require.NoError(t, format.Comparison(&out, &service.Comparison{A: a, B: b, Diff: diff.Lines([]string{"x"}, []string{"x"}, "a", "b")}, false))
	assert.Contains(t, out.String(), "rankings are identical")

	out.Reset()
	d := diff.Lines([]string{"id=1"}, []string{"id=2"}, "a", "b")
	require.NoError(t, format.Comparison(&out, &service.Comparison{A: a, B: b, Diff: d}, false))
	assert.Contains(t, out.String(), "- id=1")
	assert.Contains(t, out.String(), "+ id=2")
	assert.Contains(t, out.String(), "1 added, 1 removed")
}

func TestHistory(t *testing.T) {
	var b strings.Builder
	entries := []log.Entry{
		{Start: 1700000000000, Source: "search:search", Author: "cli", Entity: "users", Query: "john", Results: 4, Success: true},
		{Start: 1700000000000, Source: "mcp:search", Author: "agent", Entity: "nope", Query: "x", Error: "unknown entity"},
	}
	require.NoError(t, format.History(&b, entries))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TIME"))
	assert.Contains(t, lines[1], "search:search")
	assert.True(t, strings.HasSuffix(lines[1], "4"))
	assert.True(t, strings.HasSuffix(lines[2], "error: unknown entity"))
}

func TestHistory_Empty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, format.History(&b, nil))
	assert.Equal(t, "no history\n", b.String())
}
