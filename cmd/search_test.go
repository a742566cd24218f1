package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Demo data, default threshold (10+10+2+5+3)/5 = 6:
// "john" scores John Smith 300 (two posts), Alice Johnson 100,
// 'John Doe' and Johnny Walker 50 each; Bob's bio mention scores 2.

func TestSearch(t *testing.T) {
	env := newTestEnv(t)

	var res searchResult
	env.runJSON(&res, "search", "users", "John", "--order", "users.id")
	assert.Equal(t, "users", res.Entity)
	assert.Equal(t, []string{"john"}, res.Tokens)
	assert.Equal(t, 6.0, res.Threshold)
	assert.Equal(t, int64(4), res.Total)
	assert.Equal(t, []float64{1, 4, 2, 3}, res.ids())
	assert.Equal(t, 300.0, res.Rows[0]["relevance"])
	assert.Equal(t, 100.0, res.Rows[1]["relevance"])
}

func TestSearch_Table(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("search", "users", "john", "--columns", "id,first_name", "--order", "users.id")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "#  RELEVANCE  ID  FIRST_NAME", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1  300        1   John"), lines[1])
	env.contains(out, "1-4 of 4 (threshold 6)")
}

func TestSearch_Threshold(t *testing.T) {
	env := newTestEnv(t)

	var res searchResult
	env.runJSON(&res, "search", "users", "john", "--threshold", "100")
	assert.Equal(t, []float64{1}, res.ids())

	// zero lets Bob's single bio hit through
	env.runJSON(&res, "search", "users", "john", "--threshold", "0")
	assert.Equal(t, int64(5), res.Total)

	out, err := env.runErr("search", "users", "john", "--threshold", "-1")
	assert.Error(t, err)
	env.contains(out, "must not be negative")
}

func TestSearch_Pagination(t *testing.T) {
	env := newTestEnv(t)

	var res searchResult
	env.runJSON(&res, "search", "users", "john", "--limit", "2", "--offset", "1", "--order", "users.id")
	assert.Equal(t, []float64{4, 2}, res.ids())
	assert.Equal(t, int64(4), res.Total)
	assert.Equal(t, 2, res.Limit)
	assert.Equal(t, 1, res.Offset)

	env.runJSON(&res, "search", "users", "john", "--limit", "5000")
	assert.Equal(t, 1000, res.Limit)
}

func TestSearch_Where(t *testing.T) {
	env := newTestEnv(t)

	var res searchResult
	env.runJSON(&res, "search", "users", "golang", "--where", "active = ?", "--arg", "1")
	assert.Equal(t, []float64{7, 1}, res.ids())

	out, err := env.runErr("search", "users", "golang", "--where", "active = ?")
	assert.Error(t, err)
	env.contains(out, "1 placeholder(s) but 0 --arg")
}

func TestSearch_FullText(t *testing.T) {
	env := newTestEnv(t)

	var res searchResult
	env.runJSON(&res, "search", "posts", "golang tips", "--full-text-only")
	require.NotEmpty(t, res.Rows)
	assert.Equal(t, "Golang tips", res.Rows[0]["title"])

	out, err := env.runErr("search", "posts", "--full-text-only")
	assert.Error(t, err)
	env.contains(out, "needs non-empty text")
}

func TestSearch_NoMatches(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("search", "users", "zzzz")
	env.contains(out, `no users match "zzzz"`)

	var res searchResult
	env.runJSON(&res, "search", "users")
	assert.Zero(t, res.Total)
}

func TestSearch_Errors(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("search", "nope", "john")
	assert.Error(t, err)
	env.contains(out, "unknown entity")

	_, err = env.runErr("search")
	assert.Error(t, err)

	// -o json reports the error on stdout
	var res map[string]string
	env.runJSON(&res, "search", "nope", "john")
	assert.Contains(t, res["error"], "unknown entity")
}

func TestSearch_DSNOverride(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("search", "users", "john", "--driver", "oracle")
	assert.Error(t, err)
	env.contains(out, "database.driver")
}

func TestSearch_Verbose(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("search", "users", "john", "--verbose")
	env.contains(out, "SUM(")
	env.contains(out, "ORDER BY relevance DESC")
}
