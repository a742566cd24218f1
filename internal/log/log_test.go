package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a temporary database for one test.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = origDBPath
	})
}

func openLogDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", DBPath())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLogger(t *testing.T) {
	useTempDB(t)

	t.Run("open and close", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()
		SetProject("/test/project")

		Log(Entry{
			Source:  "search:search",
			Author:  "test-user",
			Action:  "search",
			Entity:  "users",
			Query:   "john",
			Results: 3,
			Success: true,
		})

		db := openLogDB(t)
		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM log").Scan(&count))
		assert.Equal(t, 1, count)

		var source, action, entity, query, project string
		var results, success int
		err := db.QueryRow("SELECT source, action, entity, query, results, success, project FROM log WHERE id = 1").
			Scan(&source, &action, &entity, &query, &results, &success, &project)
		require.NoError(t, err)
		assert.Equal(t, "search:search", source)
		assert.Equal(t, "search", action)
		assert.Equal(t, "users", entity)
		assert.Equal(t, "john", query)
		assert.Equal(t, 3, results)
		assert.Equal(t, 1, success)
		assert.Equal(t, hash("/test/project"), project)
	})

	t.Run("log with detail", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Log(Entry{
			Source:  "search:explain",
			Action:  "explain",
			Success: true,
			Detail:  map[string]any{"threshold": 6.75, "full_text": true},
		})

		var detail string
		require.NoError(t, openLogDB(t).QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail))
		assert.Contains(t, detail, "6.75")
		assert.Contains(t, detail, "full_text")
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()
		Log(Entry{Source: "test:cmd", Action: "test", Success: true})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		require.NoError(t, Open())
		require.NoError(t, Open())
		Close()
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/project")
	h2 := hash("/home/user/project")
	h3 := hash("/home/user/other")

	assert.Equal(t, h1, h2, "same input should produce same hash")
	assert.NotEqual(t, h1, h3, "different input should produce different hash")
	assert.Len(t, h1, 16, "BLAKE2b-64 should produce 16 hex chars")
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	origDBPath := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = origDBPath }()

	assert.Equal(t, filepath.Join(home, ".sift", "log", "sift-log.db"), DBPath())
}

func TestBuilder(t *testing.T) {
	useTempDB(t)

	t.Run("fluent API success", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("search:search", "search").
			Author("test-user").
			Entity("users").
			Query("john doe").
			Results(2).
			Write(nil)

		var author, entity, query string
		var results, success int
		var start, end int64
		err := openLogDB(t).QueryRow("SELECT author, entity, query, results, success, start, end FROM log ORDER BY id DESC LIMIT 1").
			Scan(&author, &entity, &query, &results, &success, &start, &end)
		require.NoError(t, err)
		assert.Equal(t, "test-user", author)
		assert.Equal(t, "users", entity)
		assert.Equal(t, "john doe", query)
		assert.Equal(t, 2, results)
		assert.Equal(t, 1, success)
		assert.GreaterOrEqual(t, end, start)
	})

	t.Run("fluent API with error", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		testErr := sql.ErrNoRows
		Event("search:search", "search").Entity("missing").Write(testErr)

		var success int
		var errMsg string
		err := openLogDB(t).QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, testErr.Error(), errMsg)
	})

	t.Run("fluent API with Detail", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("core:config", "set").
			Detail("key", "search.limit").
			Detail("value", 50).
			Write(nil)

		var detail string
		require.NoError(t, openLogDB(t).QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail))
		assert.Contains(t, detail, "search.limit")
		assert.Contains(t, detail, "50")
	})
}
