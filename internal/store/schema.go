// schema.go creates the demo database used by "sift init --demo".
//
// Schema and seed files are embedded from the sql/ directory and executed
// in alphabetical order (hence the numeric prefixes like 001_, 002_).

package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/jpl-au/sift/internal/sqlq"
)

//go:embed sql/*.sql
var demo embed.FS

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ExecEmbedded executes all .sql files from an embedded filesystem in alphabetical order.
// The dir parameter specifies the directory within the embed.FS to read from.
func ExecEmbedded(ctx context.Context, db Execer, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// CreateDemo creates a SQLite database at path holding the demo users and
// posts tables. An existing file is left untouched and reported as created
// false.
func CreateDemo(ctx context.Context, path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return false, fmt.Errorf("open database %s: %w", path, err)
	}
	defer db.Close()

	// WAL mode: concurrent readers while the MCP server and CLI share the
	// file.
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
		return false, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA synchronous=NORMAL`); err != nil {
		return false, fmt.Errorf("setting synchronous mode: %w", err)
	}

	err = New(db, sqlq.SQLite).Tx(ctx, func(tx *sql.Tx) error {
		return ExecEmbedded(ctx, tx, demo, "sql")
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
