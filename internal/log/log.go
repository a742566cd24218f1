// Package log is the audit trail of sift operations. Every search,
// explain, compare and config change from the CLI or the MCP server is
// written to ~/.sift/log/sift-log.db and can be read back with Recent.
//
//	log.Event("search:search", "search").
//		Author(cmd.Author()).
//		Entity("users").
//		Query("john doe").
//		Results(len(rows)).
//		Write(err)
//
//	log.Event("core:config", "set").
//		Detail("key", key).
//		Write(err)
package log

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is one recorded operation. Start and End are unix milliseconds.
type Entry struct {
	Source  string         `json:"source"`
	Author  string         `json:"author,omitempty"`
	Action  string         `json:"action"`
	Entity  string         `json:"entity,omitempty"`
	Query   string         `json:"query,omitempty"`
	Results int            `json:"results"`
	Start   int64          `json:"start"`
	End     int64          `json:"end"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// Builder accumulates one entry. Start it with [Event] and finish it with
// [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts an entry and stamps its start time. source is
// "{extension}:{command}" for the CLI or "mcp:{tool}" for the server;
// action is the verb recorded (search, explain, compare, list, set, init).
func Event(source, action string) *Builder {
	return &Builder{entry: Entry{Source: source, Action: action, Start: time.Now().UnixMilli()}}
}

// Author records who ran the operation: cmd.Author() on the CLI, "mcp" for tools.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Entity records the entity searched.
func (b *Builder) Entity(name string) *Builder {
	b.entry.Entity = name
	return b
}

// Query records the search text.
func (b *Builder) Query(text string) *Builder {
	b.entry.Query = text
	return b
}

// Results records how many rows came back.
func (b *Builder) Results(n int) *Builder {
	b.entry.Results = n
	return b
}

// Detail adds an operation-specific value such as a threshold or config key.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write stamps the end time and stores the entry. A non-nil err marks it
// failed and keeps the message:
//
//	res, err := svc.Search(ctx, entity, opts)
//	log.Event("search:search", "search").Entity(entity).Write(err)
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open opens the log database, creating it on first use. Later calls are
// no-ops until Close. Callers may ignore the error: logging is best-effort.
func Open() error {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("audit log dir: %w", err)
	}
	db, err := sql.Open("sqlite", p)
	if err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return fmt.Errorf("audit log schema: %w", err)
	}

	global = &Logger{db: db}
	return nil
}

// SetProject tags later entries with a hash of dir, normally the working
// directory. Recent filters on the same hash.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log stores e as given. It does nothing before Open.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
