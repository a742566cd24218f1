// log_query.go reads entries back from the audit log for "sift history".

package log

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jpl-au/sift/internal/sqlq"
)

// ErrNotOpen is returned when reading before Open succeeded.
var ErrNotOpen = errors.New("audit log not open")

// Filter selects entries for Recent. Zero values do not filter.
type Filter struct {
	Since       time.Duration // only entries started within this window
	Entity      string
	Action      string
	AllProjects bool // include entries from every project, not just the current one
	Limit       int
}

// Recent returns matching entries, newest first.
func Recent(ctx context.Context, f Filter) ([]Entry, error) {
	mu.Lock()
	l := global
	mu.Unlock()
	if l == nil {
		return nil, ErrNotOpen
	}
	return l.recent(ctx, f, time.Now())
}

func (l *Logger) recent(ctx context.Context, f Filter, now time.Time) ([]Entry, error) {
	q := sqlq.From("log")
	q.Columns("start", `"end"`, "source", "author", "action", "entity", "query",
		"results", "success", "error", "detail")
	if !f.AllProjects {
		q.Where("project = ?", l.project)
	}
	if f.Since > 0 {
		q.Where("start >= ?", now.Add(-f.Since).UnixMilli())
	}
	if f.Entity != "" {
		q.Where("entity = ?", f.Entity)
	}
	if f.Action != "" {
		q.Where("action = ?", f.Action)
	}
	q.OrderBy("start DESC", "id DESC")
	if f.Limit > 0 {
		q.Limit(f.Limit)
	}

	query, args := q.Build(sqlq.SQLite)
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e                                  Entry
			author, entity, text, errMsg, data sql.NullString
			success                            int
		)
		if err := rows.Scan(&e.Start, &e.End, &e.Source, &author, &e.Action, &entity,
			&text, &e.Results, &success, &errMsg, &data); err != nil {
			return nil, fmt.Errorf("read audit log: %w", err)
		}
		e.Author = author.String
		e.Entity = entity.String
		e.Query = text.String
		e.Error = errMsg.String
		e.Success = success == 1
		if data.Valid {
			_ = json.Unmarshal([]byte(data.String), &e.Detail)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
