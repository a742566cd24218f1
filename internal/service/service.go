// Package service defines the search operations shared by the CLI and the
// MCP server. Commands and tools depend on the Service interface rather
// than the concrete Engine, so they can be tested against fakes.
package service

import (
	"context"

	"github.com/jpl-au/sift/internal/catalog"
	"github.com/jpl-au/sift/internal/diff"
	"github.com/jpl-au/sift/internal/store"
)

// Service defines all search operations.
//
// Obtain an implementation with New and always call Close when done:
//
//	svc, err := service.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	res, err := svc.Search(ctx, "users", service.SearchOptions{Text: "john"})
type Service interface {
	// Close releases the database connection.
	Close() error

	// Entities describes every configured entity. Fails on the first
	// entity whose definition is invalid.
	Entities(ctx context.Context) ([]EntityInfo, error)

	// Search runs a ranked search over an entity.
	Search(ctx context.Context, entity string, opts SearchOptions) (*Result, error)

	// Explain reports how a search would be built without running it. With
	// a non-nil row it also scores that row in memory.
	Explain(ctx context.Context, entity string, opts SearchOptions, row map[string]string) (*Explanation, error)

	// Compare runs two searches and diffs their rankings. When alt is
	// non-nil the second search uses its definition of the entity.
	Compare(ctx context.Context, entity string, a, b SearchOptions, alt *catalog.Catalog) (*Comparison, error)
}

// SearchOptions configures one search.
type SearchOptions struct {
	Text            string
	Threshold       *float64 // nil selects the entity's default
	RequireFullText bool
	FullTextOnly    bool
	Limit           int // 0 selects the configured default
	Offset          int
	Where           string // extra row filter, "?" placeholders
	Args            []any  // arguments for Where
	OrderBy         []string
}

// Result is one page of search results.
type Result struct {
	Entity    string            `json:"entity"`
	Text      string            `json:"text"`
	Tokens    []string          `json:"tokens"`
	Threshold float64           `json:"threshold"`
	Total     int64             `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
	Key       string            `json:"key"`
	Rows      []store.ResultRow `json:"rows"`
}

// Explanation describes a search without running it.
type Explanation struct {
	Entity           string   `json:"entity"`
	Dialect          string   `json:"dialect"`
	SQL              string   `json:"sql"`
	Args             []any    `json:"args"`
	Tokens           []string `json:"tokens"`
	Phrase           string   `json:"phrase"`
	Terms            []string `json:"terms"`
	Threshold        float64  `json:"threshold"`
	DefaultThreshold float64  `json:"default_threshold"`
	Score            *float64 `json:"score,omitempty"`
	Pass             *bool    `json:"pass,omitempty"`
}

// Comparison holds two searches and the diff of their rankings.
type Comparison struct {
	A    *Result     `json:"a"`
	B    *Result     `json:"b"`
	Diff diff.Result `json:"diff"`
}

// EntityInfo describes a configured entity.
type EntityInfo struct {
	Name             string       `json:"name"`
	Table            string       `json:"table"`
	Key              string       `json:"key"`
	Columns          []ColumnInfo `json:"columns"`
	Joins            []JoinInfo   `json:"joins,omitempty"`
	DefaultThreshold float64      `json:"default_threshold"`
}

// ColumnInfo is a normalised searchable column.
type ColumnInfo struct {
	Column string  `json:"column"`
	Weight float64 `json:"weight"`
}

// JoinInfo is a declared join and whether any column uses it.
type JoinInfo struct {
	Table  string `json:"table"`
	On     string `json:"on"`
	Active bool   `json:"active"`
}
