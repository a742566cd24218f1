// engine.go implements Service over a database connection and a catalog
// of entities.
//
// Each operation runs inside an OpenTelemetry span. Statements are logged
// at debug level through zap, so --verbose shows the SQL a search ran.

package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/sift/internal/catalog"
	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/diff"
	"github.com/jpl-au/sift/internal/logger"
	"github.com/jpl-au/sift/internal/relevance"
	"github.com/jpl-au/sift/internal/sqlq"
	"github.com/jpl-au/sift/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "sift/service"

// Engine implements Service.
type Engine struct {
	cfg    *config.Config
	cat    *catalog.Catalog
	db     store.Querier
	log    *zap.Logger
	tracer trace.Tracer
}

// Compile-time interface compliance check.
var _ Service = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the diagnostic logger. Defaults to the logger carried by
// the context given to New, or a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithQuerier uses q instead of opening the configured database.
func WithQuerier(q store.Querier) Option {
	return func(e *Engine) { e.db = q }
}

// WithTracerProvider sets the span provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) { e.tracer = tp.Tracer(tracerName) }
}

// New creates an Engine for cfg, opening its database unless WithQuerier
// is given.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:    cfg,
		cat:    catalog.New(cfg.Entities),
		log:    logger.FromContext(ctx),
		tracer: otel.Tracer(tracerName),
	}
	for _, o := range opts {
		o(e)
	}

	if e.db == nil {
		db, err := store.Open(ctx, cfg.Driver(), cfg.DSN())
		if err != nil {
			return nil, err
		}
		e.db = db.WithTracer(e.traceSQL)
	}
	return e, nil
}

func (e *Engine) traceSQL(query string, args []any) {
	e.log.Debug("sql", zap.String("query", query), zap.Int("args", len(args)))
}

// Catalog returns the entities the engine searches.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// Close implements Service.
func (e *Engine) Close() error {
	return e.db.Close()
}

// Entities implements Service.
func (e *Engine) Entities(ctx context.Context) ([]EntityInfo, error) {
	_, span := e.tracer.Start(ctx, "Entities")
	defer span.End()

	out, err := DescribeAll(e.cat)
	if err != nil {
		return nil, fail(span, err, "invalid entity")
	}
	span.SetAttributes(attribute.Int("entities", len(out)))
	return out, nil
}

// DescribeAll describes every entity in cat, in name order. It needs no
// database, so callers without a connection can still list entities.
func DescribeAll(cat *catalog.Catalog) ([]EntityInfo, error) {
	var out []EntityInfo
	for _, name := range cat.Names() {
		cfg, err := cat.Config(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Describe(name, cfg))
	}
	return out, nil
}

// Describe summarises a normalised entity configuration.
func Describe(name string, cfg *relevance.Config) EntityInfo {
	ent := cfg.Entity()
	info := EntityInfo{
		Name:             name,
		Table:            ent.Table,
		Key:              ent.Key,
		DefaultThreshold: cfg.DefaultThreshold(),
	}
	for _, c := range cfg.Columns() {
		info.Columns = append(info.Columns, ColumnInfo{Column: c.Qualified(), Weight: c.Weight})
	}
	active := make(map[string]bool)
	for _, j := range cfg.ActiveJoins() {
		active[j.Table] = true
	}
	for _, j := range cfg.Joins() {
		info.Joins = append(info.Joins, JoinInfo{Table: j.Table, On: j.On(), Active: active[j.Table]})
	}
	return info
}

// Search implements Service.
func (e *Engine) Search(ctx context.Context, entity string, opts SearchOptions) (*Result, error) {
	ctx, span := e.tracer.Start(ctx, "Search", trace.WithAttributes(searchAttrs(entity, opts)...))
	defer span.End()

	res, err := e.search(ctx, e.cat, entity, opts)
	if err != nil {
		return nil, fail(span, err, "search failed")
	}
	span.SetAttributes(
		attribute.Int("results", len(res.Rows)),
		attribute.Int64("total", res.Total),
		attribute.Float64("threshold", res.Threshold),
	)
	return res, nil
}

func (e *Engine) search(ctx context.Context, cat *catalog.Catalog, entity string, opts SearchOptions) (*Result, error) {
	cfg, q, plan, err := e.prepare(cat, entity, opts)
	if err != nil {
		return nil, err
	}

	total, err := e.db.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	limit := e.cfg.ClampLimit(opts.Limit)
	q.Limit(limit)
	q.Offset(opts.Offset)
	rows, err := e.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	e.log.Debug("search",
		zap.String("entity", entity),
		zap.Strings("tokens", plan.Tokens),
		zap.Float64("threshold", plan.Threshold.Min),
		zap.Int("rows", len(rows)),
	)
	return &Result{
		Entity:    entity,
		Text:      opts.Text,
		Tokens:    plan.Tokens,
		Threshold: plan.Threshold.Min,
		Total:     total,
		Limit:     limit,
		Offset:    opts.Offset,
		Key:       cfg.Entity().Key,
		Rows:      rows,
	}, nil
}

// prepare resolves the entity and builds its search query.
func (e *Engine) prepare(cat *catalog.Catalog, entity string, opts SearchOptions) (*relevance.Config, *sqlq.Select, *relevance.Plan, error) {
	cfg, err := cat.Config(entity)
	if err != nil {
		return nil, nil, nil, err
	}
	if opts.Offset < 0 {
		return nil, nil, nil, fmt.Errorf("%w: offset must not be negative", relevance.ErrInvalidArgument)
	}

	q := sqlq.From(cfg.Entity().Table)
	if opts.Where != "" {
		q.Where(opts.Where, opts.Args...)
	}
	plan, err := relevance.BuildSearchQuery(cfg, q, relevance.Request{
		Text:            opts.Text,
		Threshold:       opts.Threshold,
		RequireFullText: opts.RequireFullText,
		FullTextOnly:    opts.FullTextOnly,
		OrderBy:         opts.OrderBy,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, q, plan, nil
}

// Explain implements Service.
func (e *Engine) Explain(ctx context.Context, entity string, opts SearchOptions, row map[string]string) (*Explanation, error) {
	_, span := e.tracer.Start(ctx, "Explain", trace.WithAttributes(searchAttrs(entity, opts)...))
	defer span.End()

	cfg, q, plan, err := e.prepare(e.cat, entity, opts)
	if err != nil {
		return nil, fail(span, err, "explain failed")
	}
	q.Limit(e.cfg.ClampLimit(opts.Limit))
	q.Offset(opts.Offset)

	dialect := e.db.Dialect()
	query, args := q.Build(dialect)
	ex := &Explanation{
		Entity:           entity,
		Dialect:          dialect.String(),
		SQL:              query,
		Args:             args,
		Tokens:           plan.Tokens,
		Phrase:           plan.Phrase,
		Threshold:        plan.Threshold.Min,
		DefaultThreshold: cfg.DefaultThreshold(),
	}
	for _, l := range plan.Sum.Terms {
		ex.Terms = append(ex.Terms, l.String())
	}

	if row != nil {
		score, pass := plan.Threshold.Pass(qualify(cfg.Entity().Table, row))
		ex.Score, ex.Pass = &score, &pass
	}
	return ex, nil
}

// qualify converts "column=value" pairs into a relevance.Row, prefixing
// bare column names with the entity table.
func qualify(table string, row map[string]string) relevance.Row {
	out := make(relevance.Row, len(row))
	for k, v := range row {
		if !strings.Contains(k, ".") {
			k = table + "." + k
		}
		out[k] = &v
	}
	return out
}

// Compare implements Service.
func (e *Engine) Compare(ctx context.Context, entity string, a, b SearchOptions, alt *catalog.Catalog) (*Comparison, error) {
	ctx, span := e.tracer.Start(ctx, "Compare", trace.WithAttributes(
		attribute.String("entity", entity),
		attribute.Bool("alternate_config", alt != nil),
	))
	defer span.End()

	ra, err := e.search(ctx, e.cat, entity, a)
	if err != nil {
		return nil, fail(span, err, "first search failed")
	}
	cat := e.cat
	if alt != nil {
		cat = alt
	}
	rb, err := e.search(ctx, cat, entity, b)
	if err != nil {
		return nil, fail(span, err, "second search failed")
	}

	d := diff.Lines(ranking(ra), ranking(rb), label("a", a, false), label("b", b, alt != nil))
	span.SetAttributes(attribute.Bool("changed", d.Changed))
	return &Comparison{A: ra, B: rb, Diff: d}, nil
}

// ranking renders a result as one "key=value relevance=n" line per row, in
// rank order.
func ranking(r *Result) []string {
	lines := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		lines[i] = fmt.Sprintf("%s=%s relevance=%s", r.Key, row.String(r.Key),
			strconv.FormatFloat(row.Relevance, 'f', -1, 64))
	}
	return lines
}

func label(name string, opts SearchOptions, altConfig bool) string {
	s := name + ": " + strconv.Quote(opts.Text)
	if altConfig {
		s += " (alternate config)"
	}
	return s
}

func searchAttrs(entity string, opts SearchOptions) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("entity", entity),
		attribute.Int("text_length", len(opts.Text)),
		attribute.Bool("full_text", opts.RequireFullText),
		attribute.Bool("full_text_only", opts.FullTextOnly),
		attribute.Int("limit", opts.Limit),
		attribute.Int("offset", opts.Offset),
	}
}

func fail(span trace.Span, err error, msg string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	return err
}
