// tools_search.go implements the MCP tools that run or inspect searches.
//
// Results are returned as JSON so the LLM can read relevance scores and
// columns directly. Every call is written to the audit log with source
// "mcp:<tool>".

package mcp

import (
	"context"

	"github.com/jpl-au/sift/internal/catalog"
	"github.com/jpl-au/sift/internal/log"
	"github.com/jpl-au/sift/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// required extracts entity and text, or returns an error result.
func required(req mcp.CallToolRequest) (entity, text string, res *mcp.CallToolResult) {
	entity, err := req.RequireString("entity")
	if err != nil || entity == "" {
		return "", "", mcp.NewToolResultError("entity is required")
	}
	text, err = req.RequireString("text")
	if err != nil {
		return "", "", mcp.NewToolResultError("text is required")
	}
	return entity, text, nil
}

func options(req mcp.CallToolRequest, text string) (service.SearchOptions, *mcp.CallToolResult) {
	threshold, err := getFloat(req, "threshold")
	if err != nil {
		return service.SearchOptions{}, mcp.NewToolResultError(err.Error())
	}
	return service.SearchOptions{
		Text:            text,
		Threshold:       threshold,
		RequireFullText: getBool(req, "full_text", false),
		FullTextOnly:    getBool(req, "full_text_only", false),
		Limit:           getInt(req, "limit", 0),
		Offset:          getInt(req, "offset", 0),
	}, nil
}

// search handles sift_search tool calls.
func (h *handlers) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireService(); res != nil {
		return res, nil
	}
	entity, text, res := required(req)
	if res != nil {
		return res, nil
	}

	opts, res := options(req, text)
	if res != nil {
		return res, nil
	}
	r, err := h.svc.Search(ctx, entity, opts)

	ev := log.Event("mcp:search", "search").Author("mcp").Entity(entity).Query(text)
	if r != nil {
		ev.Results(len(r.Rows)).Detail("total", r.Total)
	}
	ev.Write(err)

	if err != nil {
		h.log.Debug("search failed", zap.String("entity", entity), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(r)
}

// explain handles sift_explain tool calls.
func (h *handlers) explain(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireService(); res != nil {
		return res, nil
	}
	entity, text, res := required(req)
	if res != nil {
		return res, nil
	}

	opts, res := options(req, text)
	if res != nil {
		return res, nil
	}
	row := getStringMap(req, "row")
	ex, err := h.svc.Explain(ctx, entity, opts, row)

	log.Event("mcp:explain", "explain").Author("mcp").Entity(entity).Query(text).Detail("row", row != nil).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ex)
}

// compare handles sift_compare tool calls.
func (h *handlers) compare(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireService(); res != nil {
		return res, nil
	}
	entity, text, res := required(req)
	if res != nil {
		return res, nil
	}
	textB, err := req.RequireString("text_b")
	if err != nil {
		return mcp.NewToolResultError("text_b is required"), nil //nolint:nilerr
	}

	a, res := options(req, text)
	if res != nil {
		return res, nil
	}
	b := a
	b.Text = textB
	cmp, err := h.svc.Compare(ctx, entity, a, b, nil)

	log.Event("mcp:compare", "compare").Author("mcp").Entity(entity).Query(text).Detail("text_b", textB).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"a":       cmp.A,
		"b":       cmp.B,
		"changed": cmp.Diff.Changed,
		"added":   cmp.Diff.Added,
		"removed": cmp.Diff.Removed,
		"diff":    cmp.Diff.Format(false),
	})
}

// listEntities handles sift_entities tool calls. Works without a database
// since it only reads the configuration.
func (h *handlers) listEntities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // req unused
	var (
		infos []service.EntityInfo
		err   error
	)
	if h.svc != nil {
		infos, err = h.svc.Entities(ctx)
	} else {
		infos, err = service.DescribeAll(catalog.New(h.cfg.Entities))
	}

	log.Event("mcp:entities", "list").Author("mcp").Results(len(infos)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(infos)
}
