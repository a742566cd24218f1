// Package mcp implements the Model Context Protocol server, exposing sift
// searches to LLMs. Assistants can list the configured entities, run ranked
// searches and inspect how a search is scored.
package mcp

import (
	"context"
	"errors"

	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrUnavailable is returned by tools when the database could not be opened
// at startup.
const ErrUnavailable = "database unavailable - check database.driver and database.dsn, or run 'sift init --demo'"

// Serve starts the MCP server over stdio.
//
// The server starts even if the database cannot be opened, so that
// sift_guide and sift_entities still answer and the failure is reported
// through the tools rather than as a dead process.
func Serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	h := &handlers{cfg: cfg, log: logger}

	svc, err := service.New(ctx, cfg, service.WithLogger(logger))
	if err != nil {
		logger.Warn("database unavailable, search tools disabled", zap.Error(err))
	} else {
		h.svc = svc
		defer svc.Close()
	}

	s := newServer(h)
	logger.Info("sift MCP server ready",
		zap.String("version", Version),
		zap.String("transport", "stdio"),
		zap.Int("entities", len(cfg.Entities)))

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		logger.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the search service.
// The svc field is nil if the database could not be opened.
type handlers struct {
	cfg *config.Config
	svc service.Service
	log *zap.Logger
}

// requireService returns an error result if no database is available.
func (h *handlers) requireService() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrUnavailable)
	}
	return nil
}

// newServer builds the MCP server with every resource and tool registered.
func newServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"sift",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	return s
}

// registerResources adds URI-based access to entity definitions.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"sift://entities/{name}",
			"Entity",
			mcp.WithTemplateDescription("Searchable columns, weights and joins of an entity"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readEntity,
	)
}

// searchParams are shared by the tools that build a search.
func searchParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("entity", mcp.Required(), mcp.Description("Entity name (see sift_entities)")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Free-form search text")),
		mcp.WithNumber("threshold", mcp.Description("Minimum relevance, exclusive (default: mean column weight)")),
		mcp.WithBoolean("full_text", mcp.Description("Also reward columns starting with the whole phrase")),
		mcp.WithBoolean("full_text_only", mcp.Description("Score only the whole phrase, ignoring individual words")),
	}
}

// registerTools exposes sift operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("sift_entities",
			mcp.WithDescription("List searchable entities with their weighted columns, joins and default threshold"),
		),
		h.listEntities,
	)

	s.AddTool(
		mcp.NewTool("sift_search",
			append(searchParams(),
				mcp.WithDescription("Ranked relevance search over an entity; best matches first"),
				mcp.WithNumber("limit", mcp.Description("Maximum rows to return (default: search.limit)")),
				mcp.WithNumber("offset", mcp.Description("Rows to skip for pagination")),
			)...,
		),
		h.search,
	)

	s.AddTool(
		mcp.NewTool("sift_explain",
			append(searchParams(),
				mcp.WithDescription("Show the SQL, scoring terms and threshold of a search without running it"),
				mcp.WithObject("row", mcp.Description("Optional column/value map to score in memory, e.g. {\"first_name\": \"John\"}")),
			)...,
		),
		h.explain,
	)

	s.AddTool(
		mcp.NewTool("sift_compare",
			append(searchParams(),
				mcp.WithDescription("Diff the rankings of two searches over the same entity"),
				mcp.WithString("text_b", mcp.Required(), mcp.Description("Search text of the second search")),
			)...,
		),
		h.compare,
	)

	s.AddTool(
		mcp.NewTool("sift_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key ("+joinKeys()+") or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("sift_guide",
			mcp.WithDescription("Get help/guide content for sift"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g. 'search', 'scoring', 'config') or empty for index")),
		),
		h.getGuide,
	)
}
