// tools_config.go implements the read-only MCP configuration tool.
//
// Setting values is left to the CLI: a running server holds an open
// connection built from the configuration it started with.

package mcp

import (
	"context"

	"github.com/jpl-au/sift/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles sift_config_get tool calls.
func (h *handlers) configGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:config_get", "list").Author("mcp").Write(nil)
		return jsonResult(h.cfg.All())
	}

	v, err := h.cfg.Get(key)

	log.Event("mcp:config_get", "get").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{key: v})
}
