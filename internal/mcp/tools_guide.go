// tools_guide.go implements the sift_guide tool.

package mcp

import (
	"context"

	"github.com/jpl-au/sift/guide"
	"github.com/jpl-au/sift/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := getString(req, "topic", "")

	content, err := guide.Get(topic)
	log.Event("mcp:guide", "read").Author("mcp").Detail("topic", topic).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}
