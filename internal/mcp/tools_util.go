// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Extraction is permissive: a missing or mistyped optional parameter yields
// the default rather than an error, since LLMs frequently omit optional
// parameters or send them in unexpected shapes. Numbers that change which
// rows match are the exception; see getFloat.

package mcp

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/relevance"
	"github.com/mark3labs/mcp-go/mcp"
)

func arguments(req mcp.CallToolRequest) map[string]any {
	args, _ := req.Params.Arguments.(map[string]any)
	return args
}

// getString extracts a string parameter, returning def if it is missing or
// not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter. A string "true" is not accepted.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	if v, ok := arguments(req)[name].(bool); ok {
		return v
	}
	return def
}

// getInt extracts an integer parameter. JSON numbers decode as float64.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	if v, ok := arguments(req)[name].(float64); ok {
		return int(v)
	}
	return def
}

// getFloat extracts an optional number, returning nil when absent or null
// so callers can tell "not given" from zero. Unlike the other getters a
// value that is present but not a finite number is an error: a threshold
// silently replaced by the default would change which rows come back.
// Numeric strings such as "7.5" are accepted.
func getFloat(req mcp.CallToolRequest, name string) (*float64, error) {
	raw, ok := arguments(req)[name]
	if !ok || raw == nil {
		return nil, nil
	}
	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number, got %q", relevance.ErrInvalidArgument, name, x)
		}
		v = f
	default:
		return nil, fmt.Errorf("%w: %s must be a number, got %T", relevance.ErrInvalidArgument, name, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %s must be a finite number", relevance.ErrInvalidArgument, name)
	}
	return &v, nil
}

// getStringMap extracts an object parameter as column/value strings. Numbers
// and booleans are formatted; null and nested values are skipped.
func getStringMap(req mcp.CallToolRequest, name string) map[string]string {
	obj, ok := arguments(req)[name].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		switch v := v.(type) {
		case string:
			out[k] = v
		case float64, bool:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

// jsonResult serialises v as indented JSON in an MCP text result.
// Marshalling failures become tool errors so the LLM sees them.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func joinKeys() string {
	return strings.Join(config.ValidKeys(), ", ")
}
