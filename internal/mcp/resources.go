// resources.go implements MCP resource handlers for entity definitions.
//
// Resource URIs follow the pattern sift://entities/{name}. The content is
// the normalised definition, the same JSON sift_entities returns per entity.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/sift/internal/catalog"
	"github.com/jpl-au/sift/internal/log"
	"github.com/jpl-au/sift/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyName indicates a missing entity name in a resource URI.
	ErrEmptyName = errors.New("empty entity name")
)

// readEntity handles sift://entities/{name} resource requests.
func (h *handlers) readEntity(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) { //nolint:revive // ctx for future use
	uri := req.Params.URI
	name, err := parseEntityURI(uri)
	if err != nil {
		return nil, err
	}

	cfg, err := catalog.New(h.cfg.Entities).Config(name)

	log.Event("mcp:resource", "read").Author("mcp").Entity(name).Write(err)

	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(service.Describe(name, cfg), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseEntityURI extracts the entity name from sift://entities/{name}.
func parseEntityURI(uri string) (string, error) {
	const prefix = "sift://entities/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	name := strings.TrimPrefix(uri, prefix)
	if name == "" {
		return "", ErrEmptyName
	}
	if strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return name, nil
}
