// serve.go implements the "sift serve" command for MCP server operation.
//
// Serve is a standalone command: it opens the database itself and keeps
// running when the database is unavailable, reporting the failure through
// the tools instead.

package core

import (
	"fmt"

	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Logs go to stderr; use --verbose to include the SQL of every search.
  sift serve --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return mcp.Serve(c.Context(), cfg, cmd.Logger())
}
