// Package core provides the core extension for sift.
// It registers commands: init, config, history, serve, guide, version.
package core

import (
	"github.com/jpl-au/sift/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance.
var (
	_ extension.Extension  = (*Extension)(nil)
	_ extension.Standalone = (*Extension)(nil)
)

// Name returns "core" - this extension provides setup and server commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newHistoryCmd(),
		newServeCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// StandaloneCommands returns commands that manage their own service lifecycle.
// serve: the MCP server opens the database itself and survives failures.
// history: reads the audit log and needs no database.
// version: displays build info only.
func (e *Extension) StandaloneCommands() []string {
	return []string{"history", "serve", "version"}
}
