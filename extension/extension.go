// Package extension provides the plugin architecture for sift. Extensions
// group related CLI commands and register at init time, so new command
// groups can be added without touching the root command.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for sift extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions receive the shared Context once the search
// service is open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Standalone is an optional interface for extensions with commands that
// don't need a database connection. Commands returned by
// StandaloneCommands() do not trigger service initialisation in
// PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before a database exists
// 2. Commands that manage their own service lifecycle (serve)
// 3. Utility commands (guide, version)
type Standalone interface {
	StandaloneCommands() []string
}
