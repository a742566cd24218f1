/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// PersistentPreRunE opens the search service lazily: only commands that
// search trigger extension init, so bootstrap commands (init, guide,
// config) work before a database exists.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/sift/internal/log"
	"github.com/jpl-au/sift/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Weighted relevance search over SQL tables",
	Long: `Ranks rows of a SQLite or PostgreSQL table by how well their columns match
free-form text. Columns carry weights; exact, prefix and substring matches
score in tiers, and rows below a relevance threshold are dropped.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		cmdName := topLevelCmdName(cmd)
		if err := newLogger(cmdName); err != nil {
			return err
		}
		cmd.SetContext(logger.ContextWithLogger(cmd.Context(), diag))

		if !standaloneCommands[cmdName] {
			if err := initExtensions(cmd.Context()); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "sift search users john", returns "search".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions, executes the command, and
// closes the search service before exit. Exit code 1 indicates error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	if wd, err := os.Getwd(); err == nil {
		log.SetProject(wd)
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	if extService != nil {
		if closeErr := extService.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", closeErr)
		}
	}
	_ = diag.Sync()

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
