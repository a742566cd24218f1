/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Extensions read flag values through the exported accessors rather than
// touching the variables, so they stay decoupled from cobra internals.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var validOutputFormats = []string{"json"}

var (
	output     string
	author     string
	configFile string
	driver     string
	dsn        string
	verbose    bool
	logFormat  string
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// diag is the diagnostic logger, built in PersistentPreRunE.
var diag = zap.NewNop()

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Logger returns the diagnostic logger.
func Logger() *zap.Logger { return diag }

// Verbose reports whether --verbose was given.
func Verbose() bool { return verbose }

// Author returns the name recorded in the audit log.
// Priority: --author flag > SIFT_AUTHOR env var > "cli".
func Author() string {
	if author != "" {
		return author
	}
	if a := os.Getenv("SIFT_AUTHOR"); a != "" {
		return a
	}
	return "cli"
}

// ConfigFile returns the explicit config file if set.
// Priority: --config flag > SIFT_CONFIG env var > empty (use discovery).
func ConfigFile() string {
	if configFile != "" {
		return configFile
	}
	return os.Getenv("SIFT_CONFIG")
}

// LoadConfig reads the configuration from --config or the local/global
// scope, then applies --driver and --dsn.
func LoadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := ConfigFile(); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if driver != "" {
		cfg.Database.Driver = driver
	}
	if dsn != "" {
		cfg.Database.DSN = dsn
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if the error was printed (suppressing Cobra's copy), or the
// original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// logLevel picks the diagnostic level: debug with --verbose, info for the
// long-running server, warnings only otherwise.
func logLevel(cmdName string) string {
	switch {
	case verbose:
		return "debug"
	case cmdName == "serve":
		return "info"
	default:
		return "warn"
	}
}

func newLogger(cmdName string) error {
	l, err := logger.New(logFormat, logLevel(cmdName))
	if err != nil {
		return err
	}
	diag = l
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&author, "author", "a", "", "Name recorded in the audit log")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (skip local/global discovery)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Database driver: sqlite or postgres (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database DSN (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log rendered SQL to stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logger.FormatConsole, "Diagnostic log format: console or json")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"sqlite", "postgres"}, cobra.ShellCompDirectiveNoFileComp
	})
}
