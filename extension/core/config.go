// config.go implements the "sift config" command for configuration management.
//
// Config follows a cascade model similar to git: local config
// (.sift/config.yaml) takes precedence over global (~/.sift/config.yaml).
// --local forces the local file even if it doesn't exist yet, and --config
// targets an explicit file. Entities are edited in the YAML directly; only
// scalar keys are settable here.

package core

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  sift config                    # show config
  sift config search.limit       # show search.limit
  sift config search.limit 50    # set search.limit

Configuration locations:
  Global: ~/.sift/config.yaml
  Local:  .sift/config.yaml (created by init)

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.sift/config.yaml)")
	return c
}

func scopeName(s config.Scope) string {
	switch s {
	case config.ScopeLocal:
		return "local"
	case config.ScopeFile:
		return "file"
	default:
		return "global"
	}
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	var cfg *config.Config
	var err error
	switch {
	case cmd.ConfigFile() != "":
		cfg, err = config.LoadFile(cmd.ConfigFile())
	case forceLocal:
		cfg, err = config.LoadScope(config.ScopeLocal)
	default:
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}
	scope := scopeName(cfg.Scope())

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("core:config", "list").Author(cmd.Author()).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		for _, k := range slices.Sorted(maps.Keys(all)) {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}
		if n := len(cfg.Entities); n > 0 {
			fmt.Fprintf(cmd.Out(), "entities: %d (see 'sift entities')\n", n)
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Author(cmd.Author()).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		// the value is not logged: database.dsn may carry credentials
		log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Detail("scope", scope).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": args[1], "scope": scope})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], args[1], scope)
	}
	return nil
}
