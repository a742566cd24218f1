// init.go implements the "sift init" command.
//
// Init writes a starter .sift/config.yaml in the current directory. With
// --demo it also creates a small SQLite database of users and posts and a
// config whose entities search it, so "sift search users john" works
// straight away.

package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/log"
	"github.com/jpl-au/sift/internal/store"
	"github.com/spf13/cobra"
)

// starterConfig is written when init runs without --demo.
const starterConfig = `# sift configuration. See 'sift guide config'.
database:
  driver: sqlite
  dsn: .sift/sift.db
search:
  limit: 20
  max_limit: 1000
# entities:
#   users:
#     table: users
#     key: id
#     columns:
#       first_name: 10
#       last_name: 10
#       bio: 2
`

// demoDB is the demo database path, relative to the project directory.
var demoDB = filepath.Join(config.Dir, "demo.db")

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Create a starter .sift/config.yaml",
		Long: `Creates .sift/config.yaml in the current directory.

  sift init           # starter config with a commented example entity
  sift init --demo    # demo SQLite database plus a config that searches it

An existing config is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().Bool(extension.FlagDemo, false, "Create a demo database of users and posts")
	c.Flags().Bool(extension.FlagForce, false, "Overwrite an existing config")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	demo, _ := c.Flags().GetBool(extension.FlagDemo)
	force, _ := c.Flags().GetBool(extension.FlagForce)

	path := config.LocalPath()
	err := writeConfig(c, path, demo, force)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("demo", demo).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	if cmd.JSON() {
		res := map[string]any{"config": path}
		if demo {
			res["database"] = demoDB
		}
		return cmd.PrintJSON(res)
	}
	fmt.Fprintf(cmd.Out(), "Wrote %s\n", path)
	if demo {
		fmt.Fprintf(cmd.Out(), "Demo database %s\n\nTry: sift search users john\n", demoDB)
	}
	return nil
}

func writeConfig(c *cobra.Command, path string, demo, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if !demo {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		return os.WriteFile(path, []byte(starterConfig), 0644)
	}

	created, err := store.CreateDemo(c.Context(), demoDB)
	if err != nil {
		return fmt.Errorf("demo database: %w", err)
	}
	if !created {
		cmd.Logger().Info("demo database exists, keeping it")
	}
	return config.Demo(demoDB).SaveScope(config.ScopeLocal)
}
