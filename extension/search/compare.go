// compare.go implements the "sift compare" command.
//
// Compare runs two searches over one entity and diffs their rankings: either
// two texts, or one text against an alternate entity definition read from
// another config file.

package search

import (
	"errors"
	"fmt"
	"os"

	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/catalog"
	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/format"
	"github.com/jpl-au/sift/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newCompareCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "compare <entity> [text...]",
		Short: "Diff the rankings of two searches",
		Long: `Diff the rankings of two searches over the same entity.

  sift compare users john --text-b johnny
  sift compare users john --config-b heavier-bio.yaml

Both searches share the flags given here; --text-b changes the text of the
second, --config-b its entity definition.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runCompare,
	}
	addSearchFlags(c)
	c.Flags().String(extension.FlagTextB, "", "Text of the second search")
	c.Flags().String(extension.FlagConfigB, "", "Config file with an alternate definition of the entity")
	return c
}

func (e *Extension) runCompare(c *cobra.Command, args []string) error {
	entity, text := args[0], searchText(args)
	a, err := searchOptions(c, text)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	f := c.Flags()
	b := a
	if f.Changed(extension.FlagTextB) {
		b.Text, _ = f.GetString(extension.FlagTextB)
	}

	var alt *catalog.Catalog
	if path, _ := f.GetString(extension.FlagConfigB); path != "" {
		cfgB, err := config.LoadFile(path)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("compare: %w", err))
		}
		alt = catalog.New(cfgB.Entities)
	}
	if alt == nil && !f.Changed(extension.FlagTextB) {
		return cmd.PrintJSONError(errors.New("compare needs --text-b or --config-b"))
	}

	cmp, err := e.svc.Compare(c.Context(), entity, a, b, alt)

	log.Event("search:compare", "compare").
		Author(cmd.Author()).
		Entity(entity).
		Query(text).
		Detail("text_b", b.Text).
		Detail("config_b", alt != nil).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("compare %s: %w", entity, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(cmp)
	}
	colour := cmd.Out() == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
	return format.Comparison(cmd.Out(), cmp, colour)
}
