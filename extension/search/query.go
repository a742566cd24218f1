// query.go implements the "sift search" command.

package search

import (
	"fmt"

	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/format"
	"github.com/jpl-au/sift/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <entity> [text...]",
		Short: "Ranked relevance search over an entity",
		Long: `Ranked relevance search over an entity.

Rows are scored by how well their weighted columns match the text and
returned best first. Only rows scoring above the threshold are shown.

  sift search users john
  sift search users "john smith" --full-text
  sift search users golang --where "active = ?" --arg 1 --limit 5

See 'sift guide scoring' for how relevance is computed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runSearch,
	}
	addSearchFlags(c)
	c.Flags().StringSlice(extension.FlagColumns, nil, "Columns to show (default: all)")
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	entity, text := args[0], searchText(args)
	opts, err := searchOptions(c, text)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	res, err := e.svc.Search(c.Context(), entity, opts)

	ev := log.Event("search:search", "search").Author(cmd.Author()).Entity(entity).Query(text)
	if res != nil {
		ev.Results(len(res.Rows)).Detail("total", res.Total)
	}
	ev.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %s %q: %w", entity, text, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	columns, _ := c.Flags().GetStringSlice(extension.FlagColumns)
	return format.Results(cmd.Out(), res, columns)
}
