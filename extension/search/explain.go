// explain.go implements the "sift explain" command.
//
// Explain builds a search without running it and prints the scoring terms,
// threshold and SQL. With --row it also scores a hypothetical row in memory.

package search

import (
	"fmt"
	"strings"

	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/format"
	"github.com/jpl-au/sift/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newExplainCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "explain <entity> [text...]",
		Short: "Show how a search is scored",
		Long: `Show the tokens, scoring terms, threshold and SQL of a search without
running it.

  sift explain users john
  sift explain users "john doe" --full-text --row first_name="John Doe"
  sift explain users john --sql    # the SQL only`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runExplain,
	}
	addSearchFlags(c)
	c.Flags().StringArray(extension.FlagRow, nil, "column=value of a row to score (repeatable)")
	c.Flags().Bool(extension.FlagSQL, false, "Print the SQL only")
	return c
}

// parseRow turns col=value pairs into a row. Nil when no pairs are given.
func parseRow(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	row := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--row %q: expected column=value", p)
		}
		row[k] = v
	}
	return row, nil
}

func (e *Extension) runExplain(c *cobra.Command, args []string) error {
	entity, text := args[0], searchText(args)
	opts, err := searchOptions(c, text)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	pairs, _ := c.Flags().GetStringArray(extension.FlagRow)
	row, err := parseRow(pairs)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	ex, err := e.svc.Explain(c.Context(), entity, opts, row)

	log.Event("search:explain", "explain").Author(cmd.Author()).Entity(entity).Query(text).Detail("row", row != nil).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("explain %s %q: %w", entity, text, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(ex)
	}
	if sqlOnly, _ := c.Flags().GetBool(extension.FlagSQL); sqlOnly {
		fmt.Fprintln(cmd.Out(), ex.SQL)
		return nil
	}
	cmd.PrintMarkdown(format.Explain(ex))
	return nil
}
