// Package search provides the ranked search commands.
// Registers commands: search, explain, compare, entities.
package search

import (
	"fmt"
	"strings"

	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/config"
	"github.com/jpl-au/sift/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
	log *zap.Logger
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	e.log = ctx.Logger()
	return nil
}

// Commands returns search, explain, compare and entities.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSearchCmd(),
		e.newExplainCmd(),
		e.newCompareCmd(),
		e.newEntitiesCmd(),
	}
}

// addSearchFlags registers the flags shared by every command that builds a
// search.
func addSearchFlags(c *cobra.Command) {
	c.Flags().Float64(extension.FlagThreshold, 0, "Minimum relevance, exclusive (default: mean column weight)")
	c.Flags().Bool(extension.FlagFullText, false, "Also reward columns starting with the whole text")
	c.Flags().Bool(extension.FlagFullTextOnly, false, "Score the whole text only, ignoring single words")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Rows per page (default: search.limit)")
	c.Flags().Int(extension.FlagOffset, 0, "Rows to skip")
	c.Flags().StringP(extension.FlagWhere, "w", "", "Extra row filter with ? placeholders")
	c.Flags().StringArray(extension.FlagArg, nil, "Argument for --where (repeatable)")
	c.Flags().StringArray(extension.FlagOrder, nil, "Tie-break after relevance, e.g. \"users.id DESC\" (repeatable)")
}

// searchText joins the arguments after the entity name.
func searchText(args []string) string {
	return strings.Join(args[1:], " ")
}

// searchOptions reads the shared search flags.
func searchOptions(c *cobra.Command, text string) (service.SearchOptions, error) {
	opts := service.SearchOptions{Text: text}
	f := c.Flags()

	if f.Changed(extension.FlagThreshold) {
		t, _ := f.GetFloat64(extension.FlagThreshold)
		opts.Threshold = &t
	}
	opts.RequireFullText, _ = f.GetBool(extension.FlagFullText)
	opts.FullTextOnly, _ = f.GetBool(extension.FlagFullTextOnly)
	opts.Limit, _ = f.GetInt(extension.FlagLimit)
	opts.Offset, _ = f.GetInt(extension.FlagOffset)
	opts.Where, _ = f.GetString(extension.FlagWhere)
	opts.OrderBy, _ = f.GetStringArray(extension.FlagOrder)

	args, _ := f.GetStringArray(extension.FlagArg)
	if n := strings.Count(opts.Where, "?"); n != len(args) {
		return opts, fmt.Errorf("--where has %d placeholder(s) but %d --arg value(s)", n, len(args))
	}
	for _, a := range args {
		opts.Args = append(opts.Args, a)
	}
	return opts, nil
}
