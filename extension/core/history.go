// history.go implements the "sift history" command, which reads the audit
// log written by every search, explain and compare.

package core

import (
	"fmt"

	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/extension"
	"github.com/jpl-au/sift/internal/duration"
	"github.com/jpl-au/sift/internal/format"
	"github.com/jpl-au/sift/internal/log"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches from the audit log",
		Long: `Show recent operations from the audit log, newest first.

  sift history                    # last 20 in this project
  sift history --since 7d         # the past week
  sift history --entity users     # searches of one entity
  sift history --action compare   # one kind of operation
  sift history --all              # every project

Windows: 12h, 7d, 2w, 3m (months are 30 days).`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}
	c.Flags().String(extension.FlagSince, "", "Only entries within this window (e.g. 7d)")
	c.Flags().String(extension.FlagEntity, "", "Only entries for this entity")
	c.Flags().String(extension.FlagAction, "", "Only this action (search, explain, compare, ...)")
	c.Flags().Bool(extension.FlagAll, false, "Include every project")
	c.Flags().Int(extension.FlagLimit, 20, "Maximum entries (0 for all)")
	return c
}

func runHistory(c *cobra.Command, _ []string) error {
	since, _ := c.Flags().GetString(extension.FlagSince)
	window, err := duration.Parse(since)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("--since: %w", err))
	}
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	if limit < 0 {
		return cmd.PrintJSONError(fmt.Errorf("--limit must not be negative, got %d", limit))
	}

	f := log.Filter{Since: window, Limit: limit}
	f.Entity, _ = c.Flags().GetString(extension.FlagEntity)
	f.Action, _ = c.Flags().GetString(extension.FlagAction)
	f.AllProjects, _ = c.Flags().GetBool(extension.FlagAll)

	entries, err := log.Recent(c.Context(), f)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("history: %w", err))
	}

	if cmd.JSON() {
		if entries == nil {
			entries = []log.Entry{}
		}
		return cmd.PrintJSON(entries)
	}
	return format.History(cmd.Out(), entries)
}
