// entities.go implements the "sift entities" command.

package search

import (
	"fmt"

	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/internal/format"
	"github.com/jpl-au/sift/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newEntitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List searchable entities",
		Long: `List configured entities with their normalised columns, weights, joins
and default threshold. Joins no column uses are marked [unused].`,
		Args: cobra.NoArgs,
		RunE: e.runEntities,
	}
}

func (e *Extension) runEntities(c *cobra.Command, _ []string) error {
	infos, err := e.svc.Entities(c.Context())

	log.Event("search:entities", "list").Author(cmd.Author()).Results(len(infos)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("entities: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(infos)
	}
	return format.Entities(cmd.Out(), infos)
}
