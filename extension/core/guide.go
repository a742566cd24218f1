// guide.go implements the "sift guide" command for documentation access.
//
// Guides are embedded in the binary. Terminal output is rendered with
// glamour; pipes get raw markdown.

package core

import (
	"github.com/jpl-au/sift/cmd"
	"github.com/jpl-au/sift/guide"
	"github.com/jpl-au/sift/internal/log"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the sift usage guide",
		Long: `Outputs the sift guide for LLMs and humans.

  sift guide            # main guide
  sift guide scoring    # how relevance is computed
  sift guide config     # entities, weights and joins`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			log.Event("core:guide", "read").Author(cmd.Author()).Detail("topic", name).Write(err)
			if err != nil {
				return cmd.PrintJSONError(err)
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
			}
			cmd.PrintMarkdown(content)
			return nil
		},
	}
}
