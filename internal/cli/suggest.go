package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tannerbroberts/abouttime/pkg/selection"
)

// suggestCommand creates the suggest command matching lanes by intent.
func (c *CLI) suggestCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "suggest [query]",
		Short: "Suggest lanes matching a query",
		Long: `Filter lane templates by case-insensitive substring match on
intent. An empty or omitted query returns every lane. Match order
follows library order, so suggestions are stable across runs.

With --interactive, opens a type-to-filter picker instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			store := c.openStore(cmd.Context())
			lanes := store.Lanes()

			if interactive {
				return c.runPicker(store)
			}

			matches := selection.Suggest(query, lanes)
			if len(matches) == 0 {
				printInfo("No lanes match %q", query)
				return nil
			}

			for _, lane := range matches {
				fmt.Printf("%s %s %s\n",
					StyleValue.Render(lane.Intent),
					StyleDim.Render(iconArrow),
					StyleDim.Render(lane.ID+" · "+formatDuration(lane.EstimatedDuration)))
			}
			if strings.TrimSpace(query) != "" {
				printDetail("%d of %d lanes match", len(matches), len(lanes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the type-to-filter picker")

	return cmd
}
