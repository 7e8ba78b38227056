package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tannerbroberts/abouttime/pkg/errors"
	"github.com/tannerbroberts/abouttime/pkg/timeline"
)

// gapsCommand creates the gaps command reporting a lane's empty regions.
func (c *CLI) gapsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaps <lane-id>",
		Short: "Report the empty regions of a lane",
		Long: `Compute the empty regions of a lane: the sub-intervals of its
duration not occupied by any resolvable segment. Segments referencing
unknown templates contribute no occupancy. A lane with no resolvable
segments is one single gap spanning its whole duration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			store := c.openStore(cmd.Context())

			t, ok := store.Lookup(id)
			if !ok {
				return errors.New(errors.ErrCodeTemplateNotFound, "template %q not found", id)
			}
			if !t.IsLane() {
				return errors.New(errors.ErrCodeInvalidInput,
					"template %q is atomic, gaps exist only for lanes", id)
			}

			gaps := timeline.EmptyRegions(t.Segments, t.EstimatedDuration, store.Duration)
			if len(gaps) == 0 {
				printSuccess("%s is fully occupied", t.Intent)
				return nil
			}

			var total int64
			for _, g := range gaps {
				total += g.Duration()
			}

			printInfo("%s has %d empty region(s), %s total", t.Intent, len(gaps), formatDuration(total))
			for _, g := range gaps {
				start := timeline.Position(g.Start, t.EstimatedDuration)
				width := timeline.Width(g.Duration(), t.EstimatedDuration)
				bar := renderSpan(start, width, '░')
				fmt.Printf("  %s %s\n", styleGap.Render(bar),
					StyleDim.Render(fmt.Sprintf("[%s, %s) · %s",
						formatDuration(g.Start), formatDuration(g.End), formatPercent(width))))
			}
			return nil
		},
	}

	return cmd
}

// depthCommand creates the depth command reporting nesting depth.
func (c *CLI) depthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "depth <template-id>",
		Short: "Report how deeply a template nests",
		Long: `Compute the nesting depth of a template: 0 for atomics and empty
lanes, 1 plus the deepest child for lanes with segments. Reference
cycles terminate instead of recursing forever, with the revisited
branch contributing depth 0.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			store := c.openStore(cmd.Context())

			if _, ok := store.Lookup(id); !ok {
				return errors.New(errors.ErrCodeTemplateNotFound, "template %q not found", id)
			}

			fmt.Println(timeline.NestedDepth(id, store))
			return nil
		},
	}
}
