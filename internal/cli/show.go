package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tannerbroberts/abouttime/pkg/errors"
	"github.com/tannerbroberts/abouttime/pkg/timeline"
)

// showCommand creates the show command displaying one template's timeline.
func (c *CLI) showCommand() *cobra.Command {
	var (
		interactive bool
		view        string
	)

	cmd := &cobra.Command{
		Use:   "show <template-id>",
		Short: "Show a template and its computed timeline",
		Long: `Show one template in detail. For lanes this includes the full
computed timeline: each segment's proportional position and width, the
empty regions between them, and the nesting depth. Dangling segment
references are listed and flagged rather than hidden.

With --interactive, opens one of the three viewer surfaces instead:
lane (proportional bars), panel (one panel per segment), or list
(composition tree indented by depth).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			store := c.openStore(cmd.Context())

			t, ok := store.Lookup(id)
			if !ok {
				return errors.New(errors.ErrCodeTemplateNotFound, "template %q not found", id)
			}

			if interactive && t.IsLane() {
				style, err := viewStyleFromName(view)
				if err != nil {
					return err
				}
				return c.runViewer(store, style, id)
			}

			printKeyValue("ID", t.ID)
			printKeyValue("Intent", t.Intent)
			printKeyValue("Type", string(t.Type))
			printKeyValue("Duration", formatDuration(t.EstimatedDuration))
			printKeyValue("Version", t.Version)

			if !t.IsLane() {
				return nil
			}

			layout, _ := timeline.Layout(id, store)
			printKeyValue("Depth", fmt.Sprintf("%d", layout.Depth))
			printNewline()
			printTimeline(layout)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the lane in a viewer")
	cmd.Flags().StringVar(&view, "view", "lane", "viewer surface: lane, panel, or list")

	return cmd
}

// printTimeline renders a lane layout as stacked bars plus a segment table.
func printTimeline(layout timeline.LaneLayout) {
	fmt.Println(StyleTitle.Render(layout.Intent) +
		StyleDim.Render("  "+formatDuration(layout.Duration)))

	for _, seg := range layout.Segments {
		style := styleSegment
		label := seg.Intent
		if !seg.Known {
			style = styleDangling
			label = seg.TemplateID + " (missing)"
		}
		bar := renderSpan(seg.Position, seg.Width, '█')
		fmt.Printf("  %s %s\n", style.Render(bar), StyleValue.Render(label))
		printDetail("  at %s · %s wide", formatPercent(seg.Position), formatPercent(seg.Width))
	}

	if len(layout.Gaps) > 0 {
		printNewline()
		fmt.Println("  " + StyleDim.Render("empty regions"))
		for _, gap := range layout.Gaps {
			start := timeline.Position(gap.Start, layout.Duration)
			width := timeline.Width(gap.Duration(), layout.Duration)
			bar := renderSpan(start, width, '░')
			fmt.Printf("  %s %s\n", styleGap.Render(bar),
				StyleDim.Render(fmt.Sprintf("[%s, %s)", formatDuration(gap.Start), formatDuration(gap.End))))
		}
	}
}
