package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tannerbroberts/abouttime/pkg/template"
)

// listCommand creates the list command showing every template in the library.
func (c *CLI) listCommand() *cobra.Command {
	var (
		lanesOnly   bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates in the library",
		Long: `List every template in the library with its type, duration, and
segment count. Use --lanes to restrict the listing to composable lanes,
or --interactive for a browsable picker.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := c.openStore(cmd.Context())
			if store.Len() == 0 {
				printInfo("Library is empty")
				printNextStep("Create a template", "abouttime new --intent \"Morning routine\"")
				return nil
			}

			if interactive {
				return c.runViewer(store, viewList, "")
			}

			templates := store.All()
			if lanesOnly {
				templates = store.Lanes()
			}
			printTemplateTable(templates)
			printDetail("%d templates · %d lanes", store.Len(), len(store.Lanes()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&lanesOnly, "lanes", false, "show only lane templates")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the list viewer")

	return cmd
}

// printTemplateTable renders templates as a bordered table.
func printTemplateTable(templates []template.Template) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{
			t.ID,
			t.Intent,
			string(t.Type),
			formatDuration(t.EstimatedDuration),
			fmt.Sprintf("%d", len(t.Segments)),
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Intent", "Type", "Duration", "Segments").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleDim
			}
			if col == 1 {
				return StyleValue
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	fmt.Println(tbl.Render())
}
