package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tannerbroberts/abouttime/pkg/export"
)

// Supported export formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// exportCommand creates the export command rendering the reference graph.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		formats  string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the template reference graph",
		Long: `Render the library's template reference graph. Lanes point at the
templates their segments reference; cycles and dangling references are
drawn, not hidden. Output formats: dot, svg, png (comma-separated).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			store := c.openStore(cmd.Context())
			if store.Len() == 0 {
				printInfo("Library is empty, nothing to export")
				return nil
			}

			dot := export.ToDOT(store, export.Options{Detailed: detailed})

			base := output
			if base == "" {
				base = "templates"
			}
			base = strings.TrimSuffix(base, filepath.Ext(base))

			prog := newProgress(logger)
			for _, format := range parseFormats(formats) {
				path := base + "." + format
				var data []byte
				var err error
				switch format {
				case formatDOT:
					data = []byte(dot)
				case formatSVG:
					data, err = export.RenderSVG(dot)
				case formatPNG:
					data, err = export.RenderPNG(dot)
				default:
					return fmt.Errorf("unsupported format %q (want dot, svg, or png)", format)
				}
				if err != nil {
					return fmt.Errorf("render %s: %w", format, err)
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}
			prog.done(fmt.Sprintf("Exported %d templates", store.Len()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base name (default: templates)")
	cmd.Flags().StringVarP(&formats, "format", "f", formatSVG, "output formats, comma-separated: dot, svg, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include durations and offsets in labels")

	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(strings.ToLower(p))
	}
	return parts
}
