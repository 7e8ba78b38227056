package cli

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tannerbroberts/abouttime/pkg/errors"
	"github.com/tannerbroberts/abouttime/pkg/template"
)

// newCommand creates the new command for authoring templates.
func (c *CLI) newCommand() *cobra.Command {
	var (
		intent   string
		duration int64
		lane     bool
		id       string
		segments []string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a template in the library",
		Long: `Create a template and save it to the library. Templates get a
generated UUID unless --id is given. Lanes may declare segments up
front with repeated --segment flags, each "templateId:offsetMs".

Segment references are not required to resolve: a lane may reference
templates that do not exist yet. Unresolvable segments simply occupy
no time until their target appears.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if err := errors.ValidateIntent(intent); err != nil {
				return err
			}
			if err := errors.ValidateDuration(duration); err != nil {
				return err
			}

			if id == "" {
				id = uuid.NewString()
			} else if err := errors.ValidateTemplateID(id); err != nil {
				return err
			}

			t := template.Template{
				ID:                id,
				Intent:            intent,
				EstimatedDuration: duration,
				Version:           "1",
				Type:              template.TypeAtomic,
			}
			if lane || len(segments) > 0 {
				t.Type = template.TypeLane
			}
			for _, raw := range segments {
				seg, err := parseSegment(raw)
				if err != nil {
					return err
				}
				t.Segments = append(t.Segments, seg)
			}
			if err := t.Validate(); err != nil {
				return err
			}

			err := c.editLibrary(cmd.Context(), func(lib template.Library) (template.Library, error) {
				if _, exists := template.NewStore(lib).Lookup(id); exists {
					return lib, errors.New(errors.ErrCodeInvalidTemplate, "template %q already exists", id)
				}
				lib.Templates = append(lib.Templates, t)
				return lib, nil
			})
			if err != nil {
				if errors.Is(err, errors.ErrCodeStorageQuota) {
					printWarning("Storage quota exceeded, template not saved")
				}
				return err
			}

			logger.Debug("template created", "id", id, "type", t.Type)
			printSuccess("Created %s template %q", t.Type, intent)
			printDetail("ID: %s", id)
			printNextStep("Inspect it", "abouttime show "+id)
			return nil
		},
	}

	cmd.Flags().StringVar(&intent, "intent", "", "what the template is for (required)")
	cmd.Flags().Int64Var(&duration, "duration", 0, "estimated duration in milliseconds")
	cmd.Flags().BoolVar(&lane, "lane", false, "create a composable lane instead of an atomic template")
	cmd.Flags().StringVar(&id, "id", "", "explicit template id (default: generated UUID)")
	cmd.Flags().StringArrayVar(&segments, "segment", nil, "segment as templateId:offsetMs (repeatable, implies --lane)")
	_ = cmd.MarkFlagRequired("intent")

	return cmd
}

// parseSegment parses a "templateId:offsetMs" flag value.
// The template id may itself contain colons; the offset is everything after
// the last one.
func parseSegment(raw string) (template.Segment, error) {
	i := strings.LastIndex(raw, ":")
	if i <= 0 || i == len(raw)-1 {
		return template.Segment{}, errors.New(errors.ErrCodeInvalidInput,
			"segment %q must be templateId:offsetMs", raw)
	}
	offset, err := strconv.ParseInt(raw[i+1:], 10, 64)
	if err != nil {
		return template.Segment{}, errors.New(errors.ErrCodeInvalidInput,
			"segment %q has a non-numeric offset", raw)
	}
	if err := errors.ValidateOffset(offset); err != nil {
		return template.Segment{}, err
	}
	return template.Segment{TemplateID: raw[:i], Offset: offset}, nil
}
