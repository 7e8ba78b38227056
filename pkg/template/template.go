package template

import (
	"github.com/tannerbroberts/abouttime/pkg/errors"
)

// Template type discriminators.
const (
	TypeAtomic = "atomic"
	TypeLane   = "lane"
)

// Segment is one timed reference from a lane to another template.
// TemplateID is a reference into the store, not ownership: the referenced
// template may be absent (a dangling reference), and multiple segments may
// reference the same id. Offset is measured from the lane's own start.
type Segment struct {
	TemplateID string `json:"templateId" bson:"templateId"`
	Offset     int64  `json:"offset" bson:"offset"` // milliseconds
}

// Template is a reusable definition of a unit of timed work.
// Atomic templates have no segments; lane templates compose other templates
// as segments. Segments are not required to be sorted by offset in storage,
// and may overlap or leave gaps. Both are valid lane shapes.
type Template struct {
	ID                string    `json:"id" bson:"id"`
	Intent            string    `json:"intent" bson:"intent"`
	EstimatedDuration int64     `json:"estimatedDuration" bson:"estimatedDuration"` // milliseconds
	Version           string    `json:"version" bson:"version"`
	Type              string    `json:"templateType" bson:"templateType"`
	Segments          []Segment `json:"segments,omitempty" bson:"segments,omitempty"`
}

// IsLane reports whether the template is a lane (composite) template.
func (t Template) IsLane() bool { return t.Type == TypeLane }

// IsAtomic reports whether the template is an atomic (leaf) template.
func (t Template) IsAtomic() bool { return t.Type == TypeAtomic }

// Validate checks the template's fields for structural correctness.
// It does not resolve segment references; dangling references are legal
// and handled by the layout engine, not rejected at ingestion.
func (t Template) Validate() error {
	if err := errors.ValidateTemplateID(t.ID); err != nil {
		return err
	}
	if err := errors.ValidateIntent(t.Intent); err != nil {
		return err
	}
	if err := errors.ValidateDuration(t.EstimatedDuration); err != nil {
		return err
	}
	if t.Type != TypeAtomic && t.Type != TypeLane {
		return errors.New(errors.ErrCodeInvalidTemplate, "unknown template type: %q", t.Type)
	}
	if t.IsAtomic() && len(t.Segments) > 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "atomic template %q cannot have segments", t.ID)
	}
	for _, s := range t.Segments {
		if err := errors.ValidateTemplateID(s.TemplateID); err != nil {
			return err
		}
		if err := errors.ValidateOffset(s.Offset); err != nil {
			return err
		}
	}
	return nil
}
