package timeline

import (
	"github.com/tannerbroberts/abouttime/pkg/template"
)

// SegmentBox is the computed placement of one segment on a proportional
// timeline: the resolved interval plus normalized position and width
// percentages. Dangling segments resolve with Known == false and carry
// zero width so viewers can flag them instead of dropping them.
type SegmentBox struct {
	TemplateID string  `json:"templateId" bson:"templateId"`
	Intent     string  `json:"intent,omitempty" bson:"intent,omitempty"`
	Offset     int64   `json:"offset" bson:"offset"`
	Duration   int64   `json:"duration" bson:"duration"`
	Position   float64 `json:"position" bson:"position"` // percent, unclamped
	Width      float64 `json:"width" bson:"width"`       // percent, unclamped
	Known      bool    `json:"known" bson:"known"`       // false for dangling references
}

// LaneLayout is the full computed layout of one lane: per-segment boxes in
// storage order, the gap set, and the nesting depth. It is the unit the
// CLI viewers render and the HTTP API serializes.
type LaneLayout struct {
	LaneID   string       `json:"laneId" bson:"laneId"`
	Intent   string       `json:"intent" bson:"intent"`
	Duration int64        `json:"duration" bson:"duration"`
	Segments []SegmentBox `json:"segments" bson:"segments"`
	Gaps     []Region     `json:"gaps" bson:"gaps"`
	Depth    int          `json:"depth" bson:"depth"`
}

// Layout computes the complete layout of the lane with the given id.
// The second result is false if the id is unknown or not a lane; the engine
// has nothing to lay out in that case.
//
// The store is read exactly as provided: callers owning the store must hand
// in a stable reference for the duration of this one pass.
func Layout(laneID string, store *template.Store) (LaneLayout, bool) {
	lane, ok := store.Lookup(laneID)
	if !ok || !lane.IsLane() {
		return LaneLayout{}, false
	}

	out := LaneLayout{
		LaneID:   lane.ID,
		Intent:   lane.Intent,
		Duration: lane.EstimatedDuration,
		Segments: make([]SegmentBox, 0, len(lane.Segments)),
		Gaps:     EmptyRegions(lane.Segments, lane.EstimatedDuration, store.Duration),
		Depth:    NestedDepth(lane.ID, store),
	}

	for _, seg := range lane.Segments {
		box := SegmentBox{
			TemplateID: seg.TemplateID,
			Offset:     seg.Offset,
			Position:   Position(seg.Offset, lane.EstimatedDuration),
		}
		if child, found := store.Lookup(seg.TemplateID); found {
			box.Intent = child.Intent
			box.Duration = child.EstimatedDuration
			box.Width = Width(child.EstimatedDuration, lane.EstimatedDuration)
			box.Known = true
		}
		out.Segments = append(out.Segments, box)
	}

	return out, true
}
