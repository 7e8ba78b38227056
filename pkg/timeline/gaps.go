package timeline

import (
	"sort"

	"github.com/tannerbroberts/abouttime/pkg/template"
)

// Region is a half-open time interval [Start, End) in milliseconds,
// measured from the parent lane's own start.
type Region struct {
	Start int64 `json:"start" bson:"start"`
	End   int64 `json:"end" bson:"end"`
}

// Duration returns the length of the region in milliseconds.
func (r Region) Duration() int64 { return r.End - r.Start }

// DurationLookup resolves a template id to its estimated duration.
// The second result is false for ids absent from the store; segments
// referencing such ids are treated as dangling and skipped, never fatal.
type DurationLookup func(templateID string) (int64, bool)

// EmptyRegions computes the complementary set of empty regions: the time
// spans within [0, parentDuration) not covered by any segment.
//
// Each segment occupies [offset, offset+duration) where duration comes from
// the lookup; segments whose referenced template is missing are skipped and
// the layout proceeds over the remaining valid segments. Occupied intervals
// are sorted by start only, so segments with equal starts keep their
// original relative order.
//
// Only immediately-consecutive sorted pairs are compared when suppressing
// gaps, so three or more mutually overlapping segments can under-report
// coverage. That adjacency-only behavior is part of the contract and must
// not be changed without changing the pinning tests.
//
// The returned regions are non-overlapping, sorted by start, and together
// with the occupied intervals exactly tile [0, parentDuration).
func EmptyRegions(segments []template.Segment, parentDuration int64, lookup DurationLookup) []Region {
	occupied := make([]Region, 0, len(segments))
	for _, seg := range segments {
		d, ok := lookup(seg.TemplateID)
		if !ok {
			continue // dangling reference
		}
		occupied = append(occupied, Region{Start: seg.Offset, End: seg.Offset + d})
	}

	// No resolvable segments: the whole parent span is one gap. This covers
	// both the empty-segments case and the all-dangling case.
	if len(occupied) == 0 {
		return []Region{{Start: 0, End: parentDuration}}
	}

	sort.SliceStable(occupied, func(i, j int) bool {
		return occupied[i].Start < occupied[j].Start
	})

	var gaps []Region

	if first := occupied[0].Start; first > 0 {
		gaps = append(gaps, Region{Start: 0, End: first})
	}

	for i := 1; i < len(occupied); i++ {
		prevEnd := occupied[i-1].End
		nextStart := occupied[i].Start
		if nextStart > prevEnd {
			gaps = append(gaps, Region{Start: prevEnd, End: nextStart})
		}
	}

	if last := occupied[len(occupied)-1].End; last < parentDuration {
		gaps = append(gaps, Region{Start: last, End: parentDuration})
	}

	return gaps
}

// OccupiedRegions resolves segments to their occupied intervals, sorted by
// start, skipping dangling references. It applies the same resolution and
// ordering rules as EmptyRegions and is exported for viewers that render
// the occupied side of the timeline.
func OccupiedRegions(segments []template.Segment, lookup DurationLookup) []Region {
	occupied := make([]Region, 0, len(segments))
	for _, seg := range segments {
		d, ok := lookup(seg.TemplateID)
		if !ok {
			continue
		}
		occupied = append(occupied, Region{Start: seg.Offset, End: seg.Offset + d})
	}
	sort.SliceStable(occupied, func(i, j int) bool {
		return occupied[i].Start < occupied[j].Start
	})
	return occupied
}
