package timeline

import (
	"math"
	"testing"

	"github.com/tannerbroberts/abouttime/pkg/template"
)

func TestLayout(t *testing.T) {
	store := storeOf(
		atomic("brew", 180000),
		atomic("steep", 240000),
		lane("coffee", 600000,
			template.Segment{TemplateID: "brew", Offset: 0},
			template.Segment{TemplateID: "steep", Offset: 300000},
			template.Segment{TemplateID: "ghost", Offset: 540000},
		),
	)

	layout, ok := Layout("coffee", store)
	if !ok {
		t.Fatal("Layout() ok = false, want true")
	}

	if layout.LaneID != "coffee" || layout.Duration != 600000 {
		t.Errorf("lane = %s/%d, want coffee/600000", layout.LaneID, layout.Duration)
	}
	if len(layout.Segments) != 3 {
		t.Fatalf("segments = %d, want 3 (dangling segments stay visible)", len(layout.Segments))
	}

	brew := layout.Segments[0]
	if !brew.Known || brew.Position != 0 || math.Abs(brew.Width-30) > 1e-9 {
		t.Errorf("brew box = %+v, want known, pos 0, width 30", brew)
	}

	steep := layout.Segments[1]
	if math.Abs(steep.Position-50) > 1e-9 || math.Abs(steep.Width-40) > 1e-9 {
		t.Errorf("steep box = %+v, want pos 50, width 40", steep)
	}

	ghost := layout.Segments[2]
	if ghost.Known || ghost.Width != 0 {
		t.Errorf("ghost box = %+v, want unknown with zero width", ghost)
	}
	if math.Abs(ghost.Position-90) > 1e-9 {
		t.Errorf("ghost position = %v, want 90 (position needs no duration)", ghost.Position)
	}

	// Gaps from the resolvable segments: brew [0,180000], steep [300000,540000].
	wantGaps := []Region{{Start: 180000, End: 300000}, {Start: 540000, End: 600000}}
	if len(layout.Gaps) != len(wantGaps) {
		t.Fatalf("gaps = %v, want %v", layout.Gaps, wantGaps)
	}
	for i := range wantGaps {
		if layout.Gaps[i] != wantGaps[i] {
			t.Errorf("gap %d = %v, want %v", i, layout.Gaps[i], wantGaps[i])
		}
	}

	if layout.Depth != 1 {
		t.Errorf("depth = %d, want 1", layout.Depth)
	}
}

func TestLayout_NotALane(t *testing.T) {
	store := storeOf(atomic("a", 100))

	if _, ok := Layout("a", store); ok {
		t.Error("Layout() over an atomic template: ok = true, want false")
	}
	if _, ok := Layout("missing", store); ok {
		t.Error("Layout() over an unknown id: ok = true, want false")
	}
}

func TestLayout_ZeroDurationLane(t *testing.T) {
	store := storeOf(
		atomic("a", 100),
		lane("degenerate", 0, template.Segment{TemplateID: "a", Offset: 0}),
	)

	layout, ok := Layout("degenerate", store)
	if !ok {
		t.Fatal("Layout() ok = false, want true")
	}
	if layout.Segments[0].Position != 0 || layout.Segments[0].Width != 0 {
		t.Errorf("degenerate geometry = %+v, want zeroed", layout.Segments[0])
	}
}
