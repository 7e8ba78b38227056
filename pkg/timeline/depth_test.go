package timeline

import (
	"fmt"
	"testing"

	"github.com/tannerbroberts/abouttime/pkg/template"
)

func storeOf(templates ...template.Template) *template.Store {
	return template.NewStore(template.Library{Version: "1", Templates: templates})
}

func atomic(id string, d int64) template.Template {
	return template.Template{ID: id, Intent: id, EstimatedDuration: d, Version: "1", Type: template.TypeAtomic}
}

func lane(id string, d int64, segs ...template.Segment) template.Template {
	return template.Template{ID: id, Intent: id, EstimatedDuration: d, Version: "1", Type: template.TypeLane, Segments: segs}
}

func TestNestedDepth(t *testing.T) {
	tests := []struct {
		name  string
		store *template.Store
		id    string
		want  int
	}{
		{
			name:  "UnknownID",
			store: storeOf(),
			id:    "nope",
			want:  0,
		},
		{
			name:  "AtomicTemplate",
			store: storeOf(atomic("a", 1000)),
			id:    "a",
			want:  0,
		},
		{
			name:  "LaneWithoutSegments",
			store: storeOf(lane("l", 1000)),
			id:    "l",
			want:  0,
		},
		{
			name: "LaneOfAtomics",
			store: storeOf(
				atomic("a", 100),
				lane("l", 1000, template.Segment{TemplateID: "a", Offset: 0}),
			),
			id:   "l",
			want: 1,
		},
		{
			name: "LaneOfLanes",
			store: storeOf(
				atomic("a", 100),
				lane("inner", 500, template.Segment{TemplateID: "a", Offset: 0}),
				lane("outer", 1000, template.Segment{TemplateID: "inner", Offset: 0}),
			),
			id:   "outer",
			want: 2,
		},
		{
			name: "MaxOverBranches",
			store: storeOf(
				atomic("a", 100),
				lane("deep", 500, template.Segment{TemplateID: "mid", Offset: 0}),
				lane("mid", 400, template.Segment{TemplateID: "a", Offset: 0}),
				lane("root", 1000,
					template.Segment{TemplateID: "a", Offset: 0},
					template.Segment{TemplateID: "deep", Offset: 100},
				),
			),
			id:   "root",
			want: 3,
		},
		{
			// Children are not filtered before depth computation: a lane
			// whose only child dangles still has depth 1, not 0.
			name:  "DanglingChildrenStillCountAsLevel",
			store: storeOf(lane("l", 1000, template.Segment{TemplateID: "missing", Offset: 0})),
			id:    "l",
			want:  1,
		},
		{
			name: "SelfCycle",
			store: storeOf(
				lane("A", 1000, template.Segment{TemplateID: "A", Offset: 0}),
			),
			id:   "A",
			want: 1,
		},
		{
			name: "MutualCycle",
			store: storeOf(
				lane("A", 1000, template.Segment{TemplateID: "B", Offset: 0}),
				lane("B", 1000, template.Segment{TemplateID: "A", Offset: 0}),
			),
			id:   "A",
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NestedDepth(tt.id, tt.store); got != tt.want {
				t.Errorf("NestedDepth(%q) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

// Cycle termination must be deterministic and bounded by store size, not by
// graph shape. A long cycle chain terminates at a depth no greater than the
// number of distinct templates.
func TestNestedDepth_CycleChainBounded(t *testing.T) {
	const n = 200
	templates := make([]template.Template, 0, n)
	for i := 0; i < n; i++ {
		next := fmt.Sprintf("t%d", (i+1)%n) // last one closes the cycle
		templates = append(templates, lane(fmt.Sprintf("t%d", i), 1000,
			template.Segment{TemplateID: next, Offset: 0}))
	}
	store := storeOf(templates...)

	got := NestedDepth("t0", store)
	if got != n {
		t.Errorf("NestedDepth() = %d, want %d", got, n)
	}

	// Deterministic across calls: the visited set is per-call, so repeated
	// invocations are independent.
	if again := NestedDepth("t0", store); again != got {
		t.Errorf("second call = %d, first = %d; calls must be independent", again, got)
	}
}
