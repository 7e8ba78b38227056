package export

import (
	"strings"
	"testing"

	"github.com/tannerbroberts/abouttime/pkg/template"
)

func testStore(t *testing.T) *template.Store {
	t.Helper()
	return template.NewStore(template.Library{Templates: []template.Template{
		{ID: "morning", Intent: "Morning routine", EstimatedDuration: 3_600_000, Type: template.TypeLane,
			Segments: []template.Segment{
				{TemplateID: "shower", Offset: 0},
				{TemplateID: "coffee", Offset: 900_000},
				{TemplateID: "ghost", Offset: 1_800_000},
			}},
		{ID: "shower", Intent: "Shower", EstimatedDuration: 600_000, Type: template.TypeAtomic},
		{ID: "coffee", Intent: "Coffee", EstimatedDuration: 300_000, Type: template.TypeAtomic},
	}})
}

func TestToDOT_Edges(t *testing.T) {
	dot := ToDOT(testStore(t), Options{})

	edges := []string{
		`"morning" -> "shower";`,
		`"morning" -> "coffee";`,
		`"morning" -> "ghost";`,
	}
	for _, e := range edges {
		if n := strings.Count(dot, e); n != 1 {
			t.Errorf("edge %s appears %d times, want 1", e, n)
		}
	}
}

func TestToDOT_NodeStyles(t *testing.T) {
	dot := ToDOT(testStore(t), Options{})

	if !strings.Contains(dot, `"morning" [label="Morning routine", style="rounded,filled", fillcolor=lightyellow];`) {
		t.Error("lane node missing rounded style")
	}
	if !strings.Contains(dot, `"shower" [label="Shower"];`) {
		t.Error("atomic node malformed")
	}
	if !strings.Contains(dot, `fillcolor=lightgrey`) {
		t.Error("dangling reference not rendered as placeholder")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testStore(t), Options{Detailed: true})

	if !strings.Contains(dot, `label="+900000ms"`) {
		t.Error("detailed mode should label edges with offsets")
	}
	if !strings.Contains(dot, "3600000ms") {
		t.Error("detailed mode should include durations in node labels")
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	store := template.NewStore(template.Library{Templates: []template.Template{
		{ID: "day", Intent: "Full day", EstimatedDuration: 1_000, Type: template.TypeLane,
			Segments: []template.Segment{
				{TemplateID: "zzz", Offset: 0},
				{TemplateID: "mmm", Offset: 100},
				{TemplateID: "aaa", Offset: 200},
			}},
	}})

	first := ToDOT(store, Options{})
	for range 10 {
		if got := ToDOT(store, Options{}); got != first {
			t.Fatal("repeated exports of the same library differ")
		}
	}

	// Placeholder nodes come out in id order, not map order.
	if !danglingOrdered(first, "aaa", "mmm", "zzz") {
		t.Errorf("dangling nodes out of order:\n%s", first)
	}
}

func danglingOrdered(dot string, ids ...string) bool {
	last := -1
	for _, id := range ids {
		i := strings.Index(dot, `"`+id+`" [label=`)
		if i < 0 || i < last {
			return false
		}
		last = i
	}
	return true
}

func TestToDOT_SelfCycle(t *testing.T) {
	store := template.NewStore(template.Library{Templates: []template.Template{
		{ID: "loop", Intent: "Loop", EstimatedDuration: 1000, Type: template.TypeLane,
			Segments: []template.Segment{{TemplateID: "loop", Offset: 0}}},
	}})
	dot := ToDOT(store, Options{})
	if !strings.Contains(dot, `"loop" -> "loop";`) {
		t.Error("self cycle should draw an edge back to itself")
	}
}

func TestToDOT_WellFormed(t *testing.T) {
	dot := ToDOT(testStore(t), Options{})
	if !strings.HasPrefix(dot, "digraph templates {\n") {
		t.Error("missing digraph header")
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("missing closing brace")
	}
}
