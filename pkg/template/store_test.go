package template

import (
	"reflect"
	"testing"
)

func testLibrary() Library {
	return Library{
		Version: "1",
		Templates: []Template{
			{ID: "brew", Intent: "Brew coffee", EstimatedDuration: 180000, Version: "1", Type: TypeAtomic},
			{ID: "morning", Intent: "Morning routine", EstimatedDuration: 1200000, Version: "1", Type: TypeLane,
				Segments: []Segment{{TemplateID: "brew", Offset: 0}}},
			{ID: "evening", Intent: "Evening wind-down", EstimatedDuration: 900000, Version: "1", Type: TypeLane},
		},
	}
}

func TestNewStore(t *testing.T) {
	s := NewStore(testLibrary())

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	got, ok := s.Lookup("morning")
	if !ok || got.Intent != "Morning routine" {
		t.Errorf("Lookup(morning) = %v/%v, want the lane", got, ok)
	}

	if _, ok := s.Lookup("nope"); ok {
		t.Error("Lookup(nope) ok = true, want false")
	}
}

func TestStore_Duration(t *testing.T) {
	s := NewStore(testLibrary())

	d, ok := s.Duration("brew")
	if !ok || d != 180000 {
		t.Errorf("Duration(brew) = %d/%v, want 180000/true", d, ok)
	}

	if _, ok := s.Duration("ghost"); ok {
		t.Error("Duration(ghost) ok = true, want false")
	}
}

func TestStore_LanesPreserveOrder(t *testing.T) {
	s := NewStore(testLibrary())

	lanes := s.Lanes()
	ids := make([]string, len(lanes))
	for i, l := range lanes {
		ids[i] = l.ID
	}
	want := []string{"morning", "evening"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Lanes() ids = %v, want %v", ids, want)
	}
}

func TestNewStore_DuplicateIDsLastWins(t *testing.T) {
	lib := Library{
		Version: "1",
		Templates: []Template{
			{ID: "x", Intent: "First", EstimatedDuration: 100, Version: "1", Type: TypeAtomic},
			{ID: "y", Intent: "Other", EstimatedDuration: 100, Version: "1", Type: TypeAtomic},
			{ID: "x", Intent: "Second", EstimatedDuration: 200, Version: "2", Type: TypeAtomic},
		},
	}
	s := NewStore(lib)

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	got, _ := s.Lookup("x")
	if got.Intent != "Second" {
		t.Errorf("Lookup(x).Intent = %q, want %q (later record wins)", got.Intent, "Second")
	}
	if ids := s.IDs(); !reflect.DeepEqual(ids, []string{"x", "y"}) {
		t.Errorf("IDs() = %v, want first position kept", ids)
	}
}

func TestEmptyStore(t *testing.T) {
	s := EmptyStore()
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if lanes := s.Lanes(); lanes != nil {
		t.Errorf("Lanes() = %v, want nil", lanes)
	}
}
