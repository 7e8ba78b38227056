package library

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tannerbroberts/abouttime/pkg/template"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "library.json"), quietLogger())

	lib := s.Load()
	if len(lib.Templates) != 0 {
		t.Errorf("Load() of missing file = %d templates, want 0", len(lib.Templates))
	}

	store := s.LoadStore()
	if store.Len() != 0 {
		t.Errorf("LoadStore() len = %d, want usable empty store", store.Len())
	}
}

func TestFileStore_LoadDecodeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	if err := os.WriteFile(path, []byte("{broken json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path, quietLogger())
	lib := s.Load()
	if len(lib.Templates) != 0 {
		t.Errorf("Load() of broken file = %d templates, want 0 (decode failure degrades to empty)", len(lib.Templates))
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	s := NewFileStore(path, quietLogger())

	lib := template.Library{
		Version: "1",
		Templates: []template.Template{
			{ID: "brew", Intent: "Brew coffee", EstimatedDuration: 180000, Version: "1", Type: template.TypeAtomic},
			{ID: "morning", Intent: "Morning routine", EstimatedDuration: 1200000, Version: "1", Type: template.TypeLane,
				Segments: []template.Segment{{TemplateID: "brew", Offset: 0}}},
		},
	}

	if err := s.Save(lib); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := s.Load()
	if len(got.Templates) != 2 {
		t.Fatalf("Load() = %d templates, want 2", len(got.Templates))
	}
	if got.Templates[1].Segments[0].TemplateID != "brew" {
		t.Errorf("segment reference = %q, want brew", got.Templates[1].Segments[0].TemplateID)
	}
}

// Non-quota write failures are logged and swallowed: Save never fails the
// session for them. An unwritable directory stands in for a generic error.
func TestFileStore_SaveSwallowsNonQuotaFailures(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "no", "such", "dir", "library.json"), quietLogger())

	if err := s.Save(template.Library{Version: "1"}); err != nil {
		t.Errorf("Save into missing directory = %v, want nil (logged and swallowed)", err)
	}
}

func TestFileStore_HashTracksContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	s := NewFileStore(path, quietLogger())

	before := s.Hash()
	if err := s.Save(template.Library{Version: "1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	after := s.Hash()

	if before == after {
		t.Error("Hash() unchanged after save, want content-dependent hash")
	}
	if again := s.Hash(); again != after {
		t.Error("Hash() not deterministic for unchanged content")
	}
}
