package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tannerbroberts/abouttime/pkg/errors"
)

// Library is the canonical serialization format for a template catalog.
// Used for file storage, API responses, and the MongoDB collection shape.
//
// The format is human-readable and designed for round-trip fidelity:
// load → edit → save → reload produces identical results.
type Library struct {
	Version   string     `json:"version" bson:"version"`
	Templates []Template `json:"templates" bson:"templates"`
}

// Validate checks every template in the library and rejects duplicate ids.
func (l Library) Validate() error {
	seen := make(map[string]bool, len(l.Templates))
	for _, t := range l.Templates {
		if err := t.Validate(); err != nil {
			return err
		}
		if seen[t.ID] {
			return errors.New(errors.ErrCodeInvalidLibrary, "duplicate template id: %q", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// MarshalLibrary converts a library to indented JSON bytes.
func MarshalLibrary(lib Library) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeLibraryTo(lib, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLibrary writes a library as JSON to an io.Writer.
// Use MarshalLibrary for in-memory serialization or WriteLibraryFile for files.
func WriteLibrary(lib Library, w io.Writer) error {
	return writeLibraryTo(lib, w)
}

// WriteLibraryFile writes a library to a JSON file.
// The file is created with 0644 permissions.
func WriteLibraryFile(lib Library, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeLibraryTo(lib, f)
}

// ReadLibrary decodes a JSON library from an io.Reader.
// Returns validation errors for malformed records or duplicate ids.
func ReadLibrary(r io.Reader) (Library, error) {
	var lib Library
	if err := json.NewDecoder(r).Decode(&lib); err != nil {
		return Library{}, fmt.Errorf("decode: %w", err)
	}
	if err := lib.Validate(); err != nil {
		return Library{}, err
	}
	return lib, nil
}

// ReadLibraryFile reads a JSON file and returns the decoded library.
func ReadLibraryFile(path string) (Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return Library{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLibrary(f)
}

func writeLibraryTo(lib Library, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lib); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
