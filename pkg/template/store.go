package template

// Store is an immutable catalog mapping template id to template.
// It preserves library insertion order so that lane listings (and therefore
// suggestion ordering) are stable across runs. The zero value is an empty
// store; use NewStore to build one from a library.
//
// Store never mutates after construction, which is what makes concurrent
// reads from viewers and server handlers safe without locking.
type Store struct {
	byID  map[string]Template
	order []string
}

// NewStore builds a store from a library.
// Duplicate ids keep their first position in the ordering; the later
// record's fields win, matching last-write semantics of the authoring flow.
func NewStore(lib Library) *Store {
	s := &Store{byID: make(map[string]Template, len(lib.Templates))}
	for _, t := range lib.Templates {
		if _, seen := s.byID[t.ID]; !seen {
			s.order = append(s.order, t.ID)
		}
		s.byID[t.ID] = t
	}
	return s
}

// EmptyStore returns a store with no templates.
func EmptyStore() *Store {
	return &Store{byID: map[string]Template{}}
}

// Lookup returns the template with the given id and true, or a zero
// template and false if the id is not in the store.
func (s *Store) Lookup(id string) (Template, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// Duration returns the estimated duration of the template with the given id.
// The second result is false for unknown ids. This is the duration lookup
// the gap analyzer threads through its occupied-interval resolution.
func (s *Store) Duration(id string) (int64, bool) {
	t, ok := s.byID[id]
	if !ok {
		return 0, false
	}
	return t.EstimatedDuration, true
}

// Len returns the number of templates in the store.
func (s *Store) Len() int { return len(s.byID) }

// All returns every template in insertion order.
func (s *Store) All() []Template {
	out := make([]Template, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Lanes returns the lane templates in insertion order.
// This is the candidate list handed to the suggestion index, so the order
// here is the order suggestions preserve.
func (s *Store) Lanes() []Template {
	var out []Template
	for _, id := range s.order {
		if t := s.byID[id]; t.IsLane() {
			out = append(out, t)
		}
	}
	return out
}

// IDs returns every template id in insertion order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
