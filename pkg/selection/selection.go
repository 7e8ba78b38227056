package selection

import (
	"sync"
	"time"

	"github.com/tannerbroberts/abouttime/pkg/template"
)

// DefaultHideDelay is how long a blurred suggestion list stays visible.
// The delay exists so a pending click on a suggestion can register before
// the list disappears. Losing that race (hide fires first) is an accepted
// trade-off, not a correctness violation.
const DefaultHideDelay = 150 * time.Millisecond

// Selection is the per-viewer state machine tracking the active query, the
// selected lane, and suggestion-dropdown visibility. Suggestions are
// derived from the query on demand, never stored.
//
// Each viewer surface owns an independent Selection created on mount and
// discarded on unmount; nothing is shared across viewers. The candidate
// list is fixed for the life of the instance (swap in a new Selection when
// the store reloads).
//
// The only asynchronous element is the deferred hide scheduled by Blur.
// All state is guarded by a mutex so the timer callback and the caller's
// event loop do not race.
type Selection struct {
	mu         sync.Mutex
	candidates []template.Template
	query      string
	selected   *template.Template
	show       bool
	hideDelay  time.Duration
	hideTimer  *time.Timer
	hideGen    uint64
}

// New creates a selection state machine over the given candidate lanes
// with the initial state: empty query, no selection, suggestions hidden.
func New(candidates []template.Template) *Selection {
	return &Selection{
		candidates: candidates,
		hideDelay:  DefaultHideDelay,
	}
}

// SetHideDelay overrides the deferred-hide delay. Zero hides immediately
// on Blur. Mainly used by tests and by viewers with their own timing.
func (s *Selection) SetHideDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hideDelay = d
}

// SetQuery updates the query text and shows the suggestion list.
// The current selection is intentionally not cleared: typing refines the
// search without discarding the previously chosen lane.
func (s *Selection) SetQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = text
	s.show = true
	s.cancelHideLocked()
}

// Focus shows the suggestion list and cancels any pending deferred hide.
func (s *Selection) Focus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.show = true
	s.cancelHideLocked()
}

// Blur schedules the suggestion list to hide after the configured delay.
// A subsequent Focus, SetQuery, or SelectLane cancels the pending hide.
func (s *Selection) Blur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelHideLocked()
	if s.hideDelay <= 0 {
		s.show = false
		return
	}
	gen := s.hideGen
	s.hideTimer = time.AfterFunc(s.hideDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A fired timer can lose the lock to a concurrent Focus; its Stop
		// then returns false and the callback still runs. The generation
		// check makes such a superseded hide a no-op.
		if gen != s.hideGen {
			return
		}
		s.show = false
	})
}

// SelectLane records the chosen lane, sets the query to exactly that
// lane's intent, and hides the suggestion list, regardless of prior query
// text.
func (s *Selection) SelectLane(lane template.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := lane
	s.selected = &l
	s.query = lane.Intent
	s.show = false
	s.cancelHideLocked()
}

// SetShowSuggestions directly overrides dropdown visibility.
func (s *Selection) SetShowSuggestions(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.show = show
	s.cancelHideLocked()
}

// Query returns the current query text.
func (s *Selection) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Suggestions recomputes and returns the current suggestion list from the
// query and the candidate lanes. Derived state: nothing is cached.
func (s *Selection) Suggestions() []template.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Suggest(s.query, s.candidates)
}

// Selected returns the currently selected lane and true, or a zero
// template and false when nothing is selected.
func (s *Selection) Selected() (template.Template, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return template.Template{}, false
	}
	return *s.selected, true
}

// ShowSuggestions reports whether the suggestion dropdown is visible.
func (s *Selection) ShowSuggestions() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.show
}

// Close cancels any pending deferred hide. Viewers call this on unmount.
func (s *Selection) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelHideLocked()
}

func (s *Selection) cancelHideLocked() {
	s.hideGen++
	if s.hideTimer != nil {
		s.hideTimer.Stop()
		s.hideTimer = nil
	}
}
