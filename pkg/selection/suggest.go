package selection

import (
	"strings"

	"github.com/tannerbroberts/abouttime/pkg/template"
)

// Suggest filters lane templates by a free-text query against their intent
// field, preserving the candidates' original relative order.
//
// A query that trims to empty returns the full candidate sequence
// unfiltered. Otherwise the match is a case-insensitive substring test.
// This is a stable filter, not a ranked search: no scoring, no fuzzy
// matching. Recomputation per keystroke is the design; candidate lists are
// personal template libraries, small enough that a linear scan wins over
// any caching layer.
func Suggest(query string, lanes []template.Template) []template.Template {
	if strings.TrimSpace(query) == "" {
		return lanes
	}

	q := strings.ToLower(query)
	var out []template.Template
	for _, lane := range lanes {
		if strings.Contains(strings.ToLower(lane.Intent), q) {
			out = append(out, lane)
		}
	}
	return out
}
