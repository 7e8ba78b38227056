// Package selection provides the suggestion index and the per-viewer
// selection state machine for search-as-you-type lane selection.
//
// The same query/suggestion/selection logic drives all three viewer
// surfaces. Rather than duplicating it per viewer, one Selection type is
// parameterized by the candidate lane list and instantiated per viewer,
// which keeps the near-identical implementations from drifting.
package selection
