// Package pkg provides the core libraries for abouttime timeline composition.
//
// # Overview
//
// Abouttime models reusable activity templates that compose into lanes of
// timed segments, then computes proportional layouts over them. The pkg
// directory is organized by concern:
//
//  1. [template] - The template model, immutable store, and JSON codec
//  2. [timeline] - The layout engine (geometry, gaps, nesting depth)
//  3. [selection] - Suggestion filtering and the picker state machine
//  4. [library] - Library persistence (file, watch, mongo)
//  5. [cache] - Byte caches for computed results (file, redis, null)
//  6. [export] - Reference graph rendering (DOT, SVG, PNG)
//
// # Architecture
//
// The typical data flow:
//
//	library.json
//	     ↓
//	[library] package (load, degrade to empty on failure)
//	     ↓
//	[template] package (immutable store)
//	     ↓
//	[timeline] package (positions, widths, gaps, depth)
//	     ↓
//	CLI viewers / HTTP API / DOT export
//
// The engine never returns errors: dangling references, zero durations, and
// reference cycles all degrade to shorter or zero-valued results. Errors
// belong to the boundaries around it ([errors], [library], the CLI, the
// HTTP server).
//
// # Quick Start
//
// Load a library and lay out a lane:
//
//	store := library.NewFileStore(path, logger).LoadStore()
//	layout, ok := timeline.Layout("morning", store)
//	if ok {
//	    for _, seg := range layout.Segments {
//	        fmt.Printf("%s at %.1f%%\n", seg.Intent, seg.Position)
//	    }
//	}
//
// [template]: https://pkg.go.dev/github.com/tannerbroberts/abouttime/pkg/template
// [timeline]: https://pkg.go.dev/github.com/tannerbroberts/abouttime/pkg/timeline
// [selection]: https://pkg.go.dev/github.com/tannerbroberts/abouttime/pkg/selection
// [library]: https://pkg.go.dev/github.com/tannerbroberts/abouttime/pkg/library
// [cache]: https://pkg.go.dev/github.com/tannerbroberts/abouttime/pkg/cache
// [export]: https://pkg.go.dev/github.com/tannerbroberts/abouttime/pkg/export
// [errors]: https://pkg.go.dev/github.com/tannerbroberts/abouttime/pkg/errors
package pkg
