// Package template defines the template data model and the immutable
// in-memory store the timeline engine computes against.
//
// A template is a reusable unit of timed work. Two variants exist:
//
//   - Atomic templates carry a fixed duration and no further structure.
//   - Lane templates additionally carry an ordered set of segments, each a
//     timed reference (by id) to another template in the store.
//
// Segment references form a directed graph over template ids. The graph is
// not guaranteed acyclic: a lane may reference itself or an ancestor, either
// through authoring error or intentional self-similar composition. Every
// consumer that traverses the graph must assume cycles are possible.
//
// A Store is built once from a Library (the serialized form) and is
// read-only for the duration of a layout or search pass. Callers that
// reload the library concurrently are responsible for handing out a stable
// Store reference per pass; the store itself takes no locks.
package template
