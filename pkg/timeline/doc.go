// Package timeline implements the template composition and layout engine:
// segment geometry, gap analysis, and nesting depth.
//
// All functions here are pure and side-effect free. They take the template
// store (or a duration lookup derived from it) as an explicit read-only
// argument and never mutate it. Failure modes are expressed as data, not
// errors: dangling segment references are skipped, zero parent durations
// collapse geometry to zero, and cyclic template graphs terminate with a
// finite depth.
//
// The same three computations back every viewer surface (lane, panel, and
// list viewers), so their contracts are load-bearing across the whole
// application and are pinned by the tests in this package.
package timeline
