// Package model holds the plain, in-memory records the scheduling core
// consumes and produces, together with the typed contract errors.
//
// # Core Concepts
//
//   - WorkCenter: a named resource with a weekly shift table and absolute
//     maintenance windows. Referenced by orders via Name.
//
//   - WorkOrder: one unit of work occupying exactly one work center for
//     DurationMinutes of working time. Maintenance orders are immovable
//     obstacles; all other orders may be rescheduled.
//
//   - Change / Result: the diff-friendly output of one reflow pass. Input
//     orders are never mutated; every altered order is a fresh value so old
//     and new fields stay available side by side.
//
//   - Report / Violation: the structured outcome of a standalone validation
//     pass, which never fails as an error.
//
// All instants are UTC. Serialization concerns (HCL, YAML, field names on
// the wire) live in the loader packages, not here; this package is the
// boundary shape between the loaders, the placement engine, and callers.
package model
