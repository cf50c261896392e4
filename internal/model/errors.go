package model

import (
	"fmt"
	"strings"
)

// CycleError reports a dependency cycle. IDs names every order that never
// reached in-degree zero during the topological sort, which is a superset
// of the minimal cycle.
type CycleError struct {
	IDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected involving orders: %s", strings.Join(e.IDs, ", "))
}

// UnknownDependencyError reports a depends_on id that resolves to no known
// order. This is a hard error, not a silent skip.
type UnknownDependencyError struct {
	OrderID      string
	DependencyID string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("order %q depends on unknown order %q", e.OrderID, e.DependencyID)
}

// UnknownCenterError reports an order that references a work center name
// absent from the input. Absent centers are never treated as "no shifts".
type UnknownCenterError struct {
	OrderID    string
	WorkCenter string
}

func (e *UnknownCenterError) Error() string {
	return fmt.Sprintf("order %q references unknown work center %q", e.OrderID, e.WorkCenter)
}

// SchedulingImpossibleError reports that an iteration bound tripped while
// searching for free time: the shift and maintenance configuration of the
// work center never yields a feasible slot for the order.
type SchedulingImpossibleError struct {
	OrderID    string
	WorkCenter string
	Cause      error
}

func (e *SchedulingImpossibleError) Error() string {
	return fmt.Sprintf("cannot place order %q on work center %q: %v", e.OrderID, e.WorkCenter, e.Cause)
}

func (e *SchedulingImpossibleError) Unwrap() error { return e.Cause }

// InvalidScheduleError is raised when a freshly placed schedule fails its
// own post-validation. It carries the validator's complete violation list,
// never a first-error short-circuit.
type InvalidScheduleError struct {
	Report Report
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("placed schedule failed validation with %d violation(s): %s",
		len(e.Report.Violations), strings.Join(e.Report.Messages(), "; "))
}
