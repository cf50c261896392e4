package model

import "time"

// ChangeField names the order field a Change applies to.
type ChangeField string

const (
	FieldStart ChangeField = "start"
	FieldEnd   ChangeField = "end"
)

// ChangeReason classifies the dominant cause of a reschedule. When several
// constraints bind at the same instant, the first matching category in
// declaration order wins.
type ChangeReason string

const (
	// ReasonDependency: the order had to wait for a dependency to finish.
	ReasonDependency ChangeReason = "dependency"
	// ReasonCenterConflict: the order had to wait for earlier work on the
	// same work center.
	ReasonCenterConflict ChangeReason = "work center conflict"
	// ReasonCalendar: the order moved to align with shift hours or to clear
	// a maintenance window.
	ReasonCalendar ChangeReason = "shift/maintenance alignment"
)

// Change records one field of one order that the placer actually altered.
// Unchanged fields produce no Change.
type Change struct {
	OrderID string
	Field   ChangeField
	From    time.Time
	To      time.Time
	Reason  ChangeReason
	Detail  string
}

// Result is the full output of one reflow invocation. Orders preserves the
// input ordering; maintenance orders appear verbatim.
type Result struct {
	Orders      []WorkOrder
	Changes     []Change
	Explanation string
}
