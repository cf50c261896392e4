package model

import "time"

// WorkOrder is one unit of work on exactly one work center.
//
// A maintenance order (Maintenance == true) is immovable: the placer never
// alters its Start or End, but its stored interval still counts as an
// obstacle for other orders' dependency and conflict checks.
//
// For every non-maintenance order in a placed schedule, End equals the
// time-walk of (Start, DurationMinutes) through the center's shift calendar
// and maintenance windows.
type WorkOrder struct {
	ID              string
	WorkCenter      string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Maintenance     bool
	DependsOn       []string
}
