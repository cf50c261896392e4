package model

import (
	"fmt"
	"time"
)

// Shift is a recurring weekly working window on a work center, half-open
// [StartHour, EndHour) at whole-hour granularity. Day follows time.Weekday
// (Sunday == 0). Overlapping shifts on the same day are legal and simply
// union their coverage.
type Shift struct {
	Day       time.Weekday
	StartHour int
	EndHour   int
}

// MaintenanceWindow is an absolute, non-recurring blocked interval
// [Start, End) on one work center. No work progresses inside it.
type MaintenanceWindow struct {
	Start  time.Time
	End    time.Time
	Reason string
}

// WorkCenter is a schedulable resource. An empty shift table means the
// center is always available; maintenance windows still apply.
type WorkCenter struct {
	Name        string
	Shifts      []Shift
	Maintenance []MaintenanceWindow
}

// IndexCenters resolves the name -> center relation once, up front, so the
// placement pass never does ad-hoc string lookups. Duplicate names are a
// configuration error.
func IndexCenters(centers []WorkCenter) (map[string]*WorkCenter, error) {
	index := make(map[string]*WorkCenter, len(centers))
	for i := range centers {
		name := centers[i].Name
		if _, exists := index[name]; exists {
			return nil, fmt.Errorf("duplicate work center name %q", name)
		}
		index[name] = &centers[i]
	}
	return index, nil
}
