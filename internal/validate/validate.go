// Package validate re-checks a schedule against all four hard constraints
// without mutating anything. It is a pure pass usable on any schedule,
// not only placer output, and it accumulates every violation instead of
// failing fast.
package validate

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vk/reflowgo/internal/ctxlog"
	"github.com/vk/reflowgo/internal/model"
	"github.com/vk/reflowgo/internal/shiftcal"
	"github.com/vk/reflowgo/internal/timewalk"
)

// endTolerance absorbs serialization rounding when comparing a stored end
// against the re-derived time-walk result.
const endTolerance = 60 * time.Second

// Schedule runs all four checks over the given orders and centers and
// returns the accumulated report. It never returns an error: an unknown
// work center or dependency id is itself a reported violation.
func Schedule(ctx context.Context, orders []model.WorkOrder, centers map[string]*model.WorkCenter) model.Report {
	logger := ctxlog.FromContext(ctx)

	var report model.Report
	add := func(orderID string, kind model.ViolationKind, format string, args ...any) {
		report.Violations = append(report.Violations, model.Violation{
			OrderID: orderID,
			Kind:    kind,
			Message: fmt.Sprintf(format, args...),
		})
	}

	walkers := make(map[string]*timewalk.Walker, len(centers))
	calendars := make(map[string]*shiftcal.Calendar, len(centers))
	for name, center := range centers {
		walkers[name] = timewalk.ForCenter(center, timewalk.DefaultOptions())
		calendars[name] = shiftcal.New(center.Shifts)
	}

	byID := make(map[string]model.WorkOrder, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	checkCenterConflicts(orders, add)
	checkDependencies(orders, byID, add)
	checkConformance(orders, centers, calendars, walkers, add)
	checkMaintenanceBounds(orders, centers, add)

	logger.Debug("validation finished", "orders", len(orders), "violations", len(report.Violations))
	return report
}

// checkCenterConflicts verifies that within each work center, orders
// sorted by start never overlap: every adjacent pair must satisfy
// earlier.End <= later.Start. Maintenance orders participate as obstacles.
func checkCenterConflicts(orders []model.WorkOrder, add func(string, model.ViolationKind, string, ...any)) {
	byCenter := make(map[string][]model.WorkOrder)
	for _, o := range orders {
		byCenter[o.WorkCenter] = append(byCenter[o.WorkCenter], o)
	}

	centerNames := make([]string, 0, len(byCenter))
	for name := range byCenter {
		centerNames = append(centerNames, name)
	}
	sort.Strings(centerNames)

	for _, name := range centerNames {
		group := byCenter[name]
		sort.SliceStable(group, func(i, j int) bool {
			if !group[i].Start.Equal(group[j].Start) {
				return group[i].Start.Before(group[j].Start)
			}
			return group[i].ID < group[j].ID
		})
		for i := 1; i < len(group); i++ {
			earlier, later := group[i-1], group[i]
			if earlier.End.After(later.Start) {
				add(later.ID, model.ViolationCenterConflict,
					"orders %q and %q overlap on work center %q (%s > %s)",
					earlier.ID, later.ID, name,
					earlier.End.Format(time.RFC3339), later.Start.Format(time.RFC3339))
			}
		}
	}
}

// checkDependencies verifies that every order starts at or after the end
// of each of its dependencies, and that every dependency id resolves.
func checkDependencies(orders []model.WorkOrder, byID map[string]model.WorkOrder, add func(string, model.ViolationKind, string, ...any)) {
	for _, o := range orders {
		for _, depID := range o.DependsOn {
			dep, ok := byID[depID]
			if !ok {
				add(o.ID, model.ViolationDependency,
					"order %q depends on unknown order %q", o.ID, depID)
				continue
			}
			if o.Start.Before(dep.End) {
				add(o.ID, model.ViolationDependency,
					"order %q starts at %s before its dependency %q ends at %s",
					o.ID, o.Start.Format(time.RFC3339), depID, dep.End.Format(time.RFC3339))
			}
		}
	}
}

// checkConformance verifies, for non-maintenance orders, that the start
// lies inside a shift (when the center defines shifts) and that the stored
// end matches the re-derived time walk within tolerance. The re-derivation
// routes around maintenance windows, so it also guards against mid-order
// maintenance overlap.
func checkConformance(orders []model.WorkOrder, centers map[string]*model.WorkCenter, calendars map[string]*shiftcal.Calendar, walkers map[string]*timewalk.Walker, add func(string, model.ViolationKind, string, ...any)) {
	for _, o := range orders {
		if o.Maintenance {
			// Maintenance orders may sit outside shift hours by design.
			continue
		}
		if _, ok := centers[o.WorkCenter]; !ok {
			add(o.ID, model.ViolationReference,
				"order %q references unknown work center %q", o.ID, o.WorkCenter)
			continue
		}

		cal := calendars[o.WorkCenter]
		if !cal.Empty() && !cal.Contains(o.Start) {
			add(o.ID, model.ViolationConformance,
				"order %q starts at %s outside the shift hours of work center %q",
				o.ID, o.Start.Format(time.RFC3339), o.WorkCenter)
		}

		expected, err := walkers[o.WorkCenter].Walk(o.Start, o.DurationMinutes)
		if err != nil {
			add(o.ID, model.ViolationConformance,
				"order %q end cannot be re-derived on work center %q: %v", o.ID, o.WorkCenter, err)
			continue
		}
		if diff := absDuration(o.End.Sub(expected)); diff > endTolerance {
			add(o.ID, model.ViolationConformance,
				"order %q ends at %s but %d minutes of working time from %s ends at %s",
				o.ID, o.End.Format(time.RFC3339), o.DurationMinutes,
				o.Start.Format(time.RFC3339), expected.Format(time.RFC3339))
		}
	}
}

// checkMaintenanceBounds asserts that no non-maintenance order starts or
// ends strictly inside a maintenance window of its center. An order may
// legitimately span a window (the walk pauses across it), so the interior
// of the interval is deliberately not checked here; checkConformance's
// end re-derivation covers that case.
func checkMaintenanceBounds(orders []model.WorkOrder, centers map[string]*model.WorkCenter, add func(string, model.ViolationKind, string, ...any)) {
	for _, o := range orders {
		if o.Maintenance {
			continue
		}
		center, ok := centers[o.WorkCenter]
		if !ok {
			continue // already reported by checkConformance
		}
		for _, mw := range center.Maintenance {
			if !o.Start.Before(mw.Start) && o.Start.Before(mw.End) {
				add(o.ID, model.ViolationMaintenance,
					"order %q starts at %s inside maintenance window [%s, %s) on %q",
					o.ID, o.Start.Format(time.RFC3339),
					mw.Start.Format(time.RFC3339), mw.End.Format(time.RFC3339), o.WorkCenter)
			}
			if o.End.After(mw.Start) && o.End.Before(mw.End) {
				add(o.ID, model.ViolationMaintenance,
					"order %q ends at %s inside maintenance window [%s, %s) on %q",
					o.ID, o.End.Format(time.RFC3339),
					mw.Start.Format(time.RFC3339), mw.End.Format(time.RFC3339), o.WorkCenter)
			}
		}
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
