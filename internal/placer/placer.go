// Package placer implements the reflow placement pass: a greedy,
// dependency-ordered walk that moves every movable order to its earliest
// feasible slot. It is a feasibility walk, not a cost-optimal scheduler.
package placer

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/reflowgo/internal/ctxlog"
	"github.com/vk/reflowgo/internal/model"
	"github.com/vk/reflowgo/internal/timewalk"
)

// Config carries the placement pass configuration. Walk bounds are
// explicit so pathological calendars fail loudly instead of looping.
type Config struct {
	Walk timewalk.Options
}

// Outcome is the raw result of one placement pass. ByID maps every input
// order id to its (possibly rescheduled) value; Changes lists each field
// actually altered, in processing order.
type Outcome struct {
	ByID    map[string]model.WorkOrder
	Changes []model.Change
}

// Place processes orders in the given topological order. Maintenance
// orders pass through unmodified but remain visible as fixed obstacles:
// their stored end feeds both the per-center running maximum and the
// dependency bound of later orders.
//
// The per-center running maximum is a local accumulator owned by this
// single call; nothing is shared across invocations.
func Place(ctx context.Context, sorted []model.WorkOrder, centers map[string]*model.WorkCenter, cfg Config) (*Outcome, error) {
	logger := ctxlog.FromContext(ctx)

	walkers := make(map[string]*timewalk.Walker, len(centers))
	walkerFor := func(name string) *timewalk.Walker {
		w, ok := walkers[name]
		if !ok {
			w = timewalk.ForCenter(centers[name], cfg.Walk)
			walkers[name] = w
		}
		return w
	}

	out := &Outcome{ByID: make(map[string]model.WorkOrder, len(sorted))}
	lastEnd := make(map[string]time.Time) // running maximum per work center
	endByID := make(map[string]time.Time, len(sorted))

	for _, order := range sorted {
		if _, ok := centers[order.WorkCenter]; !ok {
			return nil, &model.UnknownCenterError{OrderID: order.ID, WorkCenter: order.WorkCenter}
		}

		if order.Maintenance {
			// Immovable: keep the stored interval, but count it as an
			// obstacle on its center and as a dependency bound.
			out.ByID[order.ID] = order
			endByID[order.ID] = order.End
			if order.End.After(lastEnd[order.WorkCenter]) {
				lastEnd[order.WorkCenter] = order.End
			}
			logger.Debug("maintenance order passed through", "order", order.ID, "center", order.WorkCenter)
			continue
		}

		// The order's own stored start is the floor: no epoch fallback
		// when no other constraint applies.
		earliest := order.Start.UTC()

		centerBound, hasCenterBound := lastEnd[order.WorkCenter]
		if hasCenterBound && centerBound.After(earliest) {
			earliest = centerBound
		}

		var depBound time.Time
		var bindingDep string
		for _, depID := range order.DependsOn {
			// Topological order guarantees every dependency was placed
			// already; endByID holds its updated end.
			depEnd := endByID[depID]
			if depEnd.After(depBound) {
				depBound = depEnd
				bindingDep = depID
			}
		}
		if depBound.After(earliest) {
			earliest = depBound
		}

		walker := walkerFor(order.WorkCenter)

		// Snap forward to the next available start. When the constrained
		// floor is already inside a working window this is a no-op:
		// earliest possible beats snap-to-window-start.
		start, err := walker.NextWorkingMoment(earliest)
		if err != nil {
			return nil, &model.SchedulingImpossibleError{OrderID: order.ID, WorkCenter: order.WorkCenter, Cause: err}
		}
		end, err := walker.Walk(start, order.DurationMinutes)
		if err != nil {
			return nil, &model.SchedulingImpossibleError{OrderID: order.ID, WorkCenter: order.WorkCenter, Cause: err}
		}

		updated := order
		updated.Start = start
		updated.End = end
		out.ByID[order.ID] = updated
		endByID[order.ID] = end
		lastEnd[order.WorkCenter] = end

		startMoved := !start.Equal(order.Start)
		endMoved := !end.Equal(order.End)
		if startMoved || endMoved {
			reason, detail := classify(order, start, depBound, bindingDep, centerBound, hasCenterBound)
			if startMoved {
				out.Changes = append(out.Changes, model.Change{
					OrderID: order.ID, Field: model.FieldStart,
					From: order.Start, To: start,
					Reason: reason, Detail: detail,
				})
			}
			if endMoved {
				out.Changes = append(out.Changes, model.Change{
					OrderID: order.ID, Field: model.FieldEnd,
					From: order.End, To: end,
					Reason: reason,
					Detail: fmt.Sprintf("end recomputed from %d minutes of working time on %q", order.DurationMinutes, order.WorkCenter),
				})
			}
			logger.Debug("order rescheduled",
				"order", order.ID, "center", order.WorkCenter,
				"start", start, "end", end, "reason", string(reason))
		}
	}

	return out, nil
}

// classify picks the dominant cause of a reschedule by priority: a
// dependency bound that equals the chosen start wins, then a work-center
// bound that equals it, and anything else is calendar alignment (the snap
// or the walk moved the order past the constrained floor).
func classify(order model.WorkOrder, start, depBound time.Time, bindingDep string, centerBound time.Time, hasCenterBound bool) (model.ChangeReason, string) {
	switch {
	case !depBound.IsZero() && start.Equal(depBound):
		return model.ReasonDependency,
			fmt.Sprintf("order %q waits for dependency %q to finish at %s",
				order.ID, bindingDep, start.Format(time.RFC3339))
	case hasCenterBound && start.Equal(centerBound):
		return model.ReasonCenterConflict,
			fmt.Sprintf("order %q waits for earlier work on center %q to finish at %s",
				order.ID, order.WorkCenter, start.Format(time.RFC3339))
	default:
		return model.ReasonCalendar,
			fmt.Sprintf("order %q aligned to the next working window on center %q",
				order.ID, order.WorkCenter)
	}
}
