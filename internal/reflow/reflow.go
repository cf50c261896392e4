// Package reflow exposes the two core operations of the scheduler: Run,
// which reschedules every movable order and revalidates the result, and
// Validate, which audits any schedule read-only.
package reflow

import (
	"context"
	"fmt"

	"github.com/vk/reflowgo/internal/ctxlog"
	"github.com/vk/reflowgo/internal/depgraph"
	"github.com/vk/reflowgo/internal/model"
	"github.com/vk/reflowgo/internal/placer"
	"github.com/vk/reflowgo/internal/timewalk"
	"github.com/vk/reflowgo/internal/validate"
)

// Options configures one reflow invocation. The zero value uses the
// default time-walk iteration bounds.
type Options struct {
	Walk timewalk.Options
}

// Run reschedules all movable orders and returns the updated schedule,
// the change log, and a short explanation. Inputs are never mutated.
//
// Run fails with *model.CycleError, *model.UnknownDependencyError,
// *model.UnknownCenterError, *model.SchedulingImpossibleError, or with
// *model.InvalidScheduleError if the freshly placed schedule fails its
// own post-check. No partial result is returned on failure.
func Run(ctx context.Context, orders []model.WorkOrder, centers []model.WorkCenter, opts Options) (*model.Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("reflow started", "orders", len(orders), "centers", len(centers))

	index, err := model.IndexCenters(centers)
	if err != nil {
		return nil, err
	}

	sorted, err := depgraph.Sort(orders)
	if err != nil {
		return nil, err
	}
	logger.Debug("topological order established")

	outcome, err := placer.Place(ctx, sorted, index, placer.Config{Walk: opts.Walk})
	if err != nil {
		return nil, err
	}
	logger.Debug("placement finished", "changes", len(outcome.Changes))

	// Emit orders in input order so the result diffs cleanly against the
	// input.
	updated := make([]model.WorkOrder, len(orders))
	for i, o := range orders {
		updated[i] = outcome.ByID[o.ID]
	}

	// The placer and the validator share one walker implementation, so a
	// failure here means a genuine contract breach, not arithmetic drift.
	report := validate.Schedule(ctx, updated, index)
	if !report.Valid() {
		return nil, &model.InvalidScheduleError{Report: report}
	}

	result := &model.Result{
		Orders:      updated,
		Changes:     outcome.Changes,
		Explanation: explain(len(orders), outcome.Changes),
	}
	logger.Info("reflow complete", "orders", len(orders), "changes", len(result.Changes))
	return result, nil
}

// Validate audits any schedule against all four constraints. It never
// fails; the report carries every violation found.
func Validate(ctx context.Context, orders []model.WorkOrder, centers []model.WorkCenter) model.Report {
	index, err := model.IndexCenters(centers)
	if err != nil {
		// A duplicate center name makes every lookup ambiguous; surface it
		// as a single reference violation rather than an error.
		return model.Report{Violations: []model.Violation{{
			Kind:    model.ViolationReference,
			Message: err.Error(),
		}}}
	}
	return validate.Schedule(ctx, orders, index)
}

// explain summarizes one run in a sentence or two of plain text.
func explain(total int, changes []model.Change) string {
	if len(changes) == 0 {
		return fmt.Sprintf("All %d orders already satisfy every constraint; nothing moved.", total)
	}

	moved := make(map[string]struct{})
	byReason := make(map[model.ChangeReason]int)
	for _, c := range changes {
		moved[c.OrderID] = struct{}{}
		byReason[c.Reason]++
	}

	msg := fmt.Sprintf("Rescheduled %d of %d orders (%d field changes):", len(moved), total, len(changes))
	for _, reason := range []model.ChangeReason{model.ReasonDependency, model.ReasonCenterConflict, model.ReasonCalendar} {
		if n := byReason[reason]; n > 0 {
			msg += fmt.Sprintf(" %d for %s;", n, reason)
		}
	}
	return msg
}
