// Package timewalk advances an instant through working time. It is the
// single source of truth for "how long does N minutes of work really
// take" on a work center: both the placer (to compute an order's end) and
// the validator (to confirm a stored end) call the same Walker, so the two
// can never drift apart.
package timewalk

import (
	"errors"
	"fmt"
	"time"

	"github.com/vk/reflowgo/internal/model"
	"github.com/vk/reflowgo/internal/shiftcal"
)

// ErrNoWorkingTime is wrapped by every limit-trip error so callers can
// recognize an exhausted search regardless of which loop gave up.
var ErrNoWorkingTime = errors.New("no working time found within iteration limit")

// Options makes the walker's iteration bounds explicit configuration
// rather than buried constants. The bounds exist to convert pathological
// configurations (for example maintenance windows that cover every shift)
// into a distinct error instead of an infinite loop; they are part of the
// contract.
type Options struct {
	// StabilizeLimit bounds the loop that searches for the next working
	// moment (shift jump, maintenance jump, repeat).
	StabilizeLimit int
	// SegmentLimit bounds the number of working segments one walk may
	// consume.
	SegmentLimit int
}

// DefaultOptions returns the standard iteration bounds.
func DefaultOptions() Options {
	return Options{StabilizeLimit: 1000, SegmentLimit: 5000}
}

// Segment is one maximal contiguous interval of working time: inside a
// shift (or on an always-available center) and outside every maintenance
// window. Half-open [Start, End).
type Segment struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the segment length in whole minutes.
func (s Segment) Minutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// Walker walks instants through one work center's working time.
type Walker struct {
	cal   *shiftcal.Calendar
	maint []model.MaintenanceWindow
	opts  Options
}

// New builds a Walker for a calendar plus a set of absolute maintenance
// windows. Zero-valued option fields fall back to the defaults.
func New(cal *shiftcal.Calendar, maint []model.MaintenanceWindow, opts Options) *Walker {
	def := DefaultOptions()
	if opts.StabilizeLimit <= 0 {
		opts.StabilizeLimit = def.StabilizeLimit
	}
	if opts.SegmentLimit <= 0 {
		opts.SegmentLimit = def.SegmentLimit
	}
	return &Walker{cal: cal, maint: maint, opts: opts}
}

// ForCenter builds a Walker directly from a work center.
func ForCenter(center *model.WorkCenter, opts Options) *Walker {
	return New(shiftcal.New(center.Shifts), center.Maintenance, opts)
}

// maintenanceAt returns the maintenance window containing t, if any.
// Windows are half-open, so t exactly at a window's end is free.
func (w *Walker) maintenanceAt(t time.Time) (model.MaintenanceWindow, bool) {
	for _, mw := range w.maint {
		if !t.Before(mw.Start) && t.Before(mw.End) {
			return mw, true
		}
	}
	return model.MaintenanceWindow{}, false
}

// NextWorkingMoment returns the first working moment at or after t:
// inside a shift (when shifts exist) and outside every maintenance window.
// A center with no shifts is treated as always available, but maintenance
// windows still block it.
func (w *Walker) NextWorkingMoment(t time.Time) (time.Time, error) {
	cur := t.UTC()
	for i := 0; i < w.opts.StabilizeLimit; i++ {
		if !w.cal.Empty() && !w.cal.Contains(cur) {
			cur = w.cal.NextStart(cur)
			continue
		}
		if mw, ok := w.maintenanceAt(cur); ok {
			cur = mw.End.UTC()
			continue
		}
		return cur, nil
	}
	return time.Time{}, fmt.Errorf("stabilization from %s exceeded %d iterations: %w",
		t.UTC().Format(time.RFC3339), w.opts.StabilizeLimit, ErrNoWorkingTime)
}

// segmentEnd returns the end of the uninterrupted working segment that
// begins at the working moment cur: the earlier of the enclosing shift's
// segment end and the start of the first maintenance window that begins
// strictly after cur. A zero time means the segment is unbounded (no
// shifts configured and no maintenance ahead).
func (w *Walker) segmentEnd(cur time.Time) time.Time {
	var end time.Time
	if !w.cal.Empty() {
		end = w.cal.SegmentEnd(cur)
	}
	for _, mw := range w.maint {
		if mw.Start.After(cur) && (end.IsZero() || mw.Start.Before(end)) {
			end = mw.Start.UTC()
		}
	}
	return end
}

// Walk advances start by minutes of working time and returns the final
// instant. Exactly `minutes` of in-shift, non-maintenance time elapse
// between the stabilized start and the result.
func (w *Walker) Walk(start time.Time, minutes int) (time.Time, error) {
	segs, err := w.Segments(start, minutes)
	if err != nil {
		return time.Time{}, err
	}
	if len(segs) == 0 {
		// Zero-duration walk: the answer is the first working moment.
		return w.NextWorkingMoment(start)
	}
	return segs[len(segs)-1].End, nil
}

// Segments performs the same walk as Walk but returns every contiguous
// working interval the duration occupies, in order. The final segment's
// End is the walk result.
func (w *Walker) Segments(start time.Time, minutes int) ([]Segment, error) {
	remaining := time.Duration(minutes) * time.Minute
	if remaining <= 0 {
		return nil, nil
	}

	cur, err := w.NextWorkingMoment(start)
	if err != nil {
		return nil, err
	}

	var segs []Segment
	for i := 0; i < w.opts.SegmentLimit; i++ {
		end := w.segmentEnd(cur)
		if end.IsZero() || !cur.Add(remaining).After(end) {
			// The remainder fits inside this segment.
			segs = append(segs, Segment{Start: cur, End: cur.Add(remaining)})
			return segs, nil
		}

		segs = append(segs, Segment{Start: cur, End: end})
		remaining -= end.Sub(cur)

		cur, err = w.NextWorkingMoment(end)
		if err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("walk from %s exceeded %d working segments: %w",
		start.UTC().Format(time.RFC3339), w.opts.SegmentLimit, ErrNoWorkingTime)
}
