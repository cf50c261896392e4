// Package shiftcal answers pure calendar questions about a work center's
// weekly shift table: is an instant inside a shift, when does the current
// shift segment end, and when does the next shift start.
package shiftcal

import (
	"time"

	"github.com/vk/reflowgo/internal/model"
)

// nextStartHorizonDays bounds the forward search for a shift start. Eight
// calendar days cover a full week plus the starting day with margin, so any
// non-empty shift table yields a start within the horizon.
const nextStartHorizonDays = 8

// Calendar wraps one work center's shift table. A Calendar with no shifts
// means "always available"; callers must check Empty before treating shift
// boundaries as meaningful.
type Calendar struct {
	shifts []model.Shift
}

// New builds a Calendar over the given shifts. The slice is not copied;
// shifts are read-only inputs for the lifetime of the calendar.
func New(shifts []model.Shift) *Calendar {
	return &Calendar{shifts: shifts}
}

// Empty reports whether no shifts are configured.
func (c *Calendar) Empty() bool { return len(c.shifts) == 0 }

// Contains reports whether t falls inside some shift: matching day of week
// and hour of day in [StartHour, EndHour). Minutes within the hour never
// affect containment because shift boundaries are whole hours.
func (c *Calendar) Contains(t time.Time) bool {
	t = t.UTC()
	for _, s := range c.shifts {
		if s.Day == t.Weekday() && t.Hour() >= s.StartHour && t.Hour() < s.EndHour {
			return true
		}
	}
	return false
}

// SegmentEnd returns the instant at which the shift coverage containing t
// runs out on that same calendar day: EndHour:00:00 of the containing
// shift. With overlapping shifts the latest end hour among shifts
// containing t wins, since overlapping shifts union their coverage.
//
// The result is only meaningful when Contains(t) is true.
func (c *Calendar) SegmentEnd(t time.Time) time.Time {
	t = t.UTC()
	endHour := 0
	for _, s := range c.shifts {
		if s.Day == t.Weekday() && t.Hour() >= s.StartHour && t.Hour() < s.EndHour && s.EndHour > endHour {
			endHour = s.EndHour
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), endHour, 0, 0, 0, time.UTC)
}

// NextStart returns the earliest shift start at or after t within the next
// eight calendar days. When no shifts are configured it returns t
// unchanged: absence of shifts means always available, so there is nothing
// to wait for.
func (c *Calendar) NextStart(t time.Time) time.Time {
	t = t.UTC()
	if c.Empty() {
		return t
	}

	var best time.Time
	for offset := 0; offset < nextStartHorizonDays; offset++ {
		day := t.AddDate(0, 0, offset)
		for _, s := range c.shifts {
			if s.Day != day.Weekday() {
				continue
			}
			candidate := time.Date(day.Year(), day.Month(), day.Day(), s.StartHour, 0, 0, 0, time.UTC)
			if candidate.Before(t) {
				continue
			}
			if best.IsZero() || candidate.Before(best) {
				best = candidate
			}
		}
	}
	return best
}
