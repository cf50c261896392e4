package timewalk

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/reflowgo/internal/model"
	"github.com/vk/reflowgo/internal/shiftcal"
)

func weekdayCalendar() *shiftcal.Calendar {
	var shifts []model.Shift
	for day := time.Monday; day <= time.Friday; day++ {
		shifts = append(shifts, model.Shift{Day: day, StartHour: 8, EndHour: 17})
	}
	return shiftcal.New(shifts)
}

// 2026-03-02 is a Monday.
func at(day, hour, min int) time.Time {
	return time.Date(2026, 3, day, hour, min, 0, 0, time.UTC)
}

func TestWalkSpillsAcrossDays(t *testing.T) {
	// 120 minutes starting Monday 16:00 against a Mon-Fri 08:00-17:00
	// calendar: one hour today, one hour tomorrow morning.
	w := New(weekdayCalendar(), nil, Options{})

	end, err := w.Walk(at(2, 16, 0), 120)
	require.NoError(t, err)
	assert.Equal(t, at(3, 9, 0), end)

	segs, err := w.Segments(at(2, 16, 0), 120)
	require.NoError(t, err)
	want := []Segment{
		{Start: at(2, 16, 0), End: at(2, 17, 0)},
		{Start: at(3, 8, 0), End: at(3, 9, 0)},
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 60, segs[0].Minutes())
	assert.Equal(t, 60, segs[1].Minutes())
}

func TestWalkFitsWithinSegment(t *testing.T) {
	w := New(weekdayCalendar(), nil, Options{})

	end, err := w.Walk(at(2, 9, 0), 90)
	require.NoError(t, err)
	assert.Equal(t, at(2, 10, 30), end)
}

func TestWalkRoutesAroundMaintenance(t *testing.T) {
	maint := []model.MaintenanceWindow{
		{Start: at(2, 10, 0), End: at(2, 12, 0), Reason: "inspection"},
	}
	w := New(weekdayCalendar(), maint, Options{})

	t.Run("work pauses across the window", func(t *testing.T) {
		// 09:00 + 180 working minutes: one hour before the window, two
		// hours after it.
		end, err := w.Walk(at(2, 9, 0), 180)
		require.NoError(t, err)
		assert.Equal(t, at(2, 14, 0), end)
	})

	t.Run("start inside the window jumps to its end", func(t *testing.T) {
		end, err := w.Walk(at(2, 10, 30), 60)
		require.NoError(t, err)
		assert.Equal(t, at(2, 13, 0), end)
	})

	t.Run("window end boundary is free", func(t *testing.T) {
		moment, err := w.NextWorkingMoment(at(2, 12, 0))
		require.NoError(t, err)
		assert.Equal(t, at(2, 12, 0), moment)
	})
}

func TestWalkNoShiftsStillHonorsMaintenance(t *testing.T) {
	// A center with no shifts is always available, but maintenance
	// windows still block it.
	maint := []model.MaintenanceWindow{
		{Start: at(2, 1, 0), End: at(2, 2, 0)},
	}
	w := New(shiftcal.New(nil), maint, Options{})

	end, err := w.Walk(at(2, 0, 0), 120)
	require.NoError(t, err)
	assert.Equal(t, at(2, 3, 0), end)
}

func TestWalkNoShiftsNoMaintenanceIsWallClock(t *testing.T) {
	w := New(shiftcal.New(nil), nil, Options{})

	end, err := w.Walk(at(2, 22, 0), 240)
	require.NoError(t, err)
	assert.Equal(t, at(3, 2, 0), end)
}

func TestWalkZeroDuration(t *testing.T) {
	w := New(weekdayCalendar(), nil, Options{})

	t.Run("already at a working moment", func(t *testing.T) {
		end, err := w.Walk(at(2, 9, 0), 0)
		require.NoError(t, err)
		assert.Equal(t, at(2, 9, 0), end)
	})

	t.Run("outside shifts snaps forward", func(t *testing.T) {
		end, err := w.Walk(at(2, 5, 0), 0)
		require.NoError(t, err)
		assert.Equal(t, at(2, 8, 0), end)
	})
}

func TestWalkExhaustsOnDegenerateCalendar(t *testing.T) {
	// A shift whose start equals its end contains no instant, so the
	// stabilization loop can never settle.
	cal := shiftcal.New([]model.Shift{{Day: time.Monday, StartHour: 8, EndHour: 8}})
	w := New(cal, nil, Options{StabilizeLimit: 50})

	_, err := w.Walk(at(2, 0, 0), 60)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoWorkingTime)
}

func TestWalkExhaustsWhenMaintenanceCoversEverything(t *testing.T) {
	// A long run of day-sized maintenance windows: every stabilization
	// jump lands inside the next window until the limit trips.
	var maint []model.MaintenanceWindow
	for day := 0; day < 60; day++ {
		maint = append(maint, model.MaintenanceWindow{
			Start: at(2, 0, 0).AddDate(0, 0, day),
			End:   at(2, 0, 0).AddDate(0, 0, day+1),
		})
	}
	w := New(weekdayCalendar(), maint, Options{StabilizeLimit: 40})

	_, err := w.Walk(at(2, 9, 0), 60)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoWorkingTime)
}
