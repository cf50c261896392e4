package validate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/reflowgo/internal/model"
)

// 2026-03-02 is a Monday.
func at(day, hour, min int) time.Time {
	return time.Date(2026, 3, day, hour, min, 0, 0, time.UTC)
}

func weekdayCenter(name string, maint ...model.MaintenanceWindow) model.WorkCenter {
	var shifts []model.Shift
	for day := time.Monday; day <= time.Friday; day++ {
		shifts = append(shifts, model.Shift{Day: day, StartHour: 8, EndHour: 17})
	}
	return model.WorkCenter{Name: name, Shifts: shifts, Maintenance: maint}
}

func index(t *testing.T, centers ...model.WorkCenter) map[string]*model.WorkCenter {
	t.Helper()
	idx, err := model.IndexCenters(centers)
	require.NoError(t, err)
	return idx
}

func kinds(report model.Report) []model.ViolationKind {
	out := make([]model.ViolationKind, len(report.Violations))
	for i, v := range report.Violations {
		out[i] = v.Kind
	}
	return out
}

func TestValidScheduleProducesEmptyReport(t *testing.T) {
	centers := index(t, weekdayCenter("mill"))
	orders := []model.WorkOrder{
		{ID: "a", WorkCenter: "mill", Start: at(2, 8, 0), End: at(2, 9, 0), DurationMinutes: 60},
		{ID: "b", WorkCenter: "mill", Start: at(2, 9, 0), End: at(2, 10, 0), DurationMinutes: 60, DependsOn: []string{"a"}},
	}

	report := Schedule(context.Background(), orders, centers)
	assert.True(t, report.Valid())
	assert.Empty(t, report.Violations)
}

func TestCenterConflictDetected(t *testing.T) {
	centers := index(t, weekdayCenter("mill"))
	orders := []model.WorkOrder{
		{ID: "a", WorkCenter: "mill", Start: at(2, 8, 0), End: at(2, 10, 0), DurationMinutes: 120},
		{ID: "b", WorkCenter: "mill", Start: at(2, 9, 0), End: at(2, 10, 0), DurationMinutes: 60},
	}

	report := Schedule(context.Background(), orders, centers)
	assert.False(t, report.Valid())
	assert.Contains(t, kinds(report), model.ViolationCenterConflict)
}

func TestBackToBackIsNotAConflict(t *testing.T) {
	// Half-open intervals: earlier.End == later.Start is legal.
	centers := index(t, weekdayCenter("mill"))
	orders := []model.WorkOrder{
		{ID: "a", WorkCenter: "mill", Start: at(2, 8, 0), End: at(2, 9, 0), DurationMinutes: 60},
		{ID: "b", WorkCenter: "mill", Start: at(2, 9, 0), End: at(2, 10, 0), DurationMinutes: 60},
	}

	report := Schedule(context.Background(), orders, centers)
	assert.True(t, report.Valid())
}

func TestDependencyViolations(t *testing.T) {
	centers := index(t, weekdayCenter("mill"), weekdayCenter("lathe"))

	t.Run("start before dependency end", func(t *testing.T) {
		orders := []model.WorkOrder{
			{ID: "a", WorkCenter: "mill", Start: at(2, 8, 0), End: at(2, 10, 0), DurationMinutes: 120},
			{ID: "b", WorkCenter: "lathe", Start: at(2, 9, 0), End: at(2, 10, 0), DurationMinutes: 60, DependsOn: []string{"a"}},
		}
		report := Schedule(context.Background(), orders, centers)
		assert.Contains(t, kinds(report), model.ViolationDependency)
	})

	t.Run("unknown dependency id is reported", func(t *testing.T) {
		orders := []model.WorkOrder{
			{ID: "b", WorkCenter: "mill", Start: at(2, 8, 0), End: at(2, 9, 0), DurationMinutes: 60, DependsOn: []string{"ghost"}},
		}
		report := Schedule(context.Background(), orders, centers)
		assert.Contains(t, kinds(report), model.ViolationDependency)
	})
}

func TestConformanceViolations(t *testing.T) {
	centers := index(t, weekdayCenter("mill"))

	t.Run("start outside shift hours", func(t *testing.T) {
		sunday := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		orders := []model.WorkOrder{
			{ID: "a", WorkCenter: "mill", Start: sunday, End: sunday.Add(time.Hour), DurationMinutes: 60},
		}
		report := Schedule(context.Background(), orders, centers)
		assert.Contains(t, kinds(report), model.ViolationConformance)
	})

	t.Run("stored end disagrees with the time walk", func(t *testing.T) {
		orders := []model.WorkOrder{
			{ID: "a", WorkCenter: "mill", Start: at(2, 8, 0), End: at(2, 11, 0), DurationMinutes: 60},
		}
		report := Schedule(context.Background(), orders, centers)
		assert.Contains(t, kinds(report), model.ViolationConformance)
	})

	t.Run("sub-minute rounding is tolerated", func(t *testing.T) {
		orders := []model.WorkOrder{
			{ID: "a", WorkCenter: "mill", Start: at(2, 8, 0), End: at(2, 9, 0).Add(30 * time.Second), DurationMinutes: 60},
		}
		report := Schedule(context.Background(), orders, centers)
		assert.True(t, report.Valid())
	})

	t.Run("unknown work center is a reference violation", func(t *testing.T) {
		orders := []model.WorkOrder{
			{ID: "a", WorkCenter: "ghost", Start: at(2, 8, 0), End: at(2, 9, 0), DurationMinutes: 60},
		}
		report := Schedule(context.Background(), orders, centers)
		assert.Contains(t, kinds(report), model.ViolationReference)
	})
}

func TestMaintenanceBoundViolations(t *testing.T) {
	window := model.MaintenanceWindow{Start: at(2, 10, 0), End: at(2, 12, 0)}
	centers := index(t, weekdayCenter("mill", window))

	t.Run("start inside a window", func(t *testing.T) {
		orders := []model.WorkOrder{
			{ID: "a", WorkCenter: "mill", Start: at(2, 10, 30), End: at(2, 13, 0), DurationMinutes: 60},
		}
		report := Schedule(context.Background(), orders, centers)
		assert.Contains(t, kinds(report), model.ViolationMaintenance)
	})

	t.Run("spanning the window is legal when the walk agrees", func(t *testing.T) {
		// 180 working minutes from 09:00 pause for the window and finish
		// at 14:00; the interval spans the window without working in it.
		orders := []model.WorkOrder{
			{ID: "a", WorkCenter: "mill", Start: at(2, 9, 0), End: at(2, 14, 0), DurationMinutes: 180},
		}
		report := Schedule(context.Background(), orders, centers)
		assert.True(t, report.Valid(), "violations: %v", report.Messages())
	})
}

func TestMaintenanceOrdersAreOnlyConflictChecked(t *testing.T) {
	centers := index(t, weekdayCenter("mill"))

	t.Run("outside shift hours is fine for maintenance orders", func(t *testing.T) {
		saturday := time.Date(2026, 3, 7, 2, 0, 0, 0, time.UTC)
		orders := []model.WorkOrder{
			{ID: "pm-1", WorkCenter: "mill", Start: saturday, End: saturday.Add(2 * time.Hour), Maintenance: true},
		}
		report := Schedule(context.Background(), orders, centers)
		assert.True(t, report.Valid())
	})

	t.Run("but they still collide on the center", func(t *testing.T) {
		orders := []model.WorkOrder{
			{ID: "pm-1", WorkCenter: "mill", Start: at(2, 8, 0), End: at(2, 10, 0), Maintenance: true},
			{ID: "a", WorkCenter: "mill", Start: at(2, 9, 0), End: at(2, 10, 0), DurationMinutes: 60},
		}
		report := Schedule(context.Background(), orders, centers)
		assert.Contains(t, kinds(report), model.ViolationCenterConflict)
	})
}

func TestAllChecksRunRegardlessOfEarlierFailures(t *testing.T) {
	centers := index(t, weekdayCenter("mill"))
	sunday := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := []model.WorkOrder{
		// Overlaps b, starts outside shifts, and names a ghost dependency.
		{ID: "a", WorkCenter: "mill", Start: sunday, End: at(2, 9, 0), DurationMinutes: 60, DependsOn: []string{"ghost"}},
		{ID: "b", WorkCenter: "mill", Start: at(2, 8, 30), End: at(2, 9, 30), DurationMinutes: 60},
	}

	report := Schedule(context.Background(), orders, centers)
	got := kinds(report)
	assert.Contains(t, got, model.ViolationCenterConflict)
	assert.Contains(t, got, model.ViolationDependency)
	assert.Contains(t, got, model.ViolationConformance)
}
