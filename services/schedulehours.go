package services

import (
	"context"
	"log"
	"strings"

	"taskboard/model"
)

// AggregateShiftHours sums shift durations into the three windows. Shifts
// are attributed by their start time. Shifts carrying the task-created note
// marker are excluded: their hours already flow in through the task
// aggregator.
func AggregateShiftHours(shifts []model.WIWShift, win Windows) WindowTotals {
	var totals WindowTotals

	for _, shift := range shifts {
		if strings.Contains(shift.Notes, ShiftNoteMarker) {
			continue
		}
		if shift.StartTime.IsZero() {
			continue
		}
		week, quarter, year := win.Placement(shift.StartTime.Time)
		totals.add(shift.Duration(), week, quarter, year)
	}

	return totals
}

// ScheduledHours returns the schedule-derived hours for one linked WhenIWork
// user across the three windows. A staff member who was never linked to the
// provider carries id 0 and has no schedule there: zero totals, no fetch.
// Any provider failure also degrades to zero totals so the caller can still
// combine with task hours.
func ScheduledHours(ctx context.Context, client *WhenIWorkClient, wiwUserID int64, win Windows) WindowTotals {
	if wiwUserID == 0 {
		return WindowTotals{}
	}
	return rosterHours(ctx, client, wiwUserID, win)
}

// AllScheduledHours sums schedule hours across the whole roster, the
// organization-wide view.
func AllScheduledHours(ctx context.Context, client *WhenIWorkClient, win Windows) WindowTotals {
	return rosterHours(ctx, client, 0, win)
}

func rosterHours(ctx context.Context, client *WhenIWorkClient, wiwUserID int64, win Windows) WindowTotals {
	users, err := client.Roster(ctx)
	if err != nil {
		log.Printf("[Schedule] Shift fetch failed, counting 0 scheduled hours: %v", err)
		return WindowTotals{}
	}

	var totals WindowTotals
	for _, user := range users {
		if wiwUserID != 0 && user.ID != wiwUserID {
			continue
		}
		sub := AggregateShiftHours(user.Shifts, win)
		totals.Week += sub.Week
		totals.Quarter += sub.Quarter
		totals.Year += sub.Year
		totals.WeekCount += sub.WeekCount
		totals.QuarterCount += sub.QuarterCount
		totals.YearCount += sub.YearCount
	}
	return totals
}
