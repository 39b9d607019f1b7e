package services

import (
	"log"
	"time"

	"taskboard/model"
)

// CountMode selects which tasks the aggregator counts.
type CountMode int

const (
	// CompletedOnly counts completed tasks, dated by completion.
	CompletedOnly CountMode = iota
	// CompletedPlusActive additionally counts unfinished tasks, dated by
	// their due date. A completed task is never also counted as active.
	CompletedPlusActive
)

func (m CountMode) String() string {
	if m == CompletedPlusActive {
		return "all"
	}
	return "completed"
}

// WindowTotals are summed hours per window, with the number of contributing
// entries kept for diagnostics.
type WindowTotals struct {
	Week    float64
	Quarter float64
	Year    float64

	WeekCount    int
	QuarterCount int
	YearCount    int
}

func (t *WindowTotals) add(hours float64, week, quarter, year bool) {
	if year {
		t.Year += hours
		t.YearCount++
	}
	if quarter {
		t.Quarter += hours
		t.QuarterCount++
	}
	if week {
		t.Week += hours
		t.WeekCount++
	}
}

// taskEventDate picks the date a task is attributed with, or false when the
// task has no usable date and contributes nothing. Completed tasks use their
// completion date, falling back to the due date for legacy records that were
// completed before completion timestamps existed.
func taskEventDate(task model.Task) (time.Time, bool) {
	if task.Completed {
		if task.CompletedDate != nil {
			return *task.CompletedDate, true
		}
		if task.Due != nil {
			log.Printf("[TaskHours] Task %q completed with no completion date, using due date", task.Title)
			return *task.Due, true
		}
		log.Printf("[TaskHours] Task %q completed with no completion or due date, skipping", task.Title)
		return time.Time{}, false
	}
	if task.Due != nil {
		return *task.Due, true
	}
	return time.Time{}, false
}

// AggregateTaskHours sums task hours into the week/quarter/year windows.
// staffIDs filters to tasks assigned to any of the given users; nil or empty
// means every task (the organization-wide view). Hours below zero never
// occur in practice, but are clamped to zero rather than subtracting.
func AggregateTaskHours(tasks []model.Task, staffIDs []string, win Windows, mode CountMode) WindowTotals {
	var totals WindowTotals

	for _, task := range tasks {
		if len(staffIDs) > 0 && !assignedToAny(task, staffIDs) {
			continue
		}
		if !task.Completed && mode != CompletedPlusActive {
			continue
		}

		date, ok := taskEventDate(task)
		if !ok {
			continue
		}

		hours := task.Hours
		if hours < 0 {
			hours = 0
		}

		week, quarter, year := win.Placement(date)
		totals.add(hours, week, quarter, year)
	}

	return totals
}

func assignedToAny(task model.Task, staffIDs []string) bool {
	for _, id := range staffIDs {
		if task.AssignedToUser(id) {
			return true
		}
	}
	return false
}
