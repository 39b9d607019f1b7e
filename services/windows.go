package services

import (
	"taskboard/model"
	"time"
)

// quarterOrder is the fixed cyclical order the academic calendar follows. A
// quarter ends where the next listed quarter begins.
var quarterOrder = []string{"autumn", "winter", "spring", "summer"}

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Windows bundles the three aggregation windows for a single "now". Quarter
// and Year depend on academic-calendar data and may be absent; Week never is.
type Windows struct {
	Week       Window
	Quarter    Window
	Year       Window
	HasQuarter bool
	HasYear    bool
}

// CurrentWeek returns the week containing now: Sunday 00:00:00 local time
// through the following Sunday, half-open.
func CurrentWeek(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start = start.AddDate(0, 0, -int(now.Weekday()))
	return Window{Start: start, End: start.AddDate(0, 0, 7)}
}

// CurrentQuarter finds the academic quarter containing now. The calendar
// publishes start dates only; a quarter runs until the next quarter present
// in the data, and the last one falls back to September 1 of the year after
// its start. Returns false when the calendar is missing or now falls in a
// gap, which callers treat as "not in any quarter" rather than an error.
func CurrentQuarter(now time.Time, cal *model.QuarterDates) (Window, bool) {
	if cal == nil || len(cal.Quarters) == 0 {
		return Window{}, false
	}

	var starts []time.Time
	for _, name := range quarterOrder {
		if q, ok := cal.Quarters[name]; ok {
			starts = append(starts, q.Start)
		}
	}

	for i, start := range starts {
		var end time.Time
		if i+1 < len(starts) {
			end = starts[i+1]
		} else {
			end = time.Date(start.Year()+1, time.September, 1, 0, 0, 0, 0, start.Location())
		}
		w := Window{Start: start, End: end}
		if w.Contains(now) {
			return w, true
		}
	}
	return Window{}, false
}

// CurrentAcademicYear returns autumn start through autumn start plus one
// year, or false when the calendar has no autumn entry.
func CurrentAcademicYear(now time.Time, cal *model.QuarterDates) (Window, bool) {
	if cal == nil {
		return Window{}, false
	}
	autumn, ok := cal.Quarters["autumn"]
	if !ok {
		return Window{}, false
	}
	return Window{Start: autumn.Start, End: autumn.Start.AddDate(1, 0, 0)}, true
}

// ResolveWindows computes all three windows at once.
func ResolveWindows(now time.Time, cal *model.QuarterDates) Windows {
	win := Windows{Week: CurrentWeek(now)}
	win.Quarter, win.HasQuarter = CurrentQuarter(now, cal)
	win.Year, win.HasYear = CurrentAcademicYear(now, cal)
	return win
}

// Placement reports which windows a dated event lands in. Windows nest: an
// event only counts toward the quarter if it also counts toward the year,
// and toward the week only if it also counts toward the quarter. When a
// calendar-derived window is absent the check degrades to the remaining
// windows, so week attribution keeps working with no calendar data at all.
func (w Windows) Placement(t time.Time) (week, quarter, year bool) {
	year = w.HasYear && w.Year.Contains(t)
	quarter = w.HasQuarter && w.Quarter.Contains(t) && (!w.HasYear || year)
	week = w.Week.Contains(t) && (!w.HasQuarter || quarter)
	return week, quarter, year
}
