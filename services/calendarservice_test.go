package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calendarFixture = `<html><head><script>
var dpuexp = dpuexp || {};
dpuexp.Academic_Calendar = dpuexp.Academic_Calendar || {};
dpuexp.Academic_Calendar.Current_Active = { Rows: [
  {"Academic_x0020_Calendar_x0020_Ye":"2025-2026","Event_x0020_Type":"Quarter Start","LinkTitle":"BEGIN AQ2025 ALL CLASSES","Date":"2025-09-10T00:00:00"},
  {"Academic_x0020_Calendar_x0020_Ye":"2025-2026","Event_x0020_Type":"Quarter Start","LinkTitle":"BEGIN WQ2025 ALL CLASSES","Date":"2026-01-05T00:00:00"},
  {"Academic_x0020_Calendar_x0020_Ye":"2025-2026","Event_x0020_Type":"Quarter Start","LinkTitle":"BEGIN SQ2025 ALL CLASSES","Date":"2026-03-30T00:00:00"},
  {"Academic_x0020_Calendar_x0020_Ye":"2025-2026","Event_x0020_Type":"Quarter Start","LinkTitle":"BEGIN SUMMER2025 SESSIONS","Date":"2026-06-15T00:00:00"},
  {"Academic_x0020_Calendar_x0020_Ye":"2025-2026","Event_x0020_Type":"Holiday","LinkTitle":"Thanksgiving Holiday","Date":"2025-11-27T00:00:00"},
  {"Academic_x0020_Calendar_x0020_Ye":"2024-2025","Event_x0020_Type":"Quarter Start","LinkTitle":"BEGIN AQ2024 ALL CLASSES","Date":"2024-09-11T00:00:00"}
] }
</script></head><body></body></html>`

func TestParseQuarterDates_ExtractsAllFourQuarters(t *testing.T) {
	now := time.Date(2026, time.January, 14, 0, 0, 0, 0, time.Local)

	cal, err := parseQuarterDates([]byte(calendarFixture), now)
	require.NoError(t, err)

	assert.Equal(t, "2025-2026", cal.AcademicYear)
	assert.Equal(t, "2025-2026", cal.RequestedYear)
	require.Len(t, cal.Quarters, 4)

	assert.Equal(t, time.Date(2025, time.September, 10, 0, 0, 0, 0, time.Local), cal.Quarters["autumn"].Start)
	assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.Local), cal.Quarters["winter"].Start)
	assert.Equal(t, time.Date(2026, time.March, 30, 0, 0, 0, 0, time.Local), cal.Quarters["spring"].Start)
	assert.Equal(t, time.Date(2026, time.June, 15, 0, 0, 0, 0, time.Local), cal.Quarters["summer"].Start)
}

func TestParseQuarterDates_AugustStartsNewAcademicYear(t *testing.T) {
	// In August 2025 the requested year flips to 2025-2026.
	now := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.Local)

	cal, err := parseQuarterDates([]byte(calendarFixture), now)
	require.NoError(t, err)
	assert.Equal(t, "2025-2026", cal.AcademicYear)
}

func TestParseQuarterDates_FallsBackToNewestListedYear(t *testing.T) {
	// July 2025 requests 2024-2025... but suppose only 2025-2026 is listed.
	fixture := `dpuexp.Academic_Calendar.Current_Active = { Rows: [
	  {"Academic_x0020_Calendar_x0020_Ye":"2025-2026","LinkTitle":"BEGIN AQ2025 ALL CLASSES","Date":"2025-09-10T00:00:00"}
	] }`
	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.Local)

	cal, err := parseQuarterDates([]byte(fixture), now)
	require.NoError(t, err)
	assert.Equal(t, "2024-2025", cal.RequestedYear)
	assert.Equal(t, "2025-2026", cal.AcademicYear)
	require.Contains(t, cal.Quarters, "autumn")
}

func TestParseQuarterDates_NoCalendarData(t *testing.T) {
	_, err := parseQuarterDates([]byte("<html>nothing here</html>"), time.Now())
	assert.Error(t, err)
}

func TestCurrentAcademicCalendar_CachesResult(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		fmt.Fprint(w, calendarFixture)
	}))
	defer srv.Close()

	svc := &CalendarService{HTTPClient: srv.Client(), URL: srv.URL}

	first, err := svc.CurrentAcademicCalendar(t.Context())
	require.NoError(t, err)
	second, err := svc.CurrentAcademicCalendar(t.Context())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, fetches)
}

func TestCurrentAcademicCalendar_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := &CalendarService{HTTPClient: srv.Client(), URL: srv.URL}

	_, err := svc.CurrentAcademicCalendar(t.Context())
	assert.Error(t, err)
}
