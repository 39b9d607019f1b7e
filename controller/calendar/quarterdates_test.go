package calendar

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/model"
	"taskboard/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calendarPage = `<script>
dpuexp.Academic_Calendar.Current_Active = { Rows: [
  {"Academic_x0020_Calendar_x0020_Ye":"2025-2026","LinkTitle":"BEGIN AQ2025 ALL CLASSES","Date":"2025-09-10T00:00:00"},
  {"Academic_x0020_Calendar_x0020_Ye":"2025-2026","LinkTitle":"BEGIN WQ2025 ALL CLASSES","Date":"2026-01-05T00:00:00"}
] }
</script>`

func newTestRouter(cal *services.CalendarService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	QuarterDatesController(router, cal)
	return router
}

func TestQuarterDates_ReturnsParsedCalendar(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, calendarPage)
	}))
	defer upstream.Close()

	router := newTestRouter(&services.CalendarService{HTTPClient: upstream.Client(), URL: upstream.URL})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/quarter-dates", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload model.QuarterDates
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "2025-2026", payload.AcademicYear)
	assert.Contains(t, payload.Quarters, "autumn")
	assert.Contains(t, payload.Quarters, "winter")
}

func TestQuarterDates_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer upstream.Close()

	router := newTestRouter(&services.CalendarService{HTTPClient: upstream.Client(), URL: upstream.URL})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/quarter-dates", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
