package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"taskboard/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestWIWClient wires a client against fake login and API servers so no
// network is hit.
func newTestWIWClient(t *testing.T, api http.Handler) (*WhenIWorkClient, *int) {
	t.Helper()

	logins := 0
	loginSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("W-Key"))
		logins++
		json.NewEncoder(w).Encode(model.WIWLoginResponse{Token: "test-token"})
	}))
	t.Cleanup(loginSrv.Close)

	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	return &WhenIWorkClient{
		HTTPClient: apiSrv.Client(),
		LoginURL:   loginSrv.URL,
		APIURL:     apiSrv.URL,
		APIKey:     "test-key",
		Email:      "test@example.com",
		Password:   "secret",
	}, &logins
}

func TestEnsureAuthenticated_LogsInOnce(t *testing.T) {
	client, logins := newTestWIWClient(t, http.NotFoundHandler())
	ctx := context.Background()

	require.NoError(t, client.EnsureAuthenticated(ctx))
	require.NoError(t, client.EnsureAuthenticated(ctx))
	require.NoError(t, client.EnsureAuthenticated(ctx))

	assert.Equal(t, 1, *logins)
}

func TestEnsureAuthenticated_Unconfigured(t *testing.T) {
	client := &WhenIWorkClient{HTTPClient: http.DefaultClient}
	err := client.EnsureAuthenticated(context.Background())
	assert.Error(t, err)
	assert.False(t, client.Configured())
}

func TestRoster_AssociatesShiftsAndCaches(t *testing.T) {
	apiCalls := 0
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-token", r.Header.Get("W-Token"))
		apiCalls++
		switch r.URL.Path {
		case "/2/users":
			json.NewEncoder(w).Encode(model.WIWUsersResponse{Users: []model.WIWUser{
				{ID: 1, FirstName: "Ada"},
				{ID: 2, FirstName: "Grace"},
			}})
		case "/2/shifts":
			require.NotEmpty(t, r.URL.Query().Get("start"))
			require.NotEmpty(t, r.URL.Query().Get("end"))
			json.NewEncoder(w).Encode(model.WIWShiftsResponse{Shifts: []model.WIWShift{
				{ID: 10, UserID: 1, Hours: 4},
				{ID: 11, UserID: 1, Hours: 2},
				{ID: 12, UserID: 2, Hours: 3},
				{ID: 13, UserID: 99, Hours: 8}, // no matching user
			}})
		default:
			http.NotFound(w, r)
		}
	})

	client, _ := newTestWIWClient(t, api)
	ctx := context.Background()

	users, err := client.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Len(t, users[0].Shifts, 2)
	assert.Len(t, users[1].Shifts, 1)

	// A second call inside the TTL is served from cache.
	_, err = client.Roster(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, apiCalls)
}

func TestScheduledHours_DegradesToZeroOnFailure(t *testing.T) {
	client := &WhenIWorkClient{HTTPClient: http.DefaultClient}
	win := ResolveWindows(time.Now(), nil)

	assert.Equal(t, WindowTotals{}, ScheduledHours(context.Background(), client, 7, win))
	assert.Equal(t, WindowTotals{}, AllScheduledHours(context.Background(), client, win))
}

// rosterAPI serves two users with 4h and 6h shifts in the given week and
// counts how many API requests arrive.
func rosterAPI(now time.Time, calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		switch r.URL.Path {
		case "/2/users":
			json.NewEncoder(w).Encode(model.WIWUsersResponse{Users: []model.WIWUser{
				{ID: 1}, {ID: 2},
			}})
		case "/2/shifts":
			json.NewEncoder(w).Encode(model.WIWShiftsResponse{Shifts: []model.WIWShift{
				{ID: 10, UserID: 1, StartTime: wiwTime(now), Hours: 4},
				{ID: 11, UserID: 2, StartTime: wiwTime(now), Hours: 6},
			}})
		default:
			http.NotFound(w, r)
		}
	})
}

func TestScheduledHours_FiltersByUser(t *testing.T) {
	now := time.Date(2026, time.January, 14, 9, 0, 0, 0, time.Local)
	calls := 0
	client, _ := newTestWIWClient(t, rosterAPI(now, &calls))
	win := ResolveWindows(now, testCalendar())

	totals := ScheduledHours(context.Background(), client, 1, win)
	assert.Equal(t, 4.0, totals.Week)

	totals = AllScheduledHours(context.Background(), client, win)
	assert.Equal(t, 10.0, totals.Week)
}

// A staff member never linked to WhenIWork must not be handed the whole
// roster's hours: their schedule side is zero, and the provider is not even
// contacted.
func TestScheduledHours_UnlinkedUserCountsZero(t *testing.T) {
	now := time.Date(2026, time.January, 14, 9, 0, 0, 0, time.Local)
	calls := 0
	client, logins := newTestWIWClient(t, rosterAPI(now, &calls))
	win := ResolveWindows(now, testCalendar())

	totals := ScheduledHours(context.Background(), client, 0, win)
	assert.Equal(t, WindowTotals{}, totals)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, *logins)
}

func TestRoster_ConcurrentCallsCoalesce(t *testing.T) {
	now := time.Date(2026, time.January, 14, 9, 0, 0, 0, time.Local)
	calls := 0
	client, _ := newTestWIWClient(t, rosterAPI(now, &calls))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			users, err := client.Roster(ctx)
			assert.NoError(t, err)
			assert.Len(t, users, 2)
		}()
	}
	wg.Wait()

	// One users call plus one shifts call, regardless of caller count.
	assert.Equal(t, 2, calls)
}

func TestCreateAndDeleteShift(t *testing.T) {
	var createdNotes string
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/2/shifts":
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			createdNotes, _ = body["notes"].(string)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(model.WIWShiftResponse{Shift: model.WIWShift{ID: 42}})
		case r.Method == http.MethodDelete && r.URL.Path == "/2/shifts/42":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})

	client, _ := newTestWIWClient(t, api)
	ctx := context.Background()

	start := time.Date(2026, time.January, 14, 9, 0, 0, 0, time.Local)
	id, err := client.CreateShift(ctx, 7, start, start.Add(3*time.Hour), "Sweep the shop "+ShiftNoteMarker)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Contains(t, createdNotes, ShiftNoteMarker)

	require.NoError(t, client.DeleteShift(ctx, id))
}

func TestAcademicYearFetchRange(t *testing.T) {
	// Mid academic year: January belongs to the year that began the
	// previous August.
	start, end := academicYearFetchRange(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.Local))
	assert.Equal(t, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.Local), end)

	// September sits at the top of a new academic year.
	start, end = academicYearFetchRange(time.Date(2025, time.September, 20, 0, 0, 0, 0, time.Local))
	assert.Equal(t, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2026, time.August, 31, 0, 0, 0, 0, time.Local), end)
}
