package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"taskboard/model"
)

// ShiftNoteMarker tags shifts this application creates when a task is
// claimed. The schedule aggregator excludes marked shifts so the hours are
// not counted twice, once as a task and once as a shift.
const ShiftNoteMarker = "(Created via Task Board)"

const (
	defaultWIWLoginURL = "https://api.login.wheniwork.com"
	defaultWIWAPIURL   = "https://api.wheniwork.com"

	rosterTTL = 5 * time.Minute
)

// WhenIWorkClient talks to the WhenIWork scheduling API. It holds the
// session explicitly: the first authenticated call logs in, later calls
// reuse the token for the life of the process. The API does not document the
// token lifetime and the upstream integration never refreshed it; if the
// provider ever starts expiring tokens mid-process, calls will fail and the
// aggregator will degrade to zero until restart.
type WhenIWorkClient struct {
	HTTPClient *http.Client
	LoginURL   string
	APIURL     string

	APIKey   string
	Email    string
	Password string

	mu       sync.Mutex
	token    string
	roster   []model.WIWUser
	rosterAt time.Time

	// Held for the duration of a roster refresh so concurrent callers
	// coalesce onto one users+shifts fetch instead of racing the cache.
	fetchMu sync.Mutex
}

// NewWhenIWorkClient builds a client from WHENIWORK_* environment variables.
func NewWhenIWorkClient() *WhenIWorkClient {
	loginURL := os.Getenv("WHENIWORK_LOGIN_URL")
	if loginURL == "" {
		loginURL = defaultWIWLoginURL
	}
	apiURL := os.Getenv("WHENIWORK_API_URL")
	if apiURL == "" {
		apiURL = defaultWIWAPIURL
	}
	return &WhenIWorkClient{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		LoginURL:   loginURL,
		APIURL:     apiURL,
		APIKey:     os.Getenv("WHENIWORK_API_KEY"),
		Email:      os.Getenv("WHENIWORK_EMAIL"),
		Password:   os.Getenv("WHENIWORK_PASSWORD"),
	}
}

// Configured reports whether credentials are present at all. An unconfigured
// client fails every call, which the aggregator absorbs as zero hours.
func (c *WhenIWorkClient) Configured() bool {
	return c.APIKey != "" && c.Email != "" && c.Password != ""
}

// EnsureAuthenticated logs in once and is a no-op while a session token is
// held. Safe to call before every request.
func (c *WhenIWorkClient) EnsureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return nil
	}
	return c.login(ctx)
}

// login must be called with c.mu held.
func (c *WhenIWorkClient) login(ctx context.Context) error {
	if !c.Configured() {
		return fmt.Errorf("WhenIWork credentials not configured")
	}

	body, err := json.Marshal(map[string]string{
		"email":    c.Email,
		"password": c.Password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.LoginURL+"/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("W-Key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("WhenIWork login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("WhenIWork login failed: %d", resp.StatusCode)
	}

	var login model.WIWLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	if login.Token == "" {
		return fmt.Errorf("WhenIWork login returned no token")
	}

	c.token = login.Token
	log.Println("[WhenIWork] Login successful")
	return nil
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *WhenIWorkClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	u := c.APIURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	req.Header.Set("W-Token", c.token)
	c.mu.Unlock()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("WhenIWork GET %s failed: %d %s", path, resp.StatusCode, msg)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ListUsers fetches the full WhenIWork staff list.
func (c *WhenIWorkClient) ListUsers(ctx context.Context) ([]model.WIWUser, error) {
	var out model.WIWUsersResponse
	if err := c.get(ctx, "/2/users", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	log.Printf("[WhenIWork] Fetched %d users", len(out.Users))
	return out.Users, nil
}

// ListShifts fetches every shift whose start falls in [start, end].
func (c *WhenIWorkClient) ListShifts(ctx context.Context, start, end time.Time) ([]model.WIWShift, error) {
	query := url.Values{}
	query.Set("start", start.Format("2006-01-02"))
	query.Set("end", end.Format("2006-01-02"))

	var out model.WIWShiftsResponse
	if err := c.get(ctx, "/2/shifts", query, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	log.Printf("[WhenIWork] Fetched %d shifts", len(out.Shifts))
	return out.Shifts, nil
}

// CreateShift schedules a shift for a WhenIWork user and returns its id.
// Callers creating shifts on behalf of task assignment must include
// ShiftNoteMarker in notes.
func (c *WhenIWorkClient) CreateShift(ctx context.Context, wiwUserID int64, start, end time.Time, notes string) (int64, error) {
	if err := c.EnsureAuthenticated(ctx); err != nil {
		return 0, err
	}

	body, err := json.Marshal(map[string]interface{}{
		"user_id":    wiwUserID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
		"notes":      notes,
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+"/2/shifts", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	req.Header.Set("W-Token", c.token)
	c.mu.Unlock()
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("WhenIWork shift create failed: %d", resp.StatusCode)
	}

	var out model.WIWShiftResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.Shift.ID, nil
}

// DeleteShift removes a shift, typically one this application created when a
// task was claimed and later unclaimed.
func (c *WhenIWorkClient) DeleteShift(ctx context.Context, shiftID int64) error {
	if err := c.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/2/shifts/%d", c.APIURL, shiftID), nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	req.Header.Set("W-Token", c.token)
	c.mu.Unlock()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("WhenIWork shift delete failed: %d", resp.StatusCode)
	}
	return nil
}

// Roster returns every WhenIWork user with their shifts for the current
// academic year attached. One users call plus one wide shifts call, cached
// briefly so a burst of hours requests does not refetch.
func (c *WhenIWorkClient) Roster(ctx context.Context) ([]model.WIWUser, error) {
	if cached, ok := c.cachedRoster(); ok {
		return cached, nil
	}

	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()

	// A concurrent caller may have refreshed while this one waited.
	if cached, ok := c.cachedRoster(); ok {
		return cached, nil
	}

	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	start, end := academicYearFetchRange(time.Now())
	shifts, err := c.ListShifts(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byUser := make(map[int64]int, len(users))
	for i := range users {
		byUser[users[i].ID] = i
	}
	for _, shift := range shifts {
		if i, ok := byUser[shift.UserID]; ok {
			users[i].Shifts = append(users[i].Shifts, shift)
		}
	}
	log.Printf("[WhenIWork] Associated %d shifts with %d users", len(shifts), len(users))

	c.mu.Lock()
	c.roster = users
	c.rosterAt = time.Now()
	c.mu.Unlock()
	return users, nil
}

func (c *WhenIWorkClient) cachedRoster() ([]model.WIWUser, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.roster != nil && time.Since(c.rosterAt) < rosterTTL {
		return c.roster, true
	}
	return nil, false
}

// academicYearFetchRange is the wide window the roster query covers: August 1
// at the top of the academic year containing now, through the following
// August 31.
func academicYearFetchRange(now time.Time) (time.Time, time.Time) {
	year := now.Year()
	if now.Month() < time.August {
		year--
	}
	start := time.Date(year, time.August, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(year+1, time.August, 31, 0, 0, 0, 0, now.Location())
	return start, end
}
