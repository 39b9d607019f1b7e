package model

import (
	"fmt"
	"strings"
	"time"
)

// WIWTime unwraps the timestamp strings the WhenIWork API returns, which show
// up either as RFC3339 or as a bare "2006-01-02 15:04:05" local form
// depending on endpoint. Normalized here so nothing past the decode boundary
// has to care.
type WIWTime struct {
	time.Time
}

var wiwTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *WIWTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range wiwTimeLayouts {
		parsed, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized WhenIWork timestamp %q", s)
}

func (t WIWTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Time.Format(time.RFC3339) + `"`), nil
}

type WIWUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`

	// Populated at query time by the schedule aggregator, never sent by the API.
	Shifts []WIWShift `json:"-"`
}

type WIWShift struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	StartTime WIWTime `json:"start_time"`
	EndTime   WIWTime `json:"end_time"`
	Hours     float64 `json:"hours"`
	Notes     string  `json:"notes"`
}

// Duration returns the shift length in hours, preferring the explicit hours
// field over the start/end difference.
func (s WIWShift) Duration() float64 {
	if s.Hours > 0 {
		return s.Hours
	}
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime.Time).Hours()
}

type WIWLoginResponse struct {
	Token  string    `json:"token"`
	Person *WIWUser  `json:"person"`
	User   *WIWUser  `json:"user"`
	Users  []WIWUser `json:"users"`
}

type WIWUsersResponse struct {
	Users []WIWUser `json:"users"`
}

type WIWShiftsResponse struct {
	Shifts []WIWShift `json:"shifts"`
}

type WIWShiftResponse struct {
	Shift WIWShift `json:"shift"`
}
