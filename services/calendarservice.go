package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"regexp"
	"sync"
	"time"

	"taskboard/model"
)

const (
	defaultCalendarURL = "https://academics.depaul.edu/calendar/Pages/default.aspx"
	calendarTTL        = 6 * time.Hour
)

// calendarRow is one entry of the JSON blob embedded in the university
// calendar page. The field names are SharePoint's encoded column names.
type calendarRow struct {
	AcademicYear string `json:"Academic_x0020_Calendar_x0020_Ye"`
	EventType    string `json:"Event_x0020_Type"`
	LinkTitle    string `json:"LinkTitle"`
	Date         string `json:"Date"`
}

var calendarRowsPattern = regexp.MustCompile(`(?s)dpuexp\.Academic_Calendar\.Current_Active\s*=\s*\{\s*Rows:\s*(\[.*?\])\s*\}`)

// quarterAbbrevs maps quarter names to the abbreviations used in calendar
// event titles, e.g. "BEGIN AQ2025 ALL CLASSES".
var quarterAbbrevs = map[string]string{
	"Autumn": "AQ",
	"Winter": "WQ",
	"Spring": "SQ",
	"Summer": "SUMMER",
}

// CalendarService fetches academic quarter start dates from the university
// calendar page. Best-effort: callers must tolerate a nil or partial result.
type CalendarService struct {
	HTTPClient *http.Client
	URL        string

	mu       sync.Mutex
	cached   *model.QuarterDates
	cachedAt time.Time
}

func NewCalendarService() *CalendarService {
	url := os.Getenv("ACADEMIC_CALENDAR_URL")
	if url == "" {
		url = defaultCalendarURL
	}
	return &CalendarService{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		URL:        url,
	}
}

// CurrentAcademicCalendar returns quarter start dates for the active
// academic year, cached for a few hours since every hours request needs
// them and the source page changes rarely.
func (s *CalendarService) CurrentAcademicCalendar(ctx context.Context) (*model.QuarterDates, error) {
	s.mu.Lock()
	if s.cached != nil && time.Since(s.cachedAt) < calendarTTL {
		cached := s.cached
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar fetch failed: %d", resp.StatusCode)
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	quarters, err := parseQuarterDates(html, time.Now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = quarters
	s.cachedAt = time.Now()
	s.mu.Unlock()
	return quarters, nil
}

// parseQuarterDates extracts quarter start dates from the calendar page.
func parseQuarterDates(html []byte, now time.Time) (*model.QuarterDates, error) {
	match := calendarRowsPattern.FindSubmatch(html)
	if match == nil {
		return nil, fmt.Errorf("could not find academic calendar data in page")
	}

	var rows []calendarRow
	if err := json.Unmarshal(match[1], &rows); err != nil {
		return nil, fmt.Errorf("failed to parse calendar data: %w", err)
	}
	log.Printf("[Calendar] Found %d calendar entries", len(rows))

	// August onward belongs to the academic year that just started.
	var requested string
	if now.Month() >= time.August {
		requested = fmt.Sprintf("%d-%d", now.Year(), now.Year()+1)
	} else {
		requested = fmt.Sprintf("%d-%d", now.Year()-1, now.Year())
	}

	years := make(map[string]bool)
	for _, row := range rows {
		if row.AcademicYear != "" {
			years[row.AcademicYear] = true
		}
	}

	target := requested
	if !years[requested] {
		// Fall back to the newest year the page actually lists.
		target = ""
		for year := range years {
			if year > target {
				target = year
			}
		}
		if target == "" {
			return nil, fmt.Errorf("no academic years found in calendar data")
		}
		log.Printf("[Calendar] Academic year %s not found, using %s", requested, target)
	}

	var yearRows []calendarRow
	for _, row := range rows {
		if row.AcademicYear == target {
			yearRows = append(yearRows, row)
		}
	}

	// All quarters in an academic year are named with its start year,
	// e.g. "2025-2026" quarters are AQ2025, WQ2025 and so on.
	startYear := target
	if i := len("2006"); len(target) > i {
		startYear = target[:i]
	}

	quarters := make(map[string]model.QuarterInfo)
	for name, abbrev := range quarterAbbrevs {
		pattern := regexp.MustCompile(fmt.Sprintf(`(?i)BEGIN %s\s*%s`, abbrev, startYear))
		for _, row := range yearRows {
			if !pattern.MatchString(row.LinkTitle) {
				continue
			}
			start, err := parseCalendarDate(row.Date)
			if err != nil {
				log.Printf("[Calendar] Unparseable date %q for %s: %v", row.Date, name, err)
				break
			}
			quarters[quarterKey(name)] = model.QuarterInfo{Start: start, Name: name}
			break
		}
	}
	log.Printf("[Calendar] Extracted %d quarter start dates for %s", len(quarters), target)

	return &model.QuarterDates{
		AcademicYear:  target,
		RequestedYear: requested,
		Quarters:      quarters,
		FetchedAt:     time.Now(),
	}, nil
}

func quarterKey(name string) string {
	switch name {
	case "Autumn":
		return "autumn"
	case "Winter":
		return "winter"
	case "Spring":
		return "spring"
	default:
		return "summer"
	}
}

var calendarDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006",
}

func parseCalendarDate(s string) (time.Time, error) {
	for _, layout := range calendarDateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized calendar date %q", s)
}
