package model

import "time"

// QuarterInfo is one academic quarter's start date as published by the
// university calendar. Only starts are published; ends are derived.
type QuarterInfo struct {
	Start time.Time `json:"start"`
	Name  string    `json:"name"`
}

// QuarterDates is the academic-calendar payload served to clients and
// consumed by the window resolver. Quarters may be partial or empty when the
// calendar fetch failed or the page changed shape.
type QuarterDates struct {
	AcademicYear  string                 `json:"academicYear"`
	RequestedYear string                 `json:"requestedYear,omitempty"`
	Quarters      map[string]QuarterInfo `json:"quarters"`
	FetchedAt     time.Time              `json:"fetchedAt"`
}
