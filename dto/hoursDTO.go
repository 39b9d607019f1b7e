package dto

// WindowUsage is the reconciled picture for one window. PercentUsed is
// clamped at 100 for display; Remaining carries the raw over-budget amount.
type WindowUsage struct {
	TaskHours     float64 `json:"taskHours"`
	ScheduleHours float64 `json:"scheduleHours"`
	Used          float64 `json:"used"`
	Budget        float64 `json:"budget"`
	Remaining     float64 `json:"remaining"`
	PercentUsed   float64 `json:"percentUsed"`
	OverBudget    bool    `json:"overBudget"`
	TaskCount     int     `json:"taskCount"`
}

type HoursSummaryResponse struct {
	UserID       string      `json:"userId,omitempty"`
	Mode         string      `json:"mode"`
	AcademicYear string      `json:"academicYear,omitempty"`
	Week         WindowUsage `json:"week"`
	Quarter      WindowUsage `json:"quarter"`
	Year         WindowUsage `json:"year"`
}
