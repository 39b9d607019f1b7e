package model

import "time"

// Budget holds the organization-wide hour budgets. The three values are
// independently settable and are not forced to be mutually consistent.
type Budget struct {
	WeeklyBudget    float64   `firestore:"weeklybudget"`
	QuarterlyBudget float64   `firestore:"quarterlybudget"`
	YearlyBudget    float64   `firestore:"yearlybudget"`
	UpdatedAt       time.Time `firestore:"updatedat,omitempty"`
}
