package model

import (
	"time"
)

type Task struct {
	TaskID              string           `firestore:"taskid,omitempty"`
	Title               string           `firestore:"title,omitempty"`
	Description         string           `firestore:"description,omitempty"`
	Category            string           `firestore:"category,omitempty"`
	Icon                string           `firestore:"icon,omitempty"`
	Location            string           `firestore:"location,omitempty"`
	LocationColor       string           `firestore:"locationcolor,omitempty"`
	Hours               float64          `firestore:"hours"`
	Due                 *time.Time       `firestore:"due,omitempty"`
	Completed           bool             `firestore:"completed"`
	CompletedDate       *time.Time       `firestore:"completeddate,omitempty"`
	WorkerSlots         int              `firestore:"workerslots,omitempty"`
	AssignedTo          []string         `firestore:"assignedto,omitempty"`
	AssignedToNames     []string         `firestore:"assignedtonames,omitempty"`
	IsPriority          bool             `firestore:"ispriority,omitempty"`
	Nonflexible         bool             `firestore:"nonflexible,omitempty"`
	Recurring           bool             `firestore:"recurring,omitempty"`
	RecurrenceFrequency string           `firestore:"recurrencefrequency,omitempty"` // daily, weekly, biweekly, monthly, custom
	RecurrenceDays      []int            `firestore:"recurrencedays,omitempty"`      // weekday numbers for custom recurrence (0 = Sunday)
	WiwShiftIDs         map[string]int64 `firestore:"wiwshiftids,omitempty"`         // userid -> WhenIWork shift created on claim
	CreatedBy           string           `firestore:"createdby,omitempty"`
	CreatedAt           time.Time        `firestore:"createdat,omitempty"`
	UpdatedAt           time.Time        `firestore:"updatedat,omitempty"`
}

// AssignedToUser reports whether the task is claimed by the given user.
func (t Task) AssignedToUser(userID string) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}
