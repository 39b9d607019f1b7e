package model

import "time"

type User struct {
	UserID         string    `firestore:"userid,omitempty"`
	FullName       string    `firestore:"fullname,omitempty"`
	Email          string    `firestore:"email,omitempty"`
	Role           string    `firestore:"role,omitempty"` // "staff" or "manager"
	AllowedHours   float64   `firestore:"allowedhours"`   // weekly hour budget, 0 when never set
	Skills         []string  `firestore:"skills,omitempty"`
	AssignedJobIds []string  `firestore:"assignedjobids,omitempty"`
	WiwUserID      int64     `firestore:"wiwuserid,omitempty"` // link to the WhenIWork user record
	CreatedAt      time.Time `firestore:"createdat,omitempty"`
}
