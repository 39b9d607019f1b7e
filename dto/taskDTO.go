package dto

type CreateTaskRequest struct {
	Title               string  `json:"title" binding:"required"`
	Description         string  `json:"description"`
	Category            string  `json:"category"`
	Icon                string  `json:"icon"`
	Location            string  `json:"location"`
	LocationColor       string  `json:"locationcolor"`
	Hours               float64 `json:"hours" binding:"min=0"`
	Due                 string  `json:"due"` // RFC3339, optional
	WorkerSlots         int     `json:"workerslots"`
	IsPriority          bool    `json:"ispriority"`
	Nonflexible         bool    `json:"nonflexible"`
	Recurring           bool    `json:"recurring"`
	RecurrenceFrequency string  `json:"recurrencefrequency"`
	RecurrenceDays      []int   `json:"recurrencedays"`
	CreatedBy           string  `json:"createdby"`
}

type ClaimTaskRequest struct {
	UserID string `json:"userid" binding:"required"`
}
