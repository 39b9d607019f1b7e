package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"taskboard/model"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const taskCollection = "tasks"

// ListTasks reads every task record.
func ListTasks(ctx context.Context, firestoreClient *firestore.Client) ([]model.Task, error) {
	iter := firestoreClient.Collection(taskCollection).Documents(ctx)
	defer iter.Stop()

	var tasks []model.Task
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var task model.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, err
		}
		if task.TaskID == "" {
			task.TaskID = doc.Ref.ID
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// GetTask reads one task by document id.
func GetTask(ctx context.Context, firestoreClient *firestore.Client, taskID string) (*model.Task, error) {
	doc, err := firestoreClient.Collection(taskCollection).Doc(taskID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.New("task not found")
		}
		return nil, err
	}

	var task model.Task
	if err := doc.DataTo(&task); err != nil {
		return nil, err
	}
	if task.TaskID == "" {
		task.TaskID = doc.Ref.ID
	}
	return &task, nil
}

// RecurringResult describes one recurring task that was rolled forward.
type RecurringResult struct {
	TaskID     string    `json:"id"`
	Title      string    `json:"title"`
	OldDueDate time.Time `json:"oldDueDate"`
	NewDueDate time.Time `json:"newDueDate"`
}

// ProcessRecurringTasks advances every recurring task whose due date has
// passed: the due date moves forward by the task's frequency and the task is
// reopened with no assignees, ready to be claimed again.
func ProcessRecurringTasks(ctx context.Context, firestoreClient *firestore.Client) ([]RecurringResult, error) {
	iter := firestoreClient.Collection(taskCollection).Where("recurring", "==", true).Documents(ctx)
	defer iter.Stop()

	now := time.Now()
	var processed []RecurringResult

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var task model.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, err
		}

		if task.Due == nil {
			log.Printf("[Recurring] Skipping %q - no due date", task.Title)
			continue
		}
		if task.Due.After(now) {
			continue
		}

		next := NextRecurrence(*task.Due, task.RecurrenceFrequency, task.RecurrenceDays)

		_, err = doc.Ref.Update(ctx, []firestore.Update{
			{Path: "due", Value: next},
			{Path: "completed", Value: false},
			{Path: "completeddate", Value: firestore.Delete},
			{Path: "assignedto", Value: []string{}},
			{Path: "assignedtonames", Value: []string{}},
		})
		if err != nil {
			return nil, err
		}
		log.Printf("[Recurring] Rolled %q forward to %s", task.Title, next.Format(time.RFC3339))

		processed = append(processed, RecurringResult{
			TaskID:     doc.Ref.ID,
			Title:      task.Title,
			OldDueDate: *task.Due,
			NewDueDate: next,
		})
	}
	return processed, nil
}

// NextRecurrence computes the due date following due for the given
// frequency. Custom recurrence picks the next weekday in days after the
// current one, wrapping into the following week; unknown frequencies fall
// back to weekly.
func NextRecurrence(due time.Time, frequency string, days []int) time.Time {
	switch frequency {
	case "daily":
		return due.AddDate(0, 0, 1)
	case "biweekly":
		return due.AddDate(0, 0, 14)
	case "monthly":
		return due.AddDate(0, 1, 0)
	case "custom":
		if len(days) == 0 {
			return due.AddDate(0, 0, 7)
		}
		sorted := append([]int(nil), days...)
		sort.Ints(sorted)
		current := int(due.Weekday())
		for _, day := range sorted {
			if day > current {
				return due.AddDate(0, 0, day-current)
			}
		}
		return due.AddDate(0, 0, (7-current)+sorted[0])
	default: // weekly
		return due.AddDate(0, 0, 7)
	}
}
