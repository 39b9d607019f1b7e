package services

import (
	"context"
	"errors"
	"log"

	"taskboard/model"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const userCollection = "users"

// GetUserByID reads one staff record by document id.
func GetUserByID(ctx context.Context, firestoreClient *firestore.Client, userID string) (*model.User, error) {
	doc, err := firestoreClient.Collection(userCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	if user.UserID == "" {
		user.UserID = doc.Ref.ID
	}
	return &user, nil
}

// ListUsers reads every staff record.
func ListUsers(ctx context.Context, firestoreClient *firestore.Client) ([]model.User, error) {
	iter := firestoreClient.Collection(userCollection).Documents(ctx)
	defer iter.Stop()

	var users []model.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var user model.User
		if err := doc.DataTo(&user); err != nil {
			return nil, err
		}
		if user.UserID == "" {
			user.UserID = doc.Ref.ID
		}
		users = append(users, user)
	}
	return users, nil
}

// DeleteUserCascade removes a staff record: the user is detached from every
// task they were assigned to, shifts created for those assignments are
// deleted from WhenIWork, and finally the user document goes away. Individual
// task cleanup failures are logged and skipped so one stale reference cannot
// strand the deletion.
func DeleteUserCascade(ctx context.Context, firestoreClient *firestore.Client, wiw *WhenIWorkClient, userID string) error {
	user, err := GetUserByID(ctx, firestoreClient, userID)
	if err != nil {
		return err
	}

	for _, taskID := range user.AssignedJobIds {
		taskRef := firestoreClient.Collection(taskCollection).Doc(taskID)
		doc, err := taskRef.Get(ctx)
		if err != nil {
			log.Printf("[Users] Task %s not found while deleting %s: %v", taskID, user.FullName, err)
			continue
		}

		var task model.Task
		if err := doc.DataTo(&task); err != nil {
			log.Printf("[Users] Unreadable task %s while deleting %s: %v", taskID, user.FullName, err)
			continue
		}

		updates := []firestore.Update{
			{Path: "assignedto", Value: firestore.ArrayRemove(userID)},
			{Path: "assignedtonames", Value: firestore.ArrayRemove(user.FullName)},
		}

		if shiftID, ok := task.WiwShiftIDs[userID]; ok {
			if err := wiw.DeleteShift(ctx, shiftID); err != nil {
				log.Printf("[Users] Failed to delete WhenIWork shift %d: %v", shiftID, err)
			}
			delete(task.WiwShiftIDs, userID)
			updates = append(updates, firestore.Update{Path: "wiwshiftids", Value: task.WiwShiftIDs})
		}

		if _, err := taskRef.Update(ctx, updates); err != nil {
			log.Printf("[Users] Failed to detach %s from task %s: %v", user.FullName, taskID, err)
		}
	}

	if _, err := firestoreClient.Collection(userCollection).Doc(userID).Delete(ctx); err != nil {
		return err
	}
	log.Printf("[Users] Deleted %s and removed them from %d tasks", user.FullName, len(user.AssignedJobIds))
	return nil
}
