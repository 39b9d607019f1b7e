package task

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"taskboard/dto"
	"taskboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
)

func ClaimTask(c *gin.Context, firestoreClient *firestore.Client, wiw *services.WhenIWorkClient) {
	taskId := c.Param("id")

	var claimReq dto.ClaimTaskRequest
	if err := c.ShouldBindJSON(&claimReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := context.Background()
	task, err := services.GetTask(ctx, firestoreClient, taskId)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	user, err := services.GetUserByID(ctx, firestoreClient, claimReq.UserID)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	if task.AssignedToUser(user.UserID) {
		c.JSON(http.StatusConflict, gin.H{"error": "You are already assigned to this task"})
		return
	}

	workerSlots := task.WorkerSlots
	if workerSlots < 1 {
		workerSlots = 1
	}
	if len(task.AssignedTo) >= workerSlots {
		c.JSON(http.StatusConflict, gin.H{"error": "All slots for this task are filled"})
		return
	}

	updates := []firestore.Update{
		{Path: "assignedto", Value: firestore.ArrayUnion(user.UserID)},
		{Path: "assignedtonames", Value: firestore.ArrayUnion(user.FullName)},
		{Path: "updatedat", Value: time.Now()},
	}

	// Mirror the assignment into WhenIWork so the shift shows up on the
	// user's schedule. The note marker keeps these shifts out of the
	// schedule aggregator. Best-effort: a provider failure never blocks
	// the claim.
	if user.WiwUserID != 0 && task.Due != nil && task.Hours > 0 {
		start := task.Due.Add(-time.Duration(task.Hours * float64(time.Hour)))
		notes := fmt.Sprintf("%s %s", task.Title, services.ShiftNoteMarker)
		shiftID, err := wiw.CreateShift(ctx, user.WiwUserID, start, *task.Due, notes)
		if err != nil {
			log.Printf("[Tasks] Failed to create WhenIWork shift for %s: %v", user.FullName, err)
		} else {
			shiftIDs := task.WiwShiftIDs
			if shiftIDs == nil {
				shiftIDs = map[string]int64{}
			}
			shiftIDs[user.UserID] = shiftID
			updates = append(updates, firestore.Update{Path: "wiwshiftids", Value: shiftIDs})
		}
	}

	if _, err := firestoreClient.Collection("tasks").Doc(taskId).Update(ctx, updates); err != nil {
		c.JSON(500, gin.H{"error": "Failed to claim task"})
		return
	}

	_, err = firestoreClient.Collection("users").Doc(user.UserID).Update(ctx, []firestore.Update{
		{Path: "assignedjobids", Value: firestore.ArrayUnion(taskId)},
	})
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to update user assignments"})
		return
	}

	log.Printf("[Tasks] Task %s claimed by %s", taskId, user.FullName)
	c.JSON(http.StatusOK, gin.H{"message": "Task claimed successfully"})
}

func UnclaimTask(c *gin.Context, firestoreClient *firestore.Client, wiw *services.WhenIWorkClient) {
	taskId := c.Param("id")

	var claimReq dto.ClaimTaskRequest
	if err := c.ShouldBindJSON(&claimReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := context.Background()
	task, err := services.GetTask(ctx, firestoreClient, taskId)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	user, err := services.GetUserByID(ctx, firestoreClient, claimReq.UserID)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	if !task.AssignedToUser(user.UserID) {
		c.JSON(http.StatusConflict, gin.H{"error": "You are not assigned to this task"})
		return
	}

	updates := []firestore.Update{
		{Path: "assignedto", Value: firestore.ArrayRemove(user.UserID)},
		{Path: "assignedtonames", Value: firestore.ArrayRemove(user.FullName)},
		{Path: "updatedat", Value: time.Now()},
	}

	if shiftID, ok := task.WiwShiftIDs[user.UserID]; ok {
		if err := wiw.DeleteShift(ctx, shiftID); err != nil {
			log.Printf("[Tasks] Failed to delete WhenIWork shift %d: %v", shiftID, err)
		}
		delete(task.WiwShiftIDs, user.UserID)
		updates = append(updates, firestore.Update{Path: "wiwshiftids", Value: task.WiwShiftIDs})
	}

	if _, err := firestoreClient.Collection("tasks").Doc(taskId).Update(ctx, updates); err != nil {
		c.JSON(500, gin.H{"error": "Failed to unclaim task"})
		return
	}

	_, err = firestoreClient.Collection("users").Doc(user.UserID).Update(ctx, []firestore.Update{
		{Path: "assignedjobids", Value: firestore.ArrayRemove(taskId)},
	})
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to update user assignments"})
		return
	}

	log.Printf("[Tasks] Task %s unclaimed by %s", taskId, user.FullName)
	c.JSON(http.StatusOK, gin.H{"message": "Task unclaimed successfully"})
}

func CompleteTask(c *gin.Context, firestoreClient *firestore.Client) {
	taskId := c.Param("id")

	var claimReq dto.ClaimTaskRequest
	if err := c.ShouldBindJSON(&claimReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := context.Background()
	task, err := services.GetTask(ctx, firestoreClient, taskId)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	if !task.AssignedToUser(claimReq.UserID) {
		c.JSON(http.StatusConflict, gin.H{"error": "You are not assigned to this task"})
		return
	}

	completedDate := time.Now()
	_, err = firestoreClient.Collection("tasks").Doc(taskId).Update(ctx, []firestore.Update{
		{Path: "completed", Value: true},
		{Path: "completeddate", Value: completedDate},
		{Path: "updatedat", Value: completedDate},
	})
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to complete task"})
		return
	}

	// The task leaves the user's active list but stays on the task record
	// for hour attribution.
	_, err = firestoreClient.Collection("users").Doc(claimReq.UserID).Update(ctx, []firestore.Update{
		{Path: "assignedjobids", Value: firestore.ArrayRemove(taskId)},
	})
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to update user assignments"})
		return
	}

	log.Printf("[Tasks] Task %s completed at %s", taskId, completedDate.Format(time.RFC3339))
	c.JSON(http.StatusOK, gin.H{"message": "Task completed successfully"})
}
