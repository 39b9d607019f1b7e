package task

import (
	"context"
	"log"
	"net/http"
	"time"

	"taskboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
)

func ProcessRecurring(c *gin.Context, firestoreClient *firestore.Client) {
	results, err := services.ProcessRecurringTasks(context.Background(), firestoreClient)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to process recurring tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Recurring tasks processed",
		"processed": len(results),
		"tasks":     results,
	})
}

// StartRecurringScheduler rolls overdue recurring tasks forward once a day
// shortly after midnight. Run it in its own goroutine.
func StartRecurringScheduler(firestoreClient *firestore.Client) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for now := range ticker.C {
		if now.Hour() != 0 || now.Minute() != 0 {
			continue
		}
		results, err := services.ProcessRecurringTasks(context.Background(), firestoreClient)
		if err != nil {
			log.Printf("[Recurring] Scheduled run failed: %v", err)
			continue
		}
		if len(results) > 0 {
			log.Printf("[Recurring] Rolled %d task(s) forward", len(results))
		}
	}
}
