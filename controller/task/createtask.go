package task

import (
	"context"
	"net/http"
	"time"

	"taskboard/dto"
	"taskboard/model"
	"taskboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TaskController(router *gin.Engine, firestoreClient *firestore.Client, wiw *services.WhenIWorkClient) {
	routes := router.Group("/api")
	{
		routes.POST("/task", func(c *gin.Context) {
			CreateTask(c, firestoreClient)
		})
		routes.GET("/tasks", func(c *gin.Context) {
			ListTasks(c, firestoreClient)
		})
		routes.POST("/task/:id/claim", func(c *gin.Context) {
			ClaimTask(c, firestoreClient, wiw)
		})
		routes.POST("/task/:id/unclaim", func(c *gin.Context) {
			UnclaimTask(c, firestoreClient, wiw)
		})
		routes.POST("/task/:id/complete", func(c *gin.Context) {
			CompleteTask(c, firestoreClient)
		})
		routes.POST("/tasks/process-recurring", func(c *gin.Context) {
			ProcessRecurring(c, firestoreClient)
		})
	}
}

func CreateTask(c *gin.Context, firestoreClient *firestore.Client) {
	var taskReq dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&taskReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var due *time.Time
	if taskReq.Due != "" {
		parsed, err := time.Parse(time.RFC3339, taskReq.Due)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date format"})
			return
		}
		due = &parsed
	}

	workerSlots := taskReq.WorkerSlots
	if workerSlots < 1 {
		workerSlots = 1
	}

	taskid := uuid.New().String()

	newtask := model.Task{
		TaskID:              taskid,
		Title:               taskReq.Title,
		Description:         taskReq.Description,
		Category:            taskReq.Category,
		Icon:                taskReq.Icon,
		Location:            taskReq.Location,
		LocationColor:       taskReq.LocationColor,
		Hours:               taskReq.Hours,
		Due:                 due,
		WorkerSlots:         workerSlots,
		IsPriority:          taskReq.IsPriority,
		Nonflexible:         taskReq.Nonflexible,
		Recurring:           taskReq.Recurring,
		RecurrenceFrequency: taskReq.RecurrenceFrequency,
		RecurrenceDays:      taskReq.RecurrenceDays,
		CreatedBy:           taskReq.CreatedBy,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	ctx := context.Background()
	_, err := firestoreClient.Collection("tasks").Doc(taskid).Set(ctx, newtask)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"taskID":  taskid,
	})
}

func ListTasks(c *gin.Context, firestoreClient *firestore.Client) {
	ctx := context.Background()
	tasks, err := services.ListTasks(ctx, firestoreClient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// completed=false trims the board view down to claimable work.
	if c.Query("completed") == "false" {
		active := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			if !t.Completed {
				active = append(active, t)
			}
		}
		tasks = active
	}

	if tasks == nil {
		tasks = []model.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}
