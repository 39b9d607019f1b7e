package connection

import (
	"log"
	"time"

	"taskboard/controller/budget"
	"taskboard/controller/calendar"
	"taskboard/controller/hours"
	"taskboard/controller/task"
	"taskboard/controller/user"
	"taskboard/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartServer() {
	router := gin.Default()

	fb, err := FBConnection()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}

	wiw := services.NewWhenIWorkClient()
	if !wiw.Configured() {
		log.Println("[WhenIWork] Credentials not configured - scheduled hours will read as 0")
	}
	cal := services.NewCalendarService()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "timestamp": time.Now().Format(time.RFC3339)})
	})

	router.Use(cors.Default())

	task.TaskController(router, fb, wiw)
	user.UserController(router, fb, wiw)
	hours.HoursController(router, fb, wiw, cal)
	budget.BudgetController(router, fb)
	calendar.QuarterDatesController(router, cal)

	go task.StartRecurringScheduler(fb)

	router.Run()
}
