package hours

import (
	"context"
	"log"
	"net/http"
	"time"

	"taskboard/dto"
	"taskboard/model"
	"taskboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
)

func HoursController(router *gin.Engine, firestoreClient *firestore.Client, wiw *services.WhenIWorkClient, cal *services.CalendarService) {
	routes := router.Group("/api")
	{
		routes.GET("/hours/user/:id", func(c *gin.Context) {
			UserHours(c, firestoreClient, wiw, cal)
		})
		routes.GET("/hours/organization", func(c *gin.Context) {
			OrganizationHours(c, firestoreClient, wiw, cal)
		})
	}
}

// countMode maps the ?mode= query parameter. Anything but "all" gets the
// default completed-only view.
func countMode(c *gin.Context) services.CountMode {
	if c.Query("mode") == "all" {
		return services.CompletedPlusActive
	}
	return services.CompletedOnly
}

// fetchWindowInputs gathers the calendar and the task list, the two inputs
// every hours view needs, fetching them concurrently. A calendar failure
// degrades to week-only windows rather than failing the request.
func fetchWindowInputs(ctx context.Context, firestoreClient *firestore.Client, cal *services.CalendarService) ([]model.Task, services.Windows, *model.QuarterDates, error) {
	calendarChan := make(chan *model.QuarterDates, 1)
	go func() {
		calendar, err := cal.CurrentAcademicCalendar(ctx)
		if err != nil {
			log.Printf("[Hours] Calendar unavailable, week totals only: %v", err)
			calendarChan <- nil
			return
		}
		calendarChan <- calendar
	}()

	tasks, err := services.ListTasks(ctx, firestoreClient)
	calendar := <-calendarChan
	if err != nil {
		return nil, services.Windows{}, nil, err
	}

	return tasks, services.ResolveWindows(time.Now(), calendar), calendar, nil
}

func windowUsage(taskHours, scheduleHours, budget float64, taskCount int) dto.WindowUsage {
	usage := services.Reconcile(taskHours, scheduleHours, budget)
	return dto.WindowUsage{
		TaskHours:     taskHours,
		ScheduleHours: scheduleHours,
		Used:          usage.Used,
		Budget:        usage.Budget,
		Remaining:     usage.Remaining,
		PercentUsed:   usage.PercentUsed,
		OverBudget:    usage.OverBudget,
		TaskCount:     taskCount,
	}
}

func summarize(taskTotals, scheduleTotals services.WindowTotals, budget *model.Budget, mode services.CountMode) dto.HoursSummaryResponse {
	if budget == nil {
		budget = &model.Budget{}
	}
	return dto.HoursSummaryResponse{
		Mode:    mode.String(),
		Week:    windowUsage(taskTotals.Week, scheduleTotals.Week, budget.WeeklyBudget, taskTotals.WeekCount),
		Quarter: windowUsage(taskTotals.Quarter, scheduleTotals.Quarter, budget.QuarterlyBudget, taskTotals.QuarterCount),
		Year:    windowUsage(taskTotals.Year, scheduleTotals.Year, budget.YearlyBudget, taskTotals.YearCount),
	}
}

func UserHours(c *gin.Context, firestoreClient *firestore.Client, wiw *services.WhenIWorkClient, cal *services.CalendarService) {
	userId := c.Param("id")
	mode := countMode(c)

	ctx := context.Background()
	user, err := services.GetUserByID(ctx, firestoreClient, userId)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	// Warm the shift roster while the calendar and task list load; the
	// aggregation below reuses the same fetch. Unlinked users have no
	// provider schedule, so nothing to warm.
	if user.WiwUserID != 0 {
		go wiw.Roster(ctx)
	}

	tasks, win, calendar, err := fetchWindowInputs(ctx, firestoreClient, cal)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	taskTotals := services.AggregateTaskHours(tasks, []string{user.UserID}, win, mode)
	scheduleTotals := services.ScheduledHours(ctx, wiw, user.WiwUserID, win)

	// The user's weekly allowance is the anchor; quarter and year budgets
	// are derived from it.
	budget := services.ComputeBudgetValues(&user.AllowedHours, nil, nil)

	response := summarize(taskTotals, scheduleTotals, budget, mode)
	response.UserID = user.UserID
	if calendar != nil {
		response.AcademicYear = calendar.AcademicYear
	}

	c.JSON(http.StatusOK, response)
}

func OrganizationHours(c *gin.Context, firestoreClient *firestore.Client, wiw *services.WhenIWorkClient, cal *services.CalendarService) {
	mode := countMode(c)

	ctx := context.Background()
	go wiw.Roster(ctx)

	tasks, win, calendar, err := fetchWindowInputs(ctx, firestoreClient, cal)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	budget, err := services.GetBudget(ctx, firestoreClient)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch budget"})
		return
	}

	taskTotals := services.AggregateTaskHours(tasks, nil, win, mode)
	scheduleTotals := services.AllScheduledHours(ctx, wiw, win)

	response := summarize(taskTotals, scheduleTotals, budget, mode)
	if calendar != nil {
		response.AcademicYear = calendar.AcademicYear
	}

	c.JSON(http.StatusOK, response)
}
