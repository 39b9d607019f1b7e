package calendar

import (
	"context"
	"net/http"

	"taskboard/services"

	"github.com/gin-gonic/gin"
)

func QuarterDatesController(router *gin.Engine, cal *services.CalendarService) {
	routes := router.Group("/api")
	{
		routes.GET("/quarter-dates", func(c *gin.Context) {
			QuarterDates(c, cal)
		})
	}
}

func QuarterDates(c *gin.Context, cal *services.CalendarService) {
	quarters, err := cal.CurrentAcademicCalendar(context.Background())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch academic calendar"})
		return
	}

	c.JSON(http.StatusOK, quarters)
}
