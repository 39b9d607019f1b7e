package budget

import (
	"context"
	"log"
	"net/http"

	"taskboard/dto"
	"taskboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
)

func BudgetController(router *gin.Engine, firestoreClient *firestore.Client) {
	routes := router.Group("/api")
	{
		routes.GET("/budget", func(c *gin.Context) {
			GetBudget(c, firestoreClient)
		})
		routes.PUT("/budget", func(c *gin.Context) {
			UpdateBudget(c, firestoreClient)
		})
	}
}

func GetBudget(c *gin.Context, firestoreClient *firestore.Client) {
	budget, err := services.GetBudget(context.Background(), firestoreClient)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch budget"})
		return
	}

	c.JSON(http.StatusOK, dto.BudgetResponse{
		Weekly:    budget.WeeklyBudget,
		Quarterly: budget.QuarterlyBudget,
		Yearly:    budget.YearlyBudget,
	})
}

func UpdateBudget(c *gin.Context, firestoreClient *firestore.Client) {
	var budgetReq dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&budgetReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	budget := services.ComputeBudgetValues(budgetReq.Weekly, budgetReq.Quarterly, budgetReq.Yearly)
	if budget == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one non-negative budget value is required"})
		return
	}

	if err := services.SaveBudget(context.Background(), firestoreClient, budget); err != nil {
		c.JSON(500, gin.H{"error": "Failed to save budget"})
		return
	}

	log.Printf("[Budget] Budget updated: %.0f/%.0f/%.0f weekly/quarterly/yearly",
		budget.WeeklyBudget, budget.QuarterlyBudget, budget.YearlyBudget)

	c.JSON(http.StatusOK, dto.BudgetResponse{
		Weekly:    budget.WeeklyBudget,
		Quarterly: budget.QuarterlyBudget,
		Yearly:    budget.YearlyBudget,
	})
}
