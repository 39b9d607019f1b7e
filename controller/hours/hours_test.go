package hours

import (
	"net/http/httptest"
	"testing"

	"taskboard/model"
	"taskboard/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/hours/organization?"+rawQuery, nil)
	return c
}

func TestCountMode_DefaultsToCompletedOnly(t *testing.T) {
	assert.Equal(t, services.CompletedOnly, countMode(ctxWithQuery("")))
	assert.Equal(t, services.CompletedOnly, countMode(ctxWithQuery("mode=completed")))
	assert.Equal(t, services.CompletedOnly, countMode(ctxWithQuery("mode=bogus")))
	assert.Equal(t, services.CompletedPlusActive, countMode(ctxWithQuery("mode=all")))
}

func TestSummarize_CombinesTotalsAndBudget(t *testing.T) {
	taskTotals := services.WindowTotals{Week: 12, Quarter: 40, Year: 100, WeekCount: 3}
	scheduleTotals := services.WindowTotals{Week: 3, Quarter: 10, Year: 30}
	budget := &model.Budget{WeeklyBudget: 10, QuarterlyBudget: 130, YearlyBudget: 520}

	resp := summarize(taskTotals, scheduleTotals, budget, services.CompletedOnly)

	assert.Equal(t, "completed", resp.Mode)
	assert.Equal(t, 15.0, resp.Week.Used)
	assert.Equal(t, -5.0, resp.Week.Remaining)
	assert.True(t, resp.Week.OverBudget)
	assert.Equal(t, 100.0, resp.Week.PercentUsed)
	assert.Equal(t, 3, resp.Week.TaskCount)

	assert.Equal(t, 50.0, resp.Quarter.Used)
	assert.False(t, resp.Quarter.OverBudget)
	assert.Equal(t, 130.0, resp.Year.Used)
	assert.Equal(t, 25.0, resp.Year.PercentUsed)
}

func TestSummarize_NilBudgetMeansZeroBudgets(t *testing.T) {
	resp := summarize(services.WindowTotals{Week: 4}, services.WindowTotals{}, nil, services.CompletedPlusActive)

	assert.Equal(t, "all", resp.Mode)
	assert.Equal(t, 0.0, resp.Week.Budget)
	assert.True(t, resp.Week.OverBudget)
	assert.Equal(t, 0.0, resp.Week.PercentUsed)
}
