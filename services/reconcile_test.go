package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile_OverBudget(t *testing.T) {
	usage := Reconcile(12, 3, 10)

	assert.Equal(t, 15.0, usage.Used)
	assert.Equal(t, 10.0, usage.Budget)
	assert.Equal(t, -5.0, usage.Remaining)
	assert.Equal(t, 100.0, usage.PercentUsed) // clamped
	assert.True(t, usage.OverBudget)
}

func TestReconcile_UnderBudget(t *testing.T) {
	usage := Reconcile(4, 1, 10)

	assert.Equal(t, 5.0, usage.Used)
	assert.Equal(t, 5.0, usage.Remaining)
	assert.Equal(t, 50.0, usage.PercentUsed)
	assert.False(t, usage.OverBudget)
}

func TestReconcile_ZeroBudget(t *testing.T) {
	usage := Reconcile(3, 0, 0)

	assert.Equal(t, 3.0, usage.Used)
	assert.Equal(t, -3.0, usage.Remaining)
	assert.Equal(t, 0.0, usage.PercentUsed)
	assert.True(t, usage.OverBudget)
}

func TestReconcile_ExactlyAtBudget(t *testing.T) {
	usage := Reconcile(6, 4, 10)

	assert.Equal(t, 0.0, usage.Remaining)
	assert.Equal(t, 100.0, usage.PercentUsed)
	assert.False(t, usage.OverBudget)
}
