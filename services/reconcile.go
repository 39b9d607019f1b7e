package services

// BudgetUsage is the reconciled view of one window: hours consumed against
// the configured budget.
type BudgetUsage struct {
	Used        float64
	Budget      float64
	Remaining   float64
	PercentUsed float64
	OverBudget  bool
}

// Reconcile combines task-derived and schedule-derived hours against a
// budget. Remaining may go negative; PercentUsed is clamped at 100 for
// display, with the raw overage still visible through Remaining.
func Reconcile(taskHours, scheduleHours, budget float64) BudgetUsage {
	used := taskHours + scheduleHours
	remaining := budget - used

	percent := 0.0
	if budget > 0 {
		percent = used / budget * 100
		if percent > 100 {
			percent = 100
		}
	}

	return BudgetUsage{
		Used:        used,
		Budget:      budget,
		Remaining:   remaining,
		PercentUsed: percent,
		OverBudget:  remaining < 0,
	}
}
