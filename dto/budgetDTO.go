package dto

// UpdateBudgetRequest carries zero to three budget figures. Missing fields
// are derived from the ones provided; the request is rejected only when all
// three end up absent or invalid.
type UpdateBudgetRequest struct {
	Weekly    *float64 `json:"weekly"`
	Quarterly *float64 `json:"quarterly"`
	Yearly    *float64 `json:"yearly"`
}

type BudgetResponse struct {
	Weekly    float64 `json:"weekly"`
	Quarterly float64 `json:"quarterly"`
	Yearly    float64 `json:"yearly"`
}
