package dto

type CreateUserRequest struct {
	FullName     string  `json:"fullname" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Role         string  `json:"role"`
	AllowedHours float64 `json:"allowedhours" binding:"min=0"`
	WiwUserID    int64   `json:"wiwuserid"`
}

type UpdateAllowedHoursRequest struct {
	AllowedHours *float64 `json:"allowedhours" binding:"required"`
}

type SkillRequest struct {
	Skill string `json:"skill" binding:"required"`
}

type UserResponse struct {
	UserID       string   `json:"userid"`
	FullName     string   `json:"fullname"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	AllowedHours float64  `json:"allowedhours"`
	Skills       []string `json:"skills"`
	ActiveTasks  int      `json:"activeTasks"`
}
