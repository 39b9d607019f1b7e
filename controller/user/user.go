package user

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
	"github.com/google/uuid"
)

func UserController(router *gin.Engine, firestoreClient *firestore.Client, wiw *services.WhenIWorkClient) {
	routes := router.Group("/api")
	{
		routes.GET("/users", func(c *gin.Context) {
			ListUsers(c, firestoreClient)
		})
		routes.POST("/user", func(c *gin.Context) {
			CreateUser(c, firestoreClient)
		})
		routes.PUT("/user/:id/allowed-hours", func(c *gin.Context) {
			UpdateAllowedHours(c, firestoreClient)
		})
		routes.POST("/user/:id/skills", func(c *gin.Context) {
			AddSkill(c, firestoreClient)
		})
		routes.DELETE("/user/:id/skills", func(c *gin.Context) {
			RemoveSkill(c, firestoreClient)
		})
		routes.DELETE("/user/:id", func(c *gin.Context) {
			DeleteUser(c, firestoreClient, wiw)
		})
	}
}

func ListUsers(c *gin.Context, firestoreClient *firestore.Client) {
	ctx := context.Background()
	users, err := services.ListUsers(ctx, firestoreClient)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch users"})
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.UserResponse{
			UserID:       u.UserID,
			FullName:     u.FullName,
			Email:        u.Email,
			Role:         u.Role,
			AllowedHours: u.AllowedHours,
			Skills:       u.Skills,
			ActiveTasks:  len(u.AssignedJobIds),
		})
	}

	c.JSON(http.StatusOK, gin.H{"users": responses})
}

func CreateUser(c *gin.Context, firestoreClient *firestore.Client) {
	var userReq dto.CreateUserRequest
	if err := c.ShouldBindJSON(&userReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	role := userReq.Role
	if role == "" {
		role = "staff"
	}

	if userReq.AllowedHours == 0 {
		log.Printf("[Users] No allowed hours for %s, defaulting to 0", userReq.Email)
	}

	user := model.User{
		UserID:       uuid.New().String(),
		FullName:     userReq.FullName,
		Email:        userReq.Email,
		Role:         role,
		AllowedHours: userReq.AllowedHours,
		WiwUserID:    userReq.WiwUserID,
		CreatedAt:    time.Now(),
	}

	ctx := context.Background()
	_, err := firestoreClient.Collection("users").Doc(user.UserID).Set(ctx, user)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"userId":  user.UserID,
	})
}

func UpdateAllowedHours(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.Param("id")

	var hoursReq dto.UpdateAllowedHoursRequest
	if err := c.ShouldBindJSON(&hoursReq); err != nil || hoursReq.AllowedHours == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if *hoursReq.AllowedHours < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Allowed hours cannot be negative"})
		return
	}

	ctx := context.Background()
	if _, err := services.GetUserByID(ctx, firestoreClient, userId); err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	_, err := firestoreClient.Collection("users").Doc(userId).Update(ctx, []firestore.Update{
		{Path: "allowedhours", Value: *hoursReq.AllowedHours},
	})
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to update allowed hours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Allowed hours updated successfully"})
}

func AddSkill(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.Param("id")

	var skillReq dto.SkillRequest
	if err := c.ShouldBindJSON(&skillReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := context.Background()
	_, err := firestoreClient.Collection("users").Doc(userId).Update(ctx, []firestore.Update{
		{Path: "skills", Value: firestore.ArrayUnion(skillReq.Skill)},
	})
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to add skill"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill added successfully"})
}

func RemoveSkill(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.Param("id")

	var skillReq dto.SkillRequest
	if err := c.ShouldBindJSON(&skillReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := context.Background()
	_, err := firestoreClient.Collection("users").Doc(userId).Update(ctx, []firestore.Update{
		{Path: "skills", Value: firestore.ArrayRemove(skillReq.Skill)},
	})
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to remove skill"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill removed successfully"})
}

func DeleteUser(c *gin.Context, firestoreClient *firestore.Client, wiw *services.WhenIWorkClient) {
	userId := c.Param("id")

	ctx := context.Background()
	if err := services.DeleteUserCascade(ctx, firestoreClient, wiw, userId); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	log.Printf("[Users] Deleted user %s and released their assignments", userId)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
