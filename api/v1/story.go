package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/services"
	"github.com/testtrack-simple/utils"
)

var storyService = services.NewStoryService()

// ListStories returns the user stories under an epic, optionally filtered by status
func ListStories(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stories, err := storyService.ListStories(userID, c.Param("id"), models.StoryStatus(c.Query("status")))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, stories)
}

// CreateStory creates a new user story under an epic
func CreateStory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	story, err := storyService.CreateStory(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, story)
}

// GetStory returns a single user story
func GetStory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	story, err := storyService.GetStory(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, story)
}

// UpdateStory updates user story fields
func UpdateStory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	story, err := storyService.UpdateStory(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, story)
}

// TransitionStory moves a user story along its status graph
func TransitionStory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	story, err := storyService.TransitionStory(userID, c.Param("id"), models.StoryStatus(req.Status), req.UpdatedAt)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, story)
}
