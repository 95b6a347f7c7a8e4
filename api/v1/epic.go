package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/services"
	"github.com/testtrack-simple/utils"
)

var epicService = services.NewEpicService()

// ListEpics returns the epics of a project, optionally filtered by status
func ListEpics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	epics, err := epicService.ListEpics(userID, c.Param("id"), models.EpicStatus(c.Query("status")))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, epics)
}

// CreateEpic creates a new epic under a project
func CreateEpic(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEpicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	epic, err := epicService.CreateEpic(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, epic)
}

// GetEpic returns a single epic
func GetEpic(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	epic, err := epicService.GetEpic(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, epic)
}

// UpdateEpic updates epic fields
func UpdateEpic(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEpicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	epic, err := epicService.UpdateEpic(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, epic)
}

// TransitionEpic moves an epic along its status graph
func TransitionEpic(c *gin.Context) {
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

	epic, err := epicService.TransitionEpic(userID, c.Param("id"), models.EpicStatus(req.Status), req.UpdatedAt)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, epic)
}
