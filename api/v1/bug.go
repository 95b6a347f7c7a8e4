package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/services"
	"github.com/testtrack-simple/utils"
)

var bugService = services.NewBugService()

// ListBugs returns the bugs of a project, optionally filtered by status
func ListBugs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bugs, err := bugService.ListBugs(userID, c.Param("id"), models.BugStatus(c.Query("status")))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, bugs)
}

// CreateBug files a new bug against a project
func CreateBug(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	bug, err := bugService.CreateBug(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, bug)
}

// GetBug returns a single bug
func GetBug(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bug, err := bugService.GetBug(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, bug)
}

// UpdateBug updates bug fields
func UpdateBug(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	bug, err := bugService.UpdateBug(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, bug)
}

// TransitionBug moves a bug along its status graph
func TransitionBug(c *gin.Context) {
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

	bug, err := bugService.TransitionBug(userID, c.Param("id"), models.BugStatus(req.Status), req.UpdatedAt)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, bug)
}
