package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/services"
	"github.com/testtrack-simple/utils"
)

var scriptService = services.NewScriptService()

// ListScripts returns the automation scripts attached to a test case
func ListScripts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	scripts, err := scriptService.ListScripts(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, scripts)
}

// CreateScript attaches a new automation script to a test case
func CreateScript(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	script, err := scriptService.CreateScript(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, script)
}

// GetScript returns a single automation script
func GetScript(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	script, err := scriptService.GetScript(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, script)
}

// UpdateScript updates automation script fields
func UpdateScript(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	script, err := scriptService.UpdateScript(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, script)
}
