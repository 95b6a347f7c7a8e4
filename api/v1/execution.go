package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/services"
	"github.com/testtrack-simple/utils"
)

var executionService = services.NewExecutionService()

// ListExecutions returns the executions of a test case, newest first
func ListExecutions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	executions, err := executionService.ListExecutions(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, executions)
}

// RecordExecution records one run of a test case
func RecordExecution(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.RecordExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	execution, err := executionService.RecordExecution(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, execution)
}

// GetExecution returns a single test execution
func GetExecution(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	execution, err := executionService.GetExecution(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, execution)
}
