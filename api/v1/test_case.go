package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/services"
	"github.com/testtrack-simple/utils"
)

var testCaseService = services.NewTestCaseService()

// ListTestCases returns the test cases under a user story, optionally filtered by status
func ListTestCases(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	testCases, err := testCaseService.ListTestCases(userID, c.Param("id"), models.TestCaseStatus(c.Query("status")))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, testCases)
}

// CreateTestCase creates a new test case under a user story
func CreateTestCase(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTestCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	testCase, err := testCaseService.CreateTestCase(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, testCase)
}

// GetTestCase returns a single test case
func GetTestCase(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	testCase, err := testCaseService.GetTestCase(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, testCase)
}

// UpdateTestCase updates test case fields
func UpdateTestCase(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTestCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	testCase, err := testCaseService.UpdateTestCase(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, testCase)
}

// TransitionTestCase moves a test case along its status graph
func TransitionTestCase(c *gin.Context) {
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

	testCase, err := testCaseService.TransitionTestCase(userID, c.Param("id"), models.TestCaseStatus(req.Status), req.UpdatedAt)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, testCase)
}
