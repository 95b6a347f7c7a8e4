package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/services"
	"github.com/testtrack-simple/utils"
)

var generationService = services.NewGenerationService()

// ListGenerationLogs returns the AI generation history of a project
func ListGenerationLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := generationService.ListGenerationLogs(userID, c.Param("id"), queryLimit(c, 50))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, entries)
}

// RecordGeneration records the outcome of one AI generation run
func RecordGeneration(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.RecordGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	testCases, entry, err := generationService.RecordGeneration(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, dto.GenerationResponse{
		Log:       entry,
		TestCases: testCases,
	})
}

// ListScrapedPages returns the scraped pages of a project
func ListScrapedPages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pages, err := generationService.ListScrapedPages(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusOK, pages)
}

// RecordScrapedPage stores the result of scraping one page of the application under test
func RecordScrapedPage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.RecordScrapedPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	page, err := generationService.RecordScrapedPage(userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, page)
}
