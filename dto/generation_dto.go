package dto

import "github.com/testtrack-simple/models"

// GeneratedTestCase is one test case produced by an AI generation run
type GeneratedTestCase struct {
	Title           string           `json:"title" binding:"required"`
	Description     string           `json:"description"`
	Preconditions   string           `json:"preconditions"`
	TestSteps       models.TestSteps `json:"testSteps"`
	ExpectedResults string           `json:"expectedResults"`
	Priority        *int             `json:"priority"`
	RAGEnhanced     bool             `json:"ragEnhanced"`
}

// RecordGenerationRequest represents the outcome of one AI generation run.
// A failed run carries Success=false and an error message; its payload is
// ignored and nothing but the log entry is written.
type RecordGenerationRequest struct {
	GenerationType models.GenerationType `json:"generationType" binding:"required"`
	UserStoryID    string                `json:"userStoryId"`
	ModelUsed      string                `json:"modelUsed"`
	TokensUsed     *int                  `json:"tokensUsed"`
	ProcessingTime *int                  `json:"processingTime"` // Milliseconds
	Success        bool                  `json:"success"`
	ErrorMessage   string                `json:"errorMessage"`
	InputData      models.JSONMap        `json:"inputData"`
	OutputData     models.JSONMap        `json:"outputData"`
	TestCases      []GeneratedTestCase   `json:"testCases"`
}

// GenerationResponse bundles the log entry with the test cases it produced
type GenerationResponse struct {
	Log       models.AIGenerationLog `json:"log"`
	TestCases []models.TestCase      `json:"testCases"`
}

// RecordScrapedPageRequest represents the result of scraping one page of
// the application under test
type RecordScrapedPageRequest struct {
	URL           string            `json:"url" binding:"required"`
	Title         string            `json:"title"`
	ContentChunks models.StringList `json:"contentChunks"`
	DOMElements   models.JSONMap    `json:"domElements"`
	Screenshots   models.StringList `json:"screenshots"`
}
