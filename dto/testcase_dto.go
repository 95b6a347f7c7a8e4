package dto

import (
	"time"

	"github.com/testtrack-simple/models"
)

// CreateTestCaseRequest represents the request payload for creating a test case.
// The provenance flags are set by the generation flow, not by manual authors.
type CreateTestCaseRequest struct {
	Title           string           `json:"title" binding:"required"`
	Description     string           `json:"description"`
	Preconditions   string           `json:"preconditions"`
	TestSteps       models.TestSteps `json:"testSteps"`
	ExpectedResults string           `json:"expectedResults"`
	Priority        *int             `json:"priority"`
	GeneratedByAI   bool             `json:"generatedByAi"`
	RAGEnhanced     bool             `json:"ragEnhanced"`
}

// UpdateTestCaseRequest represents a partial test case update
type UpdateTestCaseRequest struct {
	Title           *string            `json:"title"`
	Description     *string            `json:"description"`
	Preconditions   *string            `json:"preconditions"`
	TestSteps       *[]models.TestStep `json:"testSteps"`
	ExpectedResults *string            `json:"expectedResults"`
	Priority        *int               `json:"priority"`
	RAGEnhanced     *bool              `json:"ragEnhanced"`
	UpdatedAt       time.Time          `json:"updatedAt" binding:"required"`
}
