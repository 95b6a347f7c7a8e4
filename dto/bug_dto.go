package dto

import (
	"time"

	"github.com/testtrack-simple/models"
)

// CreateBugRequest represents the request payload for filing a bug.
// The test case and execution links are optional.
type CreateBugRequest struct {
	Title             string             `json:"title" binding:"required"`
	Description       string             `json:"description"`
	Severity          models.BugSeverity `json:"severity"`
	TestCaseID        *string            `json:"testCaseId"`
	TestExecutionID   *string            `json:"testExecutionId"`
	ReproductionSteps string             `json:"reproductionSteps"`
	EnvironmentInfo   models.JSONMap     `json:"environmentInfo"`
	Screenshots       models.StringList  `json:"screenshots"`
	VideoURL          string             `json:"videoUrl"`
	AssignedTo        *string            `json:"assignedTo"`
}

// UpdateBugRequest represents a partial bug update. Status moves through
// the transition endpoint only.
type UpdateBugRequest struct {
	Title             *string             `json:"title"`
	Description       *string             `json:"description"`
	Severity          *models.BugSeverity `json:"severity"`
	ReproductionSteps *string             `json:"reproductionSteps"`
	EnvironmentInfo   *models.JSONMap     `json:"environmentInfo"`
	Screenshots       *models.StringList  `json:"screenshots"`
	VideoURL          *string             `json:"videoUrl"`
	AssignedTo        *string             `json:"assignedTo"`
	UpdatedAt         time.Time           `json:"updatedAt" binding:"required"`
}
