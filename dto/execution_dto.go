package dto

import "github.com/testtrack-simple/models"

// RecordExecutionRequest represents the request payload for recording one
// run of a test case. AutomationScriptID is set for automated runs and
// must reference a script of the same test case.
type RecordExecutionRequest struct {
	Status             models.ExecutionStatus `json:"status" binding:"required"`
	AutomationScriptID *string                `json:"automationScriptId"`
	ExecutionTime      *int                   `json:"executionTime"` // Milliseconds
	ExecutionDetails   models.JSONMap         `json:"executionDetails"`
}
