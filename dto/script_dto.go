package dto

import "time"

// CreateScriptRequest represents the request payload for attaching an
// automation script to a test case
type CreateScriptRequest struct {
	Name               string `json:"name" binding:"required"`
	ScriptContent      string `json:"scriptContent" binding:"required"`
	Language           string `json:"language"`
	Framework          string `json:"framework"`
	SelfHealingEnabled bool   `json:"selfHealingEnabled"`
}

// UpdateScriptRequest represents a partial automation script update.
// last_execution_status is deliberately absent: it only moves when an
// execution is recorded.
type UpdateScriptRequest struct {
	Name               *string   `json:"name"`
	ScriptContent      *string   `json:"scriptContent"`
	Language           *string   `json:"language"`
	Framework          *string   `json:"framework"`
	SelfHealingEnabled *bool     `json:"selfHealingEnabled"`
	UpdatedAt          time.Time `json:"updatedAt" binding:"required"`
}
