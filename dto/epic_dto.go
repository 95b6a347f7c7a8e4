package dto

import "time"

// CreateEpicRequest represents the request payload for creating an epic
type CreateEpicRequest struct {
	Title              string `json:"title" binding:"required"`
	Description        string `json:"description"`
	AcceptanceCriteria string `json:"acceptanceCriteria"`
	Priority           *int   `json:"priority"`
}

// UpdateEpicRequest represents a partial epic update
type UpdateEpicRequest struct {
	Title              *string   `json:"title"`
	Description        *string   `json:"description"`
	AcceptanceCriteria *string   `json:"acceptanceCriteria"`
	Priority           *int      `json:"priority"`
	UpdatedAt          time.Time `json:"updatedAt" binding:"required"`
}
