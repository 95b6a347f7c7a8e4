package dto

import "time"

// CreateStoryRequest represents the request payload for creating a user story
type CreateStoryRequest struct {
	Title              string `json:"title" binding:"required"`
	Description        string `json:"description"`
	AcceptanceCriteria string `json:"acceptanceCriteria"`
	StoryPoints        *int   `json:"storyPoints"`
	Priority           *int   `json:"priority"`
}

// UpdateStoryRequest represents a partial user story update
type UpdateStoryRequest struct {
	Title              *string   `json:"title"`
	Description        *string   `json:"description"`
	AcceptanceCriteria *string   `json:"acceptanceCriteria"`
	StoryPoints        *int      `json:"storyPoints"`
	Priority           *int      `json:"priority"`
	UpdatedAt          time.Time `json:"updatedAt" binding:"required"`
}
