package dto

import (
	"time"
)

// CreateProjectRequest represents the request payload for creating a new project
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	AppURL      string `json:"appUrl"`
}

// UpdateProjectRequest represents a partial project update. Absent fields
// are left untouched. UpdatedAt must carry the value the client last read.
type UpdateProjectRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	AppURL      *string   `json:"appUrl"`
	UpdatedAt   time.Time `json:"updatedAt" binding:"required"`
}

// TransitionRequest moves an entity to a new status. The same shape serves
// every status-bearing entity.
type TransitionRequest struct {
	Status    string    `json:"status" binding:"required"`
	UpdatedAt time.Time `json:"updatedAt" binding:"required"`
}
