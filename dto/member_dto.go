package dto

import "github.com/testtrack-simple/models"

// AddMemberRequest represents the request payload for adding a project member
type AddMemberRequest struct {
	UserID string      `json:"userId" binding:"required"`
	Role   models.Role `json:"role" binding:"required"`
}

// UpdateMemberRoleRequest represents the request payload for changing a member's role
type UpdateMemberRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}
