package repositories

import (
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/models"
)

// MemberRepository handles database operations for project memberships
type MemberRepository struct{}

// NewMemberRepository creates a new member repository instance
func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

// FindByProjectAndUser retrieves the membership row for a user in a project
func (r *MemberRepository) FindByProjectAndUser(projectID, userID string) (models.ProjectMember, error) {
	var member models.ProjectMember
	result := database.DB.
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member)
	return member, result.Error
}

// FindByProjectID retrieves all members of a project with their profiles
func (r *MemberRepository) FindByProjectID(projectID string) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	result := database.DB.
		Preload("User").
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Find(&members)
	return members, result.Error
}

// ProjectIDsForUser retrieves the IDs of all projects the user belongs to
func (r *MemberRepository) ProjectIDsForUser(userID string) ([]string, error) {
	var ids []string
	result := database.DB.Model(&models.ProjectMember{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &ids)
	return ids, result.Error
}
