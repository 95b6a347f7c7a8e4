package repositories

import (
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/models"
)

// BugRepository handles database operations for bugs
type BugRepository struct{}

// NewBugRepository creates a new bug repository instance
func NewBugRepository() *BugRepository {
	return &BugRepository{}
}

// FindByID retrieves a bug by its ID
func (r *BugRepository) FindByID(id string) (models.Bug, error) {
	var bug models.Bug
	result := database.DB.First(&bug, "id = ?", id)
	return bug, result.Error
}

// FindByProjectID retrieves all bugs of a project, optionally filtered by status
func (r *BugRepository) FindByProjectID(projectID string, status models.BugStatus) ([]models.Bug, error) {
	var bugs []models.Bug
	db := database.DB.Where("project_id = ?", projectID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	result := db.Order("created_at DESC").Find(&bugs)
	return bugs, result.Error
}

// CountByProjectIDs counts bugs across the given projects
func (r *BugRepository) CountByProjectIDs(projectIDs []string) (int64, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}
	var count int64
	result := database.DB.Model(&models.Bug{}).
		Where("project_id IN ?", projectIDs).
		Count(&count)
	return count, result.Error
}

// CountByProjectIDAndStatus counts bugs in a project with a given status.
// An empty status counts all bugs.
func (r *BugRepository) CountByProjectIDAndStatus(projectID string, status models.BugStatus) (int64, error) {
	var count int64
	db := database.DB.Model(&models.Bug{}).Where("project_id = ?", projectID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	result := db.Count(&count)
	return count, result.Error
}

// CountByProjectIDAndSeverity counts bugs in a project with a given severity
func (r *BugRepository) CountByProjectIDAndSeverity(projectID string, severity models.BugSeverity) (int64, error) {
	var count int64
	result := database.DB.Model(&models.Bug{}).
		Where("project_id = ? AND severity = ?", projectID, severity).
		Count(&count)
	return count, result.Error
}
