package repositories

import (
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/models"
)

// EpicRepository handles database operations for epics
type EpicRepository struct{}

// NewEpicRepository creates a new epic repository instance
func NewEpicRepository() *EpicRepository {
	return &EpicRepository{}
}

// FindByID retrieves an epic by its ID
func (r *EpicRepository) FindByID(id string) (models.Epic, error) {
	var epic models.Epic
	result := database.DB.First(&epic, "id = ?", id)
	return epic, result.Error
}

// FindByProjectID retrieves all epics of a project, optionally filtered by status
func (r *EpicRepository) FindByProjectID(projectID string, status models.EpicStatus) ([]models.Epic, error) {
	var epics []models.Epic
	db := database.DB.Where("project_id = ?", projectID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	result := db.Order("created_at DESC").Find(&epics)
	return epics, result.Error
}

// CountByProjectID counts epics in a project
func (r *EpicRepository) CountByProjectID(projectID string) (int64, error) {
	var count int64
	result := database.DB.Model(&models.Epic{}).
		Where("project_id = ?", projectID).
		Count(&count)
	return count, result.Error
}
