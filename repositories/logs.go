package repositories

import (
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/models"
)

// Log tables are append-only: rows are written once (usually inside the
// owning write transaction) and never updated or deleted.

// ActivityLogRepository handles database operations for activity logs
type ActivityLogRepository struct{}

// NewActivityLogRepository creates a new activity log repository instance
func NewActivityLogRepository() *ActivityLogRepository {
	return &ActivityLogRepository{}
}

// FindByProjectID retrieves activity records for a project, newest first
func (r *ActivityLogRepository) FindByProjectID(projectID string, limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	db := database.DB.Where("project_id = ?", projectID).Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	result := db.Find(&entries)
	return entries, result.Error
}

// AIGenerationLogRepository handles database operations for AI generation logs
type AIGenerationLogRepository struct{}

// NewAIGenerationLogRepository creates a new AI generation log repository instance
func NewAIGenerationLogRepository() *AIGenerationLogRepository {
	return &AIGenerationLogRepository{}
}

// Create appends a new generation log record
func (r *AIGenerationLogRepository) Create(entry models.AIGenerationLog) (models.AIGenerationLog, error) {
	result := database.DB.Create(&entry)
	return entry, result.Error
}

// FindByProjectID retrieves generation records for a project, newest first
func (r *AIGenerationLogRepository) FindByProjectID(projectID string, limit int) ([]models.AIGenerationLog, error) {
	var entries []models.AIGenerationLog
	db := database.DB.Where("project_id = ?", projectID).Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	result := db.Find(&entries)
	return entries, result.Error
}
