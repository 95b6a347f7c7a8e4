package repositories

import (
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/models"
)

// UserStoryRepository handles database operations for user stories
type UserStoryRepository struct{}

// NewUserStoryRepository creates a new user story repository instance
func NewUserStoryRepository() *UserStoryRepository {
	return &UserStoryRepository{}
}

// FindByID retrieves a user story by its ID
func (r *UserStoryRepository) FindByID(id string) (models.UserStory, error) {
	var story models.UserStory
	result := database.DB.First(&story, "id = ?", id)
	return story, result.Error
}

// FindByEpicID retrieves all stories under an epic, optionally filtered by status
func (r *UserStoryRepository) FindByEpicID(epicID string, status models.StoryStatus) ([]models.UserStory, error) {
	var stories []models.UserStory
	db := database.DB.Where("epic_id = ?", epicID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	result := db.Order("created_at DESC").Find(&stories)
	return stories, result.Error
}

// ProjectIDForStory resolves the project a story belongs to via its epic
func (r *UserStoryRepository) ProjectIDForStory(storyID string) (string, error) {
	var projectID string
	result := database.DB.Model(&models.UserStory{}).
		Joins("JOIN epics ON epics.id = user_stories.epic_id").
		Where("user_stories.id = ?", storyID).
		Pluck("epics.project_id", &projectID)
	if result.Error != nil {
		return "", result.Error
	}
	return projectID, nil
}

