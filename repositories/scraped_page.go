package repositories

import (
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/models"
)

// ScrapedPageRepository handles database operations for scraped pages
type ScrapedPageRepository struct{}

// NewScrapedPageRepository creates a new scraped page repository instance
func NewScrapedPageRepository() *ScrapedPageRepository {
	return &ScrapedPageRepository{}
}

// FindByProjectID retrieves all scraped pages of a project, newest first
func (r *ScrapedPageRepository) FindByProjectID(projectID string) ([]models.ScrapedPage, error) {
	var pages []models.ScrapedPage
	result := database.DB.Where("project_id = ?", projectID).
		Order("scraped_at DESC").
		Find(&pages)
	return pages, result.Error
}
