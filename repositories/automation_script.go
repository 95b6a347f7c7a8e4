package repositories

import (
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/models"
)

// AutomationScriptRepository handles database operations for automation scripts
type AutomationScriptRepository struct{}

// NewAutomationScriptRepository creates a new automation script repository instance
func NewAutomationScriptRepository() *AutomationScriptRepository {
	return &AutomationScriptRepository{}
}

// FindByID retrieves an automation script by its ID
func (r *AutomationScriptRepository) FindByID(id string) (models.AutomationScript, error) {
	var script models.AutomationScript
	result := database.DB.First(&script, "id = ?", id)
	return script, result.Error
}

// FindByTestCaseID retrieves all scripts attached to a test case
func (r *AutomationScriptRepository) FindByTestCaseID(testCaseID string) ([]models.AutomationScript, error) {
	var scripts []models.AutomationScript
	result := database.DB.Where("test_case_id = ?", testCaseID).
		Order("created_at DESC").
		Find(&scripts)
	return scripts, result.Error
}
