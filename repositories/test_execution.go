package repositories

import (
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/models"
)

// TestExecutionRepository handles database operations for test executions
type TestExecutionRepository struct{}

// NewTestExecutionRepository creates a new test execution repository instance
func NewTestExecutionRepository() *TestExecutionRepository {
	return &TestExecutionRepository{}
}

// FindByID retrieves a test execution by its ID
func (r *TestExecutionRepository) FindByID(id string) (models.TestExecution, error) {
	var execution models.TestExecution
	result := database.DB.First(&execution, "id = ?", id)
	return execution, result.Error
}

// FindByTestCaseID retrieves all executions of a test case, newest first
func (r *TestExecutionRepository) FindByTestCaseID(testCaseID string) ([]models.TestExecution, error) {
	var executions []models.TestExecution
	result := database.DB.Where("test_case_id = ?", testCaseID).
		Order("executed_at DESC").
		Find(&executions)
	return executions, result.Error
}

// CountByProjectIDs counts executions across the given projects
func (r *TestExecutionRepository) CountByProjectIDs(projectIDs []string) (int64, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}
	var count int64
	result := database.DB.Model(&models.TestExecution{}).
		Joins("JOIN test_cases ON test_cases.id = test_executions.test_case_id").
		Joins("JOIN user_stories ON user_stories.id = test_cases.user_story_id").
		Joins("JOIN epics ON epics.id = user_stories.epic_id").
		Where("epics.project_id IN ?", projectIDs).
		Count(&count)
	return count, result.Error
}

// CountByProjectIDAndStatus counts executions in a project with a given status.
// An empty status counts all executions.
func (r *TestExecutionRepository) CountByProjectIDAndStatus(projectID string, status models.ExecutionStatus) (int64, error) {
	var count int64
	db := database.DB.Model(&models.TestExecution{}).
		Joins("JOIN test_cases ON test_cases.id = test_executions.test_case_id").
		Joins("JOIN user_stories ON user_stories.id = test_cases.user_story_id").
		Joins("JOIN epics ON epics.id = user_stories.epic_id").
		Where("epics.project_id = ?", projectID)
	if status != "" {
		db = db.Where("test_executions.status = ?", status)
	}
	result := db.Count(&count)
	return count, result.Error
}
