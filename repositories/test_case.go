package repositories

import (
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/models"
)

// TestCaseRepository handles database operations for test cases
type TestCaseRepository struct{}

// NewTestCaseRepository creates a new test case repository instance
func NewTestCaseRepository() *TestCaseRepository {
	return &TestCaseRepository{}
}

// FindByID retrieves a test case by its ID
func (r *TestCaseRepository) FindByID(id string) (models.TestCase, error) {
	var testCase models.TestCase
	result := database.DB.First(&testCase, "id = ?", id)
	return testCase, result.Error
}

// FindByStoryID retrieves all test cases under a story, optionally filtered by status
func (r *TestCaseRepository) FindByStoryID(storyID string, status models.TestCaseStatus) ([]models.TestCase, error) {
	var testCases []models.TestCase
	db := database.DB.Where("user_story_id = ?", storyID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	result := db.Order("created_at DESC").Find(&testCases)
	return testCases, result.Error
}

// ProjectIDForTestCase resolves the project a test case belongs to
// via its story and epic
func (r *TestCaseRepository) ProjectIDForTestCase(testCaseID string) (string, error) {
	var projectID string
	result := database.DB.Model(&models.TestCase{}).
		Joins("JOIN user_stories ON user_stories.id = test_cases.user_story_id").
		Joins("JOIN epics ON epics.id = user_stories.epic_id").
		Where("test_cases.id = ?", testCaseID).
		Pluck("epics.project_id", &projectID)
	if result.Error != nil {
		return "", result.Error
	}
	return projectID, nil
}

// CountByProjectIDs counts test cases across the given projects
func (r *TestCaseRepository) CountByProjectIDs(projectIDs []string) (int64, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}
	var count int64
	result := database.DB.Model(&models.TestCase{}).
		Joins("JOIN user_stories ON user_stories.id = test_cases.user_story_id").
		Joins("JOIN epics ON epics.id = user_stories.epic_id").
		Where("epics.project_id IN ?", projectIDs).
		Count(&count)
	return count, result.Error
}

// CountByProjectIDAndStatus counts test cases in a project with a given status
func (r *TestCaseRepository) CountByProjectIDAndStatus(projectID string, status models.TestCaseStatus) (int64, error) {
	var count int64
	db := database.DB.Model(&models.TestCase{}).
		Joins("JOIN user_stories ON user_stories.id = test_cases.user_story_id").
		Joins("JOIN epics ON epics.id = user_stories.epic_id").
		Where("epics.project_id = ?", projectID)
	if status != "" {
		db = db.Where("test_cases.status = ?", status)
	}
	result := db.Count(&count)
	return count, result.Error
}
