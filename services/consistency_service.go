package services

import (
	"errors"

	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/repositories"
	"github.com/testtrack-simple/utils"
	"gorm.io/gorm"
)

// ConsistencyService enforces cross-entity rules before the store commits
// a write: parent references must resolve inside the same project, archived
// projects are frozen, and terminal parent transitions lock descendants
// instead of deleting them.
type ConsistencyService struct {
	projectRepo  *repositories.ProjectRepository
	epicRepo     *repositories.EpicRepository
	storyRepo    *repositories.UserStoryRepository
	testCaseRepo *repositories.TestCaseRepository
}

// NewConsistencyService creates a new consistency service instance
func NewConsistencyService() *ConsistencyService {
	return &ConsistencyService{
		projectRepo:  repositories.NewProjectRepository(),
		epicRepo:     repositories.NewEpicRepository(),
		storyRepo:    repositories.NewUserStoryRepository(),
		testCaseRepo: repositories.NewTestCaseRepository(),
	}
}

// WritableProject loads a project and rejects the write when it is archived.
// Reads stay allowed on archived projects; only mutation is frozen.
func (s *ConsistencyService) WritableProject(projectID string) (models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, utils.NewNotFound("project %s not found", projectID)
		}
		return models.Project{}, err
	}
	if project.Archived() {
		return models.Project{}, utils.NewForbidden("project is archived and frozen for mutation")
	}
	return project, nil
}

// ParentEpic loads an epic and verifies children may still be created under it
func (s *ConsistencyService) ParentEpic(epicID string) (models.Epic, error) {
	epic, err := s.epicRepo.FindByID(epicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Epic{}, utils.NewNotFound("epic %s not found", epicID)
		}
		return models.Epic{}, err
	}
	if epic.Status == models.EpicStatusCancelled || epic.Locked {
		return models.Epic{}, utils.NewValidation("epic is no longer actionable")
	}
	return epic, nil
}

// ParentStory loads a user story and verifies children may still be created under it
func (s *ConsistencyService) ParentStory(storyID string) (models.UserStory, error) {
	story, err := s.storyRepo.FindByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserStory{}, utils.NewNotFound("user story %s not found", storyID)
		}
		return models.UserStory{}, err
	}
	if story.Status == models.StoryStatusCancelled || story.Locked {
		return models.UserStory{}, utils.NewValidation("user story is no longer actionable")
	}
	return story, nil
}

// ParentTestCase loads a test case and verifies executions and scripts may
// still be recorded against it
func (s *ConsistencyService) ParentTestCase(testCaseID string) (models.TestCase, error) {
	testCase, err := s.testCaseRepo.FindByID(testCaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TestCase{}, utils.NewNotFound("test case %s not found", testCaseID)
		}
		return models.TestCase{}, err
	}
	if testCase.Status == models.TestCaseStatusObsolete || testCase.Locked {
		return models.TestCase{}, utils.NewValidation("test case is no longer actionable")
	}
	return testCase, nil
}

// ValidatePositive checks an optional priority or story-points field.
// Only presence and sign are validated; there is no upper bound.
func (s *ConsistencyService) ValidatePositive(name string, value *int) error {
	if value != nil && *value <= 0 {
		return utils.NewValidation("%s must be a positive integer", name)
	}
	return nil
}

// LockEpicChildren marks all active stories under the epic, and their test
// cases, as locked. Runs inside the caller's transaction so the parent
// transition and the cascade commit together.
func (s *ConsistencyService) LockEpicChildren(tx *gorm.DB, epicID string) error {
	var storyIDs []string
	if err := tx.Model(&models.UserStory{}).
		Where("epic_id = ? AND locked = ?", epicID, false).
		Pluck("id", &storyIDs).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.UserStory{}).
		Where("epic_id = ?", epicID).
		Update("locked", true).Error; err != nil {
		return err
	}
	for _, storyID := range storyIDs {
		if err := s.LockStoryChildren(tx, storyID); err != nil {
			return err
		}
	}
	return nil
}

// LockStoryChildren marks all test cases under the story, and their
// automation scripts, as locked
func (s *ConsistencyService) LockStoryChildren(tx *gorm.DB, storyID string) error {
	var testCaseIDs []string
	if err := tx.Model(&models.TestCase{}).
		Where("user_story_id = ? AND locked = ?", storyID, false).
		Pluck("id", &testCaseIDs).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.TestCase{}).
		Where("user_story_id = ?", storyID).
		Update("locked", true).Error; err != nil {
		return err
	}
	for _, testCaseID := range testCaseIDs {
		if err := s.LockTestCaseChildren(tx, testCaseID); err != nil {
			return err
		}
	}
	return nil
}

// LockTestCaseChildren marks all automation scripts under the test case as locked
func (s *ConsistencyService) LockTestCaseChildren(tx *gorm.DB, testCaseID string) error {
	return tx.Model(&models.AutomationScript{}).
		Where("test_case_id = ?", testCaseID).
		Update("locked", true).Error
}
