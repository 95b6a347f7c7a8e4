package services

import (
	"errors"
	"time"

	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/repositories"
	"github.com/testtrack-simple/utils"
	"gorm.io/gorm"
)

// TestCaseService handles business logic for test cases
type TestCaseService struct {
	testCaseRepo *repositories.TestCaseRepository
	membership   *MembershipService
	consistency  *ConsistencyService
}

// NewTestCaseService creates a new test case service instance
func NewTestCaseService() *TestCaseService {
	return &TestCaseService{
		testCaseRepo: repositories.NewTestCaseRepository(),
		membership:   NewMembershipService(),
		consistency:  NewConsistencyService(),
	}
}

// ListTestCases retrieves the test cases under a story, optionally filtered by status
func (s *TestCaseService) ListTestCases(actorID, storyID string, status models.TestCaseStatus) ([]models.TestCase, error) {
	projectID, err := s.projectForStory(storyID)
	if err != nil {
		return nil, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, utils.NewValidation("invalid test case status %q", status)
	}
	return s.testCaseRepo.FindByStoryID(storyID, status)
}

// GetTestCase retrieves a test case the user may read
func (s *TestCaseService) GetTestCase(actorID, testCaseID string) (models.TestCase, error) {
	testCase, err := s.testCaseRepo.FindByID(testCaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TestCase{}, utils.NewNotFound("test case %s not found", testCaseID)
		}
		return models.TestCase{}, err
	}
	projectID, err := s.testCaseRepo.ProjectIDForTestCase(testCaseID)
	if err != nil {
		return models.TestCase{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return models.TestCase{}, err
	}
	return testCase, nil
}

// CreateTestCase creates a new test case under a user story. AI-generated
// content arrives through the same path with the provenance flags set.
func (s *TestCaseService) CreateTestCase(actorID, storyID string, req dto.CreateTestCaseRequest) (models.TestCase, error) {
	story, err := s.consistency.ParentStory(storyID)
	if err != nil {
		return models.TestCase{}, err
	}
	projectID, err := s.projectForStory(story.ID)
	if err != nil {
		return models.TestCase{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteTestCase); err != nil {
		return models.TestCase{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.TestCase{}, err
	}

	title := utils.NormalizeTitle(req.Title)
	if title == "" {
		return models.TestCase{}, utils.NewValidation("test case title is required")
	}
	if err := s.consistency.ValidatePositive("priority", req.Priority); err != nil {
		return models.TestCase{}, err
	}

	testCase := models.TestCase{
		UserStoryID:     storyID,
		Title:           title,
		Description:     req.Description,
		Preconditions:   req.Preconditions,
		TestSteps:       req.TestSteps,
		ExpectedResults: req.ExpectedResults,
		Priority:        req.Priority,
		GeneratedByAI:   req.GeneratedByAI,
		RAGEnhanced:     req.RAGEnhanced,
		Status:          models.TestCaseStatusDraft,
		CreatedBy:       actorID,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&testCase).Error; err != nil {
			return err
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityCreated,
			Description:  "test case created: " + utils.TruncateString(testCase.Title, 120),
			EntityType:   "test_case",
			EntityID:     testCase.ID,
			Metadata: models.JSONMap{
				"title":         testCase.Title,
				"userStoryId":   storyID,
				"generatedByAi": testCase.GeneratedByAI,
				"ragEnhanced":   testCase.RAGEnhanced,
			},
		})
	})
	if err != nil {
		return models.TestCase{}, err
	}

	return testCase, nil
}

// UpdateTestCase updates test case fields, guarded by the updated_at the
// caller read. Locked and obsolete test cases reject non-status edits.
func (s *TestCaseService) UpdateTestCase(actorID, testCaseID string, req dto.UpdateTestCaseRequest) (models.TestCase, error) {
	testCase, err := s.testCaseRepo.FindByID(testCaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TestCase{}, utils.NewNotFound("test case %s not found", testCaseID)
		}
		return models.TestCase{}, err
	}
	projectID, err := s.testCaseRepo.ProjectIDForTestCase(testCaseID)
	if err != nil {
		return models.TestCase{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteTestCase); err != nil {
		return models.TestCase{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.TestCase{}, err
	}
	if testCase.Locked {
		return models.TestCase{}, utils.NewForbidden("test case is locked")
	}
	if testCase.Status == models.TestCaseStatusObsolete {
		return models.TestCase{}, utils.NewForbidden("test case is obsolete")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := utils.NormalizeTitle(*req.Title)
		if title == "" {
			return models.TestCase{}, utils.NewValidation("test case title cannot be empty")
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Preconditions != nil {
		updates["preconditions"] = *req.Preconditions
	}
	if req.TestSteps != nil {
		updates["test_steps"] = models.TestSteps(*req.TestSteps)
	}
	if req.ExpectedResults != nil {
		updates["expected_results"] = *req.ExpectedResults
	}
	if req.Priority != nil {
		if err := s.consistency.ValidatePositive("priority", req.Priority); err != nil {
			return models.TestCase{}, err
		}
		updates["priority"] = *req.Priority
	}
	if req.RAGEnhanced != nil {
		updates["rag_enhanced"] = *req.RAGEnhanced
	}
	if len(updates) == 0 {
		return models.TestCase{}, utils.NewValidation("no fields to update")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.TestCase{}).
			Where("id = ? AND updated_at = ?", testCaseID, req.UpdatedAt).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewConflict("test case was modified concurrently, re-read and retry")
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityUpdated,
			Description:  "test case updated",
			EntityType:   "test_case",
			EntityID:     testCaseID,
			Metadata:     models.JSONMap(toMetadata(updates)),
		})
	})
	if err != nil {
		return models.TestCase{}, err
	}

	return s.testCaseRepo.FindByID(testCaseID)
}

// TransitionTestCase moves a test case along its status graph. A transition
// to obsolete locks its automation scripts in the same transaction.
func (s *TestCaseService) TransitionTestCase(actorID, testCaseID string, target models.TestCaseStatus, seenUpdatedAt time.Time) (models.TestCase, error) {
	testCase, err := s.testCaseRepo.FindByID(testCaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TestCase{}, utils.NewNotFound("test case %s not found", testCaseID)
		}
		return models.TestCase{}, err
	}
	projectID, err := s.testCaseRepo.ProjectIDForTestCase(testCaseID)
	if err != nil {
		return models.TestCase{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteTestCase); err != nil {
		return models.TestCase{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.TestCase{}, err
	}

	if !target.Valid() {
		return models.TestCase{}, utils.NewValidation("invalid test case status %q", target)
	}
	if !testCase.Status.CanTransitionTo(target) {
		return models.TestCase{}, utils.NewInvalidTransition("test case", testCase.Status, target)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.TestCase{}).
			Where("id = ? AND updated_at = ?", testCaseID, seenUpdatedAt).
			Update("status", target)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewConflict("test case was modified concurrently, re-read and retry")
		}

		if target == models.TestCaseStatusObsolete {
			if err := s.consistency.LockTestCaseChildren(tx, testCaseID); err != nil {
				return err
			}
		}

		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityStatusChanged,
			Description:  "test case status changed",
			EntityType:   "test_case",
			EntityID:     testCaseID,
			Metadata:     models.JSONMap{"from": string(testCase.Status), "to": string(target)},
		})
	})
	if err != nil {
		return models.TestCase{}, err
	}

	return s.testCaseRepo.FindByID(testCaseID)
}

func (s *TestCaseService) projectForStory(storyID string) (string, error) {
	storyRepo := repositories.NewUserStoryRepository()
	if _, err := storyRepo.FindByID(storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.NewNotFound("user story %s not found", storyID)
		}
		return "", err
	}
	return storyRepo.ProjectIDForStory(storyID)
}
