package services

import (
	"errors"

	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/repositories"
	"github.com/testtrack-simple/utils"
	"gorm.io/gorm"
)

// ExecutionService handles business logic for test executions.
// Executions are immutable records: they are created, never updated.
type ExecutionService struct {
	executionRepo *repositories.TestExecutionRepository
	scriptRepo    *repositories.AutomationScriptRepository
	testCaseRepo  *repositories.TestCaseRepository
	membership    *MembershipService
	consistency   *ConsistencyService
}

// NewExecutionService creates a new execution service instance
func NewExecutionService() *ExecutionService {
	return &ExecutionService{
		executionRepo: repositories.NewTestExecutionRepository(),
		scriptRepo:    repositories.NewAutomationScriptRepository(),
		testCaseRepo:  repositories.NewTestCaseRepository(),
		membership:    NewMembershipService(),
		consistency:   NewConsistencyService(),
	}
}

// ListExecutions retrieves the executions of a test case, newest first
func (s *ExecutionService) ListExecutions(actorID, testCaseID string) ([]models.TestExecution, error) {
	projectID, err := s.projectForTestCase(testCaseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return nil, err
	}
	return s.executionRepo.FindByTestCaseID(testCaseID)
}

// GetExecution retrieves a test execution the user may read
func (s *ExecutionService) GetExecution(actorID, executionID string) (models.TestExecution, error) {
	execution, err := s.executionRepo.FindByID(executionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TestExecution{}, utils.NewNotFound("test execution %s not found", executionID)
		}
		return models.TestExecution{}, err
	}
	projectID, err := s.projectForTestCase(execution.TestCaseID)
	if err != nil {
		return models.TestExecution{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return models.TestExecution{}, err
	}
	return execution, nil
}

// RecordExecution records one run of a test case. When the run came from
// an automation script, the script's last_execution_status moves with the
// execution in the same transaction: both commit or neither does.
func (s *ExecutionService) RecordExecution(actorID, testCaseID string, req dto.RecordExecutionRequest) (models.TestExecution, error) {
	testCase, err := s.consistency.ParentTestCase(testCaseID)
	if err != nil {
		return models.TestExecution{}, err
	}
	projectID, err := s.projectForTestCase(testCase.ID)
	if err != nil {
		return models.TestExecution{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteExecution); err != nil {
		return models.TestExecution{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.TestExecution{}, err
	}

	if !req.Status.Valid() {
		return models.TestExecution{}, utils.NewValidation("invalid execution status %q", req.Status)
	}
	if err := s.consistency.ValidatePositive("execution time", req.ExecutionTime); err != nil {
		return models.TestExecution{}, err
	}

	if req.AutomationScriptID != nil {
		script, err := s.scriptRepo.FindByID(*req.AutomationScriptID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.TestExecution{}, utils.NewNotFound("automation script %s not found", *req.AutomationScriptID)
			}
			return models.TestExecution{}, err
		}
		if script.TestCaseID != testCaseID {
			return models.TestExecution{}, utils.NewValidation("automation script belongs to a different test case")
		}
	}

	execution := models.TestExecution{
		TestCaseID:         testCaseID,
		AutomationScriptID: req.AutomationScriptID,
		ExecutedBy:         actorID,
		ExecutionTime:      req.ExecutionTime,
		Status:             req.Status,
		ExecutionDetails:   req.ExecutionDetails,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&execution).Error; err != nil {
			return err
		}

		if req.AutomationScriptID != nil {
			if err := tx.Model(&models.AutomationScript{}).
				Where("id = ?", *req.AutomationScriptID).
				Update("last_execution_status", req.Status).Error; err != nil {
				return err
			}
		}

		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityCreated,
			Description:  "test execution recorded",
			EntityType:   "test_execution",
			EntityID:     execution.ID,
			Metadata: models.JSONMap{
				"testCaseId": testCaseID,
				"status":     string(req.Status),
			},
		})
	})
	if err != nil {
		return models.TestExecution{}, err
	}

	return execution, nil
}

func (s *ExecutionService) projectForTestCase(testCaseID string) (string, error) {
	if _, err := s.testCaseRepo.FindByID(testCaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.NewNotFound("test case %s not found", testCaseID)
		}
		return "", err
	}
	return s.testCaseRepo.ProjectIDForTestCase(testCaseID)
}
