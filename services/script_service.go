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

// ScriptService handles business logic for automation scripts
type ScriptService struct {
	scriptRepo   *repositories.AutomationScriptRepository
	testCaseRepo *repositories.TestCaseRepository
	membership   *MembershipService
	consistency  *ConsistencyService
}

// NewScriptService creates a new script service instance
func NewScriptService() *ScriptService {
	return &ScriptService{
		scriptRepo:   repositories.NewAutomationScriptRepository(),
		testCaseRepo: repositories.NewTestCaseRepository(),
		membership:   NewMembershipService(),
		consistency:  NewConsistencyService(),
	}
}

// ListScripts retrieves the automation scripts attached to a test case
func (s *ScriptService) ListScripts(actorID, testCaseID string) ([]models.AutomationScript, error) {
	projectID, err := s.projectForTestCase(testCaseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return nil, err
	}
	return s.scriptRepo.FindByTestCaseID(testCaseID)
}

// GetScript retrieves an automation script the user may read
func (s *ScriptService) GetScript(actorID, scriptID string) (models.AutomationScript, error) {
	script, err := s.scriptRepo.FindByID(scriptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AutomationScript{}, utils.NewNotFound("automation script %s not found", scriptID)
		}
		return models.AutomationScript{}, err
	}
	projectID, err := s.projectForTestCase(script.TestCaseID)
	if err != nil {
		return models.AutomationScript{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return models.AutomationScript{}, err
	}
	return script, nil
}

// CreateScript attaches a new automation script to a test case
func (s *ScriptService) CreateScript(actorID, testCaseID string, req dto.CreateScriptRequest) (models.AutomationScript, error) {
	testCase, err := s.consistency.ParentTestCase(testCaseID)
	if err != nil {
		return models.AutomationScript{}, err
	}
	projectID, err := s.projectForTestCase(testCase.ID)
	if err != nil {
		return models.AutomationScript{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteScript); err != nil {
		return models.AutomationScript{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.AutomationScript{}, err
	}

	name := utils.NormalizeTitle(req.Name)
	if name == "" {
		return models.AutomationScript{}, utils.NewValidation("script name is required")
	}
	if req.ScriptContent == "" {
		return models.AutomationScript{}, utils.NewValidation("script content is required")
	}

	script := models.AutomationScript{
		TestCaseID:          testCaseID,
		Name:                name,
		ScriptContent:       req.ScriptContent,
		Language:            req.Language,
		Framework:           req.Framework,
		SelfHealingEnabled:  req.SelfHealingEnabled,
		LastExecutionStatus: models.ExecutionStatusNotRun,
		CreatedBy:           actorID,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&script).Error; err != nil {
			return err
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityCreated,
			Description:  "automation script created: " + utils.TruncateString(script.Name, 120),
			EntityType:   "automation_script",
			EntityID:     script.ID,
			Metadata:     models.JSONMap{"name": script.Name, "testCaseId": testCaseID},
		})
	})
	if err != nil {
		return models.AutomationScript{}, err
	}

	return script, nil
}

// UpdateScript updates script fields, guarded by the updated_at the caller
// read. Locked scripts reject edits; last_execution_status is never
// client-writable — it only moves with execution records.
func (s *ScriptService) UpdateScript(actorID, scriptID string, req dto.UpdateScriptRequest) (models.AutomationScript, error) {
	script, err := s.scriptRepo.FindByID(scriptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AutomationScript{}, utils.NewNotFound("automation script %s not found", scriptID)
		}
		return models.AutomationScript{}, err
	}
	projectID, err := s.projectForTestCase(script.TestCaseID)
	if err != nil {
		return models.AutomationScript{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteScript); err != nil {
		return models.AutomationScript{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.AutomationScript{}, err
	}
	if script.Locked {
		return models.AutomationScript{}, utils.NewForbidden("automation script is locked")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := utils.NormalizeTitle(*req.Name)
		if name == "" {
			return models.AutomationScript{}, utils.NewValidation("script name cannot be empty")
		}
		updates["name"] = name
	}
	if req.ScriptContent != nil {
		if *req.ScriptContent == "" {
			return models.AutomationScript{}, utils.NewValidation("script content cannot be empty")
		}
		updates["script_content"] = *req.ScriptContent
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.Framework != nil {
		updates["framework"] = *req.Framework
	}
	if req.SelfHealingEnabled != nil {
		updates["self_healing_enabled"] = *req.SelfHealingEnabled
	}
	if len(updates) == 0 {
		return models.AutomationScript{}, utils.NewValidation("no fields to update")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.AutomationScript{}).
			Where("id = ? AND updated_at = ?", scriptID, req.UpdatedAt).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewConflict("automation script was modified concurrently, re-read and retry")
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityUpdated,
			Description:  "automation script updated",
			EntityType:   "automation_script",
			EntityID:     scriptID,
			Metadata:     models.JSONMap(toMetadata(updates)),
		})
	})
	if err != nil {
		return models.AutomationScript{}, err
	}

	return s.scriptRepo.FindByID(scriptID)
}

func (s *ScriptService) projectForTestCase(testCaseID string) (string, error) {
	if _, err := s.testCaseRepo.FindByID(testCaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.NewNotFound("test case %s not found", testCaseID)
		}
		return "", err
	}
	return s.testCaseRepo.ProjectIDForTestCase(testCaseID)
}
