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

// BugService handles business logic for bug reports
type BugService struct {
	bugRepo       *repositories.BugRepository
	testCaseRepo  *repositories.TestCaseRepository
	executionRepo *repositories.TestExecutionRepository
	membership    *MembershipService
	consistency   *ConsistencyService
}

// NewBugService creates a new bug service instance
func NewBugService() *BugService {
	return &BugService{
		bugRepo:       repositories.NewBugRepository(),
		testCaseRepo:  repositories.NewTestCaseRepository(),
		executionRepo: repositories.NewTestExecutionRepository(),
		membership:    NewMembershipService(),
		consistency:   NewConsistencyService(),
	}
}

// ListBugs retrieves the bugs of a project, optionally filtered by status
func (s *BugService) ListBugs(actorID, projectID string, status models.BugStatus) ([]models.Bug, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, utils.NewValidation("invalid bug status %q", status)
	}
	return s.bugRepo.FindByProjectID(projectID, status)
}

// GetBug retrieves a bug the user may read
func (s *BugService) GetBug(actorID, bugID string) (models.Bug, error) {
	bug, err := s.bugRepo.FindByID(bugID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bug{}, utils.NewNotFound("bug %s not found", bugID)
		}
		return models.Bug{}, err
	}
	if _, err := s.membership.Authorize(actorID, bug.ProjectID, models.ActionRead); err != nil {
		return models.Bug{}, err
	}
	return bug, nil
}

// CreateBug files a new bug against a project. The test case and execution
// links are optional, but when present they must belong to the same project.
func (s *BugService) CreateBug(actorID, projectID string, req dto.CreateBugRequest) (models.Bug, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteBug); err != nil {
		return models.Bug{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.Bug{}, err
	}

	title := utils.NormalizeTitle(req.Title)
	if title == "" {
		return models.Bug{}, utils.NewValidation("bug title is required")
	}
	severity := req.Severity
	if severity == "" {
		severity = models.BugSeverityMedium
	}
	if !severity.Valid() {
		return models.Bug{}, utils.NewValidation("invalid bug severity %q", severity)
	}

	if req.TestCaseID != nil {
		caseProject, err := s.resolveTestCaseProject(*req.TestCaseID)
		if err != nil {
			return models.Bug{}, err
		}
		if caseProject != projectID {
			return models.Bug{}, utils.NewValidation("test case belongs to a different project")
		}
	}
	if req.TestExecutionID != nil {
		execution, err := s.executionRepo.FindByID(*req.TestExecutionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Bug{}, utils.NewNotFound("test execution %s not found", *req.TestExecutionID)
			}
			return models.Bug{}, err
		}
		execProject, err := s.resolveTestCaseProject(execution.TestCaseID)
		if err != nil {
			return models.Bug{}, err
		}
		if execProject != projectID {
			return models.Bug{}, utils.NewValidation("test execution belongs to a different project")
		}
	}

	bug := models.Bug{
		ProjectID:         projectID,
		TestCaseID:        req.TestCaseID,
		TestExecutionID:   req.TestExecutionID,
		Title:             title,
		Description:       req.Description,
		Severity:          severity,
		Status:            models.BugStatusOpen,
		ReproductionSteps: req.ReproductionSteps,
		EnvironmentInfo:   req.EnvironmentInfo,
		Screenshots:       req.Screenshots,
		VideoURL:          req.VideoURL,
		AssignedTo:        req.AssignedTo,
		ReportedBy:        actorID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&bug).Error; err != nil {
			return err
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityCreated,
			Description:  "bug reported: " + utils.TruncateString(bug.Title, 120),
			EntityType:   "bug",
			EntityID:     bug.ID,
			Metadata:     models.JSONMap{"title": bug.Title, "severity": string(bug.Severity)},
		})
	})
	if err != nil {
		return models.Bug{}, err
	}

	return bug, nil
}

// UpdateBug updates bug fields, guarded by the updated_at the caller read.
// Status moves through TransitionBug only.
func (s *BugService) UpdateBug(actorID, bugID string, req dto.UpdateBugRequest) (models.Bug, error) {
	bug, err := s.bugRepo.FindByID(bugID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bug{}, utils.NewNotFound("bug %s not found", bugID)
		}
		return models.Bug{}, err
	}
	if _, err := s.membership.Authorize(actorID, bug.ProjectID, models.ActionWriteBug); err != nil {
		return models.Bug{}, err
	}
	if _, err := s.consistency.WritableProject(bug.ProjectID); err != nil {
		return models.Bug{}, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := utils.NormalizeTitle(*req.Title)
		if title == "" {
			return models.Bug{}, utils.NewValidation("bug title cannot be empty")
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Severity != nil {
		if !req.Severity.Valid() {
			return models.Bug{}, utils.NewValidation("invalid bug severity %q", *req.Severity)
		}
		updates["severity"] = *req.Severity
	}
	if req.ReproductionSteps != nil {
		updates["reproduction_steps"] = *req.ReproductionSteps
	}
	if req.EnvironmentInfo != nil {
		updates["environment_info"] = models.JSONMap(*req.EnvironmentInfo)
	}
	if req.Screenshots != nil {
		updates["screenshots"] = models.StringList(*req.Screenshots)
	}
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
	}
	if len(updates) == 0 {
		return models.Bug{}, utils.NewValidation("no fields to update")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Bug{}).
			Where("id = ? AND updated_at = ?", bugID, req.UpdatedAt).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewConflict("bug was modified concurrently, re-read and retry")
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    bug.ProjectID,
			UserID:       actorID,
			ActivityType: models.ActivityUpdated,
			Description:  "bug updated",
			EntityType:   "bug",
			EntityID:     bugID,
			Metadata:     models.JSONMap(toMetadata(updates)),
		})
	})
	if err != nil {
		return models.Bug{}, err
	}

	return s.bugRepo.FindByID(bugID)
}

// TransitionBug moves a bug along its status graph. Reopening a closed or
// rejected bug is the only back-edge and is reserved for admins and QA leads.
func (s *BugService) TransitionBug(actorID, bugID string, target models.BugStatus, seenUpdatedAt time.Time) (models.Bug, error) {
	bug, err := s.bugRepo.FindByID(bugID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bug{}, utils.NewNotFound("bug %s not found", bugID)
		}
		return models.Bug{}, err
	}
	role, err := s.membership.Authorize(actorID, bug.ProjectID, models.ActionWriteBug)
	if err != nil {
		return models.Bug{}, err
	}
	if _, err := s.consistency.WritableProject(bug.ProjectID); err != nil {
		return models.Bug{}, err
	}

	if !target.Valid() {
		return models.Bug{}, utils.NewValidation("invalid bug status %q", target)
	}
	if !bug.Status.CanTransitionTo(target) {
		return models.Bug{}, utils.NewInvalidTransition("bug", bug.Status, target)
	}
	if bug.Status.Reopening(target) && role != models.RoleAdmin && role != models.RoleQALead {
		return models.Bug{}, utils.NewForbidden("only admins and QA leads can reopen a bug")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Bug{}).
			Where("id = ? AND updated_at = ?", bugID, seenUpdatedAt).
			Update("status", target)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewConflict("bug was modified concurrently, re-read and retry")
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    bug.ProjectID,
			UserID:       actorID,
			ActivityType: models.ActivityStatusChanged,
			Description:  "bug status changed",
			EntityType:   "bug",
			EntityID:     bugID,
			Metadata:     models.JSONMap{"from": string(bug.Status), "to": string(target)},
		})
	})
	if err != nil {
		return models.Bug{}, err
	}

	return s.bugRepo.FindByID(bugID)
}

func (s *BugService) resolveTestCaseProject(testCaseID string) (string, error) {
	if _, err := s.testCaseRepo.FindByID(testCaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.NewNotFound("test case %s not found", testCaseID)
		}
		return "", err
	}
	return s.testCaseRepo.ProjectIDForTestCase(testCaseID)
}
