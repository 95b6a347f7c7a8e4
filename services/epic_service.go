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

// EpicService handles business logic for epics
type EpicService struct {
	epicRepo    *repositories.EpicRepository
	membership  *MembershipService
	consistency *ConsistencyService
}

// NewEpicService creates a new epic service instance
func NewEpicService() *EpicService {
	return &EpicService{
		epicRepo:    repositories.NewEpicRepository(),
		membership:  NewMembershipService(),
		consistency: NewConsistencyService(),
	}
}

// ListEpics retrieves the epics of a project, optionally filtered by status
func (s *EpicService) ListEpics(actorID, projectID string, status models.EpicStatus) ([]models.Epic, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, utils.NewValidation("invalid epic status %q", status)
	}
	return s.epicRepo.FindByProjectID(projectID, status)
}

// GetEpic retrieves an epic the user may read
func (s *EpicService) GetEpic(actorID, epicID string) (models.Epic, error) {
	epic, err := s.epicRepo.FindByID(epicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Epic{}, utils.NewNotFound("epic %s not found", epicID)
		}
		return models.Epic{}, err
	}
	if _, err := s.membership.Authorize(actorID, epic.ProjectID, models.ActionRead); err != nil {
		return models.Epic{}, err
	}
	return epic, nil
}

// CreateEpic creates a new epic under a project
func (s *EpicService) CreateEpic(actorID, projectID string, req dto.CreateEpicRequest) (models.Epic, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteEpic); err != nil {
		return models.Epic{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.Epic{}, err
	}

	title := utils.NormalizeTitle(req.Title)
	if title == "" {
		return models.Epic{}, utils.NewValidation("epic title is required")
	}
	if err := s.consistency.ValidatePositive("priority", req.Priority); err != nil {
		return models.Epic{}, err
	}

	epic := models.Epic{
		ProjectID:          projectID,
		Title:              title,
		Description:        req.Description,
		AcceptanceCriteria: req.AcceptanceCriteria,
		Priority:           req.Priority,
		Status:             models.EpicStatusDraft,
		CreatedBy:          actorID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&epic).Error; err != nil {
			return err
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityCreated,
			Description:  "epic created: " + utils.TruncateString(epic.Title, 120),
			EntityType:   "epic",
			EntityID:     epic.ID,
			Metadata:     models.JSONMap{"title": epic.Title},
		})
	})
	if err != nil {
		return models.Epic{}, err
	}

	return epic, nil
}

// UpdateEpic updates epic fields, guarded by the updated_at the caller read.
// Locked epics reject non-status edits.
func (s *EpicService) UpdateEpic(actorID, epicID string, req dto.UpdateEpicRequest) (models.Epic, error) {
	epic, err := s.epicRepo.FindByID(epicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Epic{}, utils.NewNotFound("epic %s not found", epicID)
		}
		return models.Epic{}, err
	}
	if _, err := s.membership.Authorize(actorID, epic.ProjectID, models.ActionWriteEpic); err != nil {
		return models.Epic{}, err
	}
	if _, err := s.consistency.WritableProject(epic.ProjectID); err != nil {
		return models.Epic{}, err
	}
	if epic.Locked {
		return models.Epic{}, utils.NewForbidden("epic is locked")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := utils.NormalizeTitle(*req.Title)
		if title == "" {
			return models.Epic{}, utils.NewValidation("epic title cannot be empty")
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AcceptanceCriteria != nil {
		updates["acceptance_criteria"] = *req.AcceptanceCriteria
	}
	if req.Priority != nil {
		if err := s.consistency.ValidatePositive("priority", req.Priority); err != nil {
			return models.Epic{}, err
		}
		updates["priority"] = *req.Priority
	}
	if len(updates) == 0 {
		return models.Epic{}, utils.NewValidation("no fields to update")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Epic{}).
			Where("id = ? AND updated_at = ?", epicID, req.UpdatedAt).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewConflict("epic was modified concurrently, re-read and retry")
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    epic.ProjectID,
			UserID:       actorID,
			ActivityType: models.ActivityUpdated,
			Description:  "epic updated",
			EntityType:   "epic",
			EntityID:     epicID,
			Metadata:     models.JSONMap(toMetadata(updates)),
		})
	})
	if err != nil {
		return models.Epic{}, err
	}

	return s.epicRepo.FindByID(epicID)
}

// TransitionEpic moves an epic along its status graph. A transition to
// cancelled locks all active descendants in the same transaction.
func (s *EpicService) TransitionEpic(actorID, epicID string, target models.EpicStatus, seenUpdatedAt time.Time) (models.Epic, error) {
	epic, err := s.epicRepo.FindByID(epicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Epic{}, utils.NewNotFound("epic %s not found", epicID)
		}
		return models.Epic{}, err
	}
	if _, err := s.membership.Authorize(actorID, epic.ProjectID, models.ActionWriteEpic); err != nil {
		return models.Epic{}, err
	}
	if _, err := s.consistency.WritableProject(epic.ProjectID); err != nil {
		return models.Epic{}, err
	}

	if !target.Valid() {
		return models.Epic{}, utils.NewValidation("invalid epic status %q", target)
	}
	if !epic.Status.CanTransitionTo(target) {
		return models.Epic{}, utils.NewInvalidTransition("epic", epic.Status, target)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Epic{}).
			Where("id = ? AND updated_at = ?", epicID, seenUpdatedAt).
			Update("status", target)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewConflict("epic was modified concurrently, re-read and retry")
		}

		if target == models.EpicStatusCancelled {
			if err := s.consistency.LockEpicChildren(tx, epicID); err != nil {
				return err
			}
		}

		return recordActivity(tx, models.ActivityLog{
			ProjectID:    epic.ProjectID,
			UserID:       actorID,
			ActivityType: models.ActivityStatusChanged,
			Description:  "epic status changed",
			EntityType:   "epic",
			EntityID:     epicID,
			Metadata:     models.JSONMap{"from": string(epic.Status), "to": string(target)},
		})
	})
	if err != nil {
		return models.Epic{}, err
	}

	return s.epicRepo.FindByID(epicID)
}
