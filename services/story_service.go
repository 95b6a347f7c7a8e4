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

// StoryService handles business logic for user stories
type StoryService struct {
	storyRepo   *repositories.UserStoryRepository
	epicRepo    *repositories.EpicRepository
	membership  *MembershipService
	consistency *ConsistencyService
}

// NewStoryService creates a new story service instance
func NewStoryService() *StoryService {
	return &StoryService{
		storyRepo:   repositories.NewUserStoryRepository(),
		epicRepo:    repositories.NewEpicRepository(),
		membership:  NewMembershipService(),
		consistency: NewConsistencyService(),
	}
}

// projectFor resolves the owning project of a story through its epic
func (s *StoryService) projectFor(story models.UserStory) (string, error) {
	epic, err := s.epicRepo.FindByID(story.EpicID)
	if err != nil {
		return "", err
	}
	return epic.ProjectID, nil
}

// ListStories retrieves the stories under an epic, optionally filtered by status
func (s *StoryService) ListStories(actorID, epicID string, status models.StoryStatus) ([]models.UserStory, error) {
	epic, err := s.epicRepo.FindByID(epicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("epic %s not found", epicID)
		}
		return nil, err
	}
	if _, err := s.membership.Authorize(actorID, epic.ProjectID, models.ActionRead); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, utils.NewValidation("invalid story status %q", status)
	}
	return s.storyRepo.FindByEpicID(epicID, status)
}

// GetStory retrieves a user story the user may read
func (s *StoryService) GetStory(actorID, storyID string) (models.UserStory, error) {
	story, err := s.storyRepo.FindByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserStory{}, utils.NewNotFound("user story %s not found", storyID)
		}
		return models.UserStory{}, err
	}
	projectID, err := s.projectFor(story)
	if err != nil {
		return models.UserStory{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return models.UserStory{}, err
	}
	return story, nil
}

// CreateStory creates a new user story under an epic
func (s *StoryService) CreateStory(actorID, epicID string, req dto.CreateStoryRequest) (models.UserStory, error) {
	epic, err := s.consistency.ParentEpic(epicID)
	if err != nil {
		return models.UserStory{}, err
	}
	if _, err := s.membership.Authorize(actorID, epic.ProjectID, models.ActionWriteStory); err != nil {
		return models.UserStory{}, err
	}
	if _, err := s.consistency.WritableProject(epic.ProjectID); err != nil {
		return models.UserStory{}, err
	}

	title := utils.NormalizeTitle(req.Title)
	if title == "" {
		return models.UserStory{}, utils.NewValidation("story title is required")
	}
	if err := s.consistency.ValidatePositive("priority", req.Priority); err != nil {
		return models.UserStory{}, err
	}
	if err := s.consistency.ValidatePositive("story points", req.StoryPoints); err != nil {
		return models.UserStory{}, err
	}

	story := models.UserStory{
		EpicID:             epicID,
		Title:              title,
		Description:        req.Description,
		AcceptanceCriteria: req.AcceptanceCriteria,
		StoryPoints:        req.StoryPoints,
		Priority:           req.Priority,
		Status:             models.StoryStatusDraft,
		CreatedBy:          actorID,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&story).Error; err != nil {
			return err
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    epic.ProjectID,
			UserID:       actorID,
			ActivityType: models.ActivityCreated,
			Description:  "user story created: " + utils.TruncateString(story.Title, 120),
			EntityType:   "user_story",
			EntityID:     story.ID,
			Metadata:     models.JSONMap{"title": story.Title, "epicId": epicID},
		})
	})
	if err != nil {
		return models.UserStory{}, err
	}

	return story, nil
}

// UpdateStory updates story fields, guarded by the updated_at the caller read.
// Locked stories reject non-status edits.
func (s *StoryService) UpdateStory(actorID, storyID string, req dto.UpdateStoryRequest) (models.UserStory, error) {
	story, err := s.storyRepo.FindByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserStory{}, utils.NewNotFound("user story %s not found", storyID)
		}
		return models.UserStory{}, err
	}
	projectID, err := s.projectFor(story)
	if err != nil {
		return models.UserStory{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteStory); err != nil {
		return models.UserStory{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.UserStory{}, err
	}
	if story.Locked {
		return models.UserStory{}, utils.NewForbidden("user story is locked")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := utils.NormalizeTitle(*req.Title)
		if title == "" {
			return models.UserStory{}, utils.NewValidation("story title cannot be empty")
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
			return models.UserStory{}, err
		}
		updates["priority"] = *req.Priority
	}
	if req.StoryPoints != nil {
		if err := s.consistency.ValidatePositive("story points", req.StoryPoints); err != nil {
			return models.UserStory{}, err
		}
		updates["story_points"] = *req.StoryPoints
	}
	if len(updates) == 0 {
		return models.UserStory{}, utils.NewValidation("no fields to update")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.UserStory{}).
			Where("id = ? AND updated_at = ?", storyID, req.UpdatedAt).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewConflict("user story was modified concurrently, re-read and retry")
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityUpdated,
			Description:  "user story updated",
			EntityType:   "user_story",
			EntityID:     storyID,
			Metadata:     models.JSONMap(toMetadata(updates)),
		})
	})
	if err != nil {
		return models.UserStory{}, err
	}

	return s.storyRepo.FindByID(storyID)
}

// TransitionStory moves a story along its status graph. A transition to
// cancelled locks all active descendants in the same transaction.
func (s *StoryService) TransitionStory(actorID, storyID string, target models.StoryStatus, seenUpdatedAt time.Time) (models.UserStory, error) {
	story, err := s.storyRepo.FindByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserStory{}, utils.NewNotFound("user story %s not found", storyID)
		}
		return models.UserStory{}, err
	}
	projectID, err := s.projectFor(story)
	if err != nil {
		return models.UserStory{}, err
	}
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteStory); err != nil {
		return models.UserStory{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.UserStory{}, err
	}

	if !target.Valid() {
		return models.UserStory{}, utils.NewValidation("invalid story status %q", target)
	}
	if !story.Status.CanTransitionTo(target) {
		return models.UserStory{}, utils.NewInvalidTransition("user story", story.Status, target)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.UserStory{}).
			Where("id = ? AND updated_at = ?", storyID, seenUpdatedAt).
			Update("status", target)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewConflict("user story was modified concurrently, re-read and retry")
		}

		if target == models.StoryStatusCancelled {
			if err := s.consistency.LockStoryChildren(tx, storyID); err != nil {
				return err
			}
		}

		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityStatusChanged,
			Description:  "user story status changed",
			EntityType:   "user_story",
			EntityID:     storyID,
			Metadata:     models.JSONMap{"from": string(story.Status), "to": string(target)},
		})
	})
	if err != nil {
		return models.UserStory{}, err
	}

	return s.storyRepo.FindByID(storyID)
}
