package services

import (
	"time"

	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/repositories"
	"github.com/testtrack-simple/utils"
	"gorm.io/gorm"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	memberRepo  *repositories.MemberRepository
	membership  *MembershipService
	consistency *ConsistencyService
}

// NewProjectService creates a new project service instance
func NewProjectService() *ProjectService {
	return &ProjectService{
		projectRepo: repositories.NewProjectRepository(),
		memberRepo:  repositories.NewMemberRepository(),
		membership:  NewMembershipService(),
		consistency: NewConsistencyService(),
	}
}

// ListProjects retrieves the projects the user is a member of
func (s *ProjectService) ListProjects(userID string) ([]models.Project, error) {
	return s.projectRepo.FindMemberProjects(userID)
}

// GetProject retrieves a project the user is a member of
func (s *ProjectService) GetProject(actorID, projectID string) (models.Project, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return models.Project{}, err
	}
	return s.projectRepo.FindByID(projectID)
}

// CreateProject creates a new project and seeds the creator as its admin
// member in the same transaction
func (s *ProjectService) CreateProject(actorID string, req dto.CreateProjectRequest) (models.Project, error) {
	name := utils.NormalizeTitle(req.Name)
	if name == "" {
		return models.Project{}, utils.NewValidation("project name is required")
	}

	project := models.Project{
		Name:        name,
		Description: req.Description,
		AppURL:      req.AppURL,
		Status:      models.ProjectStatusActive,
		CreatedBy:   actorID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		creator := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    actorID,
			Role:      models.RoleAdmin,
		}
		if err := tx.Create(&creator).Error; err != nil {
			return err
		}

		return recordActivity(tx, models.ActivityLog{
			ProjectID:    project.ID,
			UserID:       actorID,
			ActivityType: models.ActivityCreated,
			Description:  "project created: " + utils.TruncateString(project.Name, 120),
			EntityType:   "project",
			EntityID:     project.ID,
			Metadata:     models.JSONMap{"name": project.Name},
		})
	})
	if err != nil {
		return models.Project{}, err
	}

	return project, nil
}

// UpdateProject updates project fields. The caller supplies the updated_at
// it last read; a mismatch means a concurrent writer won and the update
// fails with Conflict.
func (s *ProjectService) UpdateProject(actorID, projectID string, req dto.UpdateProjectRequest) (models.Project, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionManageProject); err != nil {
		return models.Project{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.Project{}, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := utils.NormalizeTitle(*req.Name)
		if name == "" {
			return models.Project{}, utils.NewValidation("project name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AppURL != nil {
		updates["app_url"] = *req.AppURL
	}
	if len(updates) == 0 {
		return models.Project{}, utils.NewValidation("no fields to update")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Project{}).
			Where("id = ? AND updated_at = ?", projectID, req.UpdatedAt).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewConflict("project was modified concurrently, re-read and retry")
		}

		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityUpdated,
			Description:  "project updated",
			EntityType:   "project",
			EntityID:     projectID,
			Metadata:     models.JSONMap(toMetadata(updates)),
		})
	})
	if err != nil {
		return models.Project{}, err
	}

	return s.projectRepo.FindByID(projectID)
}

// SetProjectStatus transitions a project between active, inactive and
// archived. Archiving freezes mutation of the project's descendants.
func (s *ProjectService) SetProjectStatus(actorID, projectID string, target models.ProjectStatus, seenUpdatedAt time.Time) (models.Project, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionManageProject); err != nil {
		return models.Project{}, err
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return models.Project{}, utils.NewNotFound("project %s not found", projectID)
	}

	if !target.Valid() {
		return models.Project{}, utils.NewValidation("invalid project status %q", target)
	}
	if !project.Status.CanTransitionTo(target) {
		return models.Project{}, utils.NewInvalidTransition("project", project.Status, target)
	}

	activityType := models.ActivityStatusChanged
	if target == models.ProjectStatusArchived {
		activityType = models.ActivityArchived
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Project{}).
			Where("id = ? AND updated_at = ?", projectID, seenUpdatedAt).
			Update("status", target)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewConflict("project was modified concurrently, re-read and retry")
		}

		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: activityType,
			Description:  "project status changed",
			EntityType:   "project",
			EntityID:     projectID,
			Metadata:     models.JSONMap{"from": string(project.Status), "to": string(target)},
		})
	})
	if err != nil {
		return models.Project{}, err
	}

	return s.projectRepo.FindByID(projectID)
}

// toMetadata snapshots an update map for the activity log
func toMetadata(updates map[string]interface{}) map[string]interface{} {
	meta := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		meta[k] = v
	}
	return meta
}
