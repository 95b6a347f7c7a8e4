package services

import (
	"errors"

	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/repositories"
	"github.com/testtrack-simple/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MembershipService is the authorization layer: it resolves whether a user
// may perform an action on a project, and manages membership records.
// Membership is loaded per request; a role change takes effect on the
// next check.
type MembershipService struct {
	memberRepo  *repositories.MemberRepository
	projectRepo *repositories.ProjectRepository
	userRepo    *repositories.UserRepository
}

// NewMembershipService creates a new membership service instance
func NewMembershipService() *MembershipService {
	return &MembershipService{
		memberRepo:  repositories.NewMemberRepository(),
		projectRepo: repositories.NewProjectRepository(),
		userRepo:    repositories.NewUserRepository(),
	}
}

// Authorize returns the member's role if the user may perform the action
// on the project. A user with no membership record is denied everything,
// including read.
func (s *MembershipService) Authorize(userID, projectID string, action models.Action) (models.Role, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.NewNotFound("project %s not found", projectID)
		}
		return "", err
	}

	member, err := s.memberRepo.FindByProjectAndUser(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.NewForbidden("user is not a member of this project")
		}
		return "", err
	}

	if !member.Role.Can(action) {
		return "", utils.NewForbidden("role %s may not perform %s", member.Role, action)
	}

	return member.Role, nil
}

// ListMembers retrieves the membership list of a project
func (s *MembershipService) ListMembers(actorID, projectID string) ([]models.ProjectMember, error) {
	if _, err := s.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return nil, err
	}
	return s.memberRepo.FindByProjectID(projectID)
}

// AddMember adds a user to a project with the given role
func (s *MembershipService) AddMember(actorID, projectID, userID string, role models.Role) (models.ProjectMember, error) {
	if _, err := s.Authorize(actorID, projectID, models.ActionManageMembers); err != nil {
		return models.ProjectMember{}, err
	}

	if !models.ValidRole(role) {
		return models.ProjectMember{}, utils.NewValidation("invalid role %q", role)
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProjectMember{}, utils.NewNotFound("user %s not found", userID)
		}
		return models.ProjectMember{}, err
	}

	if _, err := s.memberRepo.FindByProjectAndUser(projectID, userID); err == nil {
		return models.ProjectMember{}, utils.NewValidation("user is already a member of this project")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ProjectMember{}, err
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityMemberAdded,
			Description:  "member added",
			EntityType:   "project_member",
			EntityID:     member.ID,
			Metadata:     models.JSONMap{"userId": userID, "role": string(role)},
		})
	})
	if err != nil {
		return models.ProjectMember{}, err
	}

	return member, nil
}

// UpdateMemberRole changes a member's role. A project keeps at least one
// admin at all times: demoting the last admin is rejected.
func (s *MembershipService) UpdateMemberRole(actorID, projectID, memberID string, role models.Role) error {
	if _, err := s.Authorize(actorID, projectID, models.ActionManageMembers); err != nil {
		return err
	}

	if !models.ValidRole(role) {
		return utils.NewValidation("invalid role %q", role)
	}

	member, err := s.findMember(projectID, memberID)
	if err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if member.Role == models.RoleAdmin && role != models.RoleAdmin {
			admins, err := lockAdmins(tx, projectID)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return utils.NewValidation("cannot demote the last admin of the project")
			}
		}
		if err := tx.Model(&models.ProjectMember{}).
			Where("id = ?", memberID).
			Update("role", role).Error; err != nil {
			return err
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityMemberRoleChange,
			Description:  "member role changed",
			EntityType:   "project_member",
			EntityID:     memberID,
			Metadata:     models.JSONMap{"from": string(member.Role), "to": string(role)},
		})
	})
}

// RemoveMember removes a member from a project. Removing the last admin
// is rejected.
func (s *MembershipService) RemoveMember(actorID, projectID, memberID string) error {
	if _, err := s.Authorize(actorID, projectID, models.ActionManageMembers); err != nil {
		return err
	}

	member, err := s.findMember(projectID, memberID)
	if err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if member.Role == models.RoleAdmin {
			admins, err := lockAdmins(tx, projectID)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return utils.NewValidation("cannot remove the last admin of the project")
			}
		}
		if err := tx.Delete(&models.ProjectMember{}, "id = ?", memberID).Error; err != nil {
			return err
		}
		return recordActivity(tx, models.ActivityLog{
			ProjectID:    projectID,
			UserID:       actorID,
			ActivityType: models.ActivityMemberRemoved,
			Description:  "member removed",
			EntityType:   "project_member",
			EntityID:     memberID,
			Metadata:     models.JSONMap{"userId": member.UserID, "role": string(member.Role)},
		})
	})
}

// lockAdmins locks the project's admin rows and returns their count.
// The row locks serialize concurrent membership writes on the same
// project, so two simultaneous removals cannot both pass the last-admin
// guard. SQLite has a single writer and ignores the locking clause.
func lockAdmins(tx *gorm.DB, projectID string) (int64, error) {
	var admins []models.ProjectMember
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ? AND role = ?", projectID, models.RoleAdmin).
		Find(&admins).Error
	return int64(len(admins)), err
}

func (s *MembershipService) findMember(projectID, memberID string) (models.ProjectMember, error) {
	var member models.ProjectMember
	err := database.DB.First(&member, "id = ? AND project_id = ?", memberID, projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return member, utils.NewNotFound("member %s not found in project", memberID)
		}
		return member, err
	}
	return member, nil
}
