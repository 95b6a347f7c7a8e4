package services

import (
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/repositories"
	"gorm.io/gorm"
)

// recordActivity appends one audit record inside the caller's transaction
// so the mutation and its log entry commit together.
func recordActivity(tx *gorm.DB, entry models.ActivityLog) error {
	return tx.Create(&entry).Error
}

// ActivityService exposes read access to the append-only audit log
type ActivityService struct {
	membership   *MembershipService
	activityRepo *repositories.ActivityLogRepository
}

// NewActivityService creates a new activity service instance
func NewActivityService() *ActivityService {
	return &ActivityService{
		membership:   NewMembershipService(),
		activityRepo: repositories.NewActivityLogRepository(),
	}
}

// ListProjectActivity retrieves recent audit records for a project
func (s *ActivityService) ListProjectActivity(actorID, projectID string, limit int) ([]models.ActivityLog, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return nil, err
	}
	return s.activityRepo.FindByProjectID(projectID, limit)
}
