package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityType classifies an audit record
type ActivityType string

const (
	ActivityCreated          ActivityType = "created"
	ActivityUpdated          ActivityType = "updated"
	ActivityStatusChanged    ActivityType = "status_changed"
	ActivityMemberAdded      ActivityType = "member_added"
	ActivityMemberRemoved    ActivityType = "member_removed"
	ActivityMemberRoleChange ActivityType = "member_role_changed"
	ActivityArchived         ActivityType = "archived"
)

// ActivityLog is an append-only audit record of a mutation.
// Rows are never updated or deleted once written and are
// observational only, never used to reconstruct entity state.
type ActivityLog struct {
	ID           string       `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID    string       `json:"projectId" gorm:"type:uuid;not null;index"`
	UserID       string       `json:"userId" gorm:"type:uuid;not null"`
	ActivityType ActivityType `json:"activityType" gorm:"type:varchar(40);not null"`
	Description  string       `json:"description" gorm:"default:null"`
	EntityType   string       `json:"entityType" gorm:"default:null"`
	EntityID     string       `json:"entityId" gorm:"type:uuid;default:null"`
	Metadata     JSONMap      `json:"metadata" gorm:"type:jsonb;default:'{}'"` // Snapshot of changed fields
	CreatedAt    time.Time    `json:"createdAt"`
}

// TableName sets the table name for ActivityLog model
func (ActivityLog) TableName() string {
	return "activity_logs"
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
