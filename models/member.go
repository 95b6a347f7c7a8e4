package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents a member's role within a project
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleQALead     Role = "qa_lead"
	RoleQAEngineer Role = "qa_engineer"
	RoleDeveloper  Role = "developer"
	RoleViewer     Role = "viewer"
)

// ValidRole reports whether r is one of the closed role set
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleQALead, RoleQAEngineer, RoleDeveloper, RoleViewer:
		return true
	}
	return false
}

// Action represents an operation a member may perform on a project
type Action string

const (
	ActionRead           Action = "read"
	ActionWriteEpic      Action = "write_epic"
	ActionWriteStory     Action = "write_story"
	ActionWriteTestCase  Action = "write_test_case"
	ActionWriteScript    Action = "write_script"
	ActionWriteExecution Action = "write_execution"
	ActionWriteBug       Action = "write_bug"
	ActionManageMembers  Action = "manage_members"
	ActionManageProject  Action = "manage_project"
)

// roleCapabilities maps each role to the actions it may perform.
// Membership is checked per request, so a role change takes effect
// on the next request.
var roleCapabilities = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionRead:           true,
		ActionWriteEpic:      true,
		ActionWriteStory:     true,
		ActionWriteTestCase:  true,
		ActionWriteScript:    true,
		ActionWriteExecution: true,
		ActionWriteBug:       true,
		ActionManageMembers:  true,
		ActionManageProject:  true,
	},
	RoleQALead: {
		ActionRead:           true,
		ActionWriteEpic:      true,
		ActionWriteStory:     true,
		ActionWriteTestCase:  true,
		ActionWriteScript:    true,
		ActionWriteExecution: true,
		ActionWriteBug:       true,
	},
	RoleQAEngineer: {
		ActionRead:           true,
		ActionWriteTestCase:  true,
		ActionWriteScript:    true,
		ActionWriteExecution: true,
		ActionWriteBug:       true,
	},
	RoleDeveloper: {
		ActionRead:     true,
		ActionWriteBug: true,
	},
	RoleViewer: {
		ActionRead: true,
	},
}

// Can reports whether the role is allowed to perform the action
func (r Role) Can(action Action) bool {
	caps, ok := roleCapabilities[r]
	if !ok {
		return false
	}
	return caps[action]
}

// ProjectMember links a user to a project with a role
type ProjectMember struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID string    `json:"projectId" gorm:"type:uuid;not null;index;uniqueIndex:idx_project_user"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;index;uniqueIndex:idx_project_user"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;default:'viewer'"`
	JoinedAt  time.Time `json:"joinedAt" gorm:"autoCreateTime"`

	// Relations
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for ProjectMember model
func (ProjectMember) TableName() string {
	return "project_members"
}

func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
