package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusInactive ProjectStatus = "inactive"
	ProjectStatusArchived ProjectStatus = "archived"
)

var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusActive:   {ProjectStatusInactive, ProjectStatusArchived},
	ProjectStatusInactive: {ProjectStatusActive, ProjectStatusArchived},
	ProjectStatusArchived: {},
}

// CanTransitionTo reports whether the status may move to target
func (s ProjectStatus) CanTransitionTo(target ProjectStatus) bool {
	for _, next := range projectTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the closed status set
func (s ProjectStatus) Valid() bool {
	_, ok := projectTransitions[s]
	return ok
}

// Project is the root aggregate; all other entities live under a project
type Project struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"default:null"`
	AppURL      string         `json:"appUrl" gorm:"default:null"` // External application under test
	Status      ProjectStatus  `json:"status" gorm:"type:varchar(20);default:'active'"`
	CreatedBy   string         `json:"createdBy" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Members []ProjectMember `json:"members,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Epics   []Epic          `json:"epics,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for Project model
func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Archived reports whether the project is frozen for mutation
func (p *Project) Archived() bool {
	return p.Status == ProjectStatusArchived
}
