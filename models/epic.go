package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EpicStatus represents the status of an epic
type EpicStatus string

const (
	EpicStatusDraft      EpicStatus = "draft"
	EpicStatusInProgress EpicStatus = "in_progress"
	EpicStatusCompleted  EpicStatus = "completed"
	EpicStatusCancelled  EpicStatus = "cancelled"
)

var epicTransitions = map[EpicStatus][]EpicStatus{
	EpicStatusDraft:      {EpicStatusInProgress, EpicStatusCancelled},
	EpicStatusInProgress: {EpicStatusCompleted, EpicStatusCancelled},
	EpicStatusCompleted:  {},
	EpicStatusCancelled:  {},
}

// CanTransitionTo reports whether the status may move to target
func (s EpicStatus) CanTransitionTo(target EpicStatus) bool {
	for _, next := range epicTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the closed status set
func (s EpicStatus) Valid() bool {
	_, ok := epicTransitions[s]
	return ok
}

// Epic represents a top-level unit of work within a project
type Epic struct {
	ID                 string         `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID          string         `json:"projectId" gorm:"type:uuid;not null;index"`
	Title              string         `json:"title" gorm:"not null"`
	Description        string         `json:"description" gorm:"default:null"`
	AcceptanceCriteria string         `json:"acceptanceCriteria" gorm:"default:null"`
	Priority           *int           `json:"priority" gorm:"default:null"`
	Status             EpicStatus     `json:"status" gorm:"type:varchar(20);default:'draft'"`
	Locked             bool           `json:"locked" gorm:"default:false"` // Set when a parent reaches a cancelled state
	CreatedBy          string         `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Project Project     `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Stories []UserStory `json:"stories,omitempty" gorm:"foreignKey:EpicID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for Epic model
func (Epic) TableName() string {
	return "epics"
}

func (e *Epic) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
