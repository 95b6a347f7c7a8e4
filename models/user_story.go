package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoryStatus represents the status of a user story
type StoryStatus string

const (
	StoryStatusDraft           StoryStatus = "draft"
	StoryStatusInProgress      StoryStatus = "in_progress"
	StoryStatusReadyForTesting StoryStatus = "ready_for_testing"
	StoryStatusCompleted       StoryStatus = "completed"
	StoryStatusCancelled       StoryStatus = "cancelled"
)

var storyTransitions = map[StoryStatus][]StoryStatus{
	StoryStatusDraft:           {StoryStatusInProgress, StoryStatusCancelled},
	StoryStatusInProgress:      {StoryStatusReadyForTesting, StoryStatusCancelled},
	StoryStatusReadyForTesting: {StoryStatusCompleted, StoryStatusInProgress, StoryStatusCancelled},
	StoryStatusCompleted:       {},
	StoryStatusCancelled:       {},
}

// CanTransitionTo reports whether the status may move to target
func (s StoryStatus) CanTransitionTo(target StoryStatus) bool {
	for _, next := range storyTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the closed status set
func (s StoryStatus) Valid() bool {
	_, ok := storyTransitions[s]
	return ok
}

// UserStory represents a testable requirement under an epic
type UserStory struct {
	ID                 string         `json:"id" gorm:"primaryKey;type:uuid"`
	EpicID             string         `json:"epicId" gorm:"type:uuid;not null;index"`
	Title              string         `json:"title" gorm:"not null"`
	Description        string         `json:"description" gorm:"default:null"`
	AcceptanceCriteria string         `json:"acceptanceCriteria" gorm:"default:null"`
	StoryPoints        *int           `json:"storyPoints" gorm:"default:null"`
	Priority           *int           `json:"priority" gorm:"default:null"`
	Status             StoryStatus    `json:"status" gorm:"type:varchar(20);default:'draft'"`
	Locked             bool           `json:"locked" gorm:"default:false"`
	CreatedBy          string         `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Epic      Epic       `json:"epic,omitempty" gorm:"foreignKey:EpicID;constraint:OnDelete:CASCADE"`
	TestCases []TestCase `json:"testCases,omitempty" gorm:"foreignKey:UserStoryID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for UserStory model
func (UserStory) TableName() string {
	return "user_stories"
}

func (s *UserStory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
