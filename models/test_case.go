package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestCaseStatus represents the status of a test case
type TestCaseStatus string

const (
	TestCaseStatusDraft    TestCaseStatus = "draft"
	TestCaseStatusActive   TestCaseStatus = "active"
	TestCaseStatusObsolete TestCaseStatus = "obsolete"
)

var testCaseTransitions = map[TestCaseStatus][]TestCaseStatus{
	TestCaseStatusDraft:    {TestCaseStatusActive, TestCaseStatusObsolete},
	TestCaseStatusActive:   {TestCaseStatusObsolete},
	TestCaseStatusObsolete: {},
}

// CanTransitionTo reports whether the status may move to target
func (s TestCaseStatus) CanTransitionTo(target TestCaseStatus) bool {
	for _, next := range testCaseTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the closed status set
func (s TestCaseStatus) Valid() bool {
	_, ok := testCaseTransitions[s]
	return ok
}

// TestCase represents a concrete verification procedure derived from a user story
type TestCase struct {
	ID              string         `json:"id" gorm:"primaryKey;type:uuid"`
	UserStoryID     string         `json:"userStoryId" gorm:"type:uuid;not null;index"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description" gorm:"default:null"`
	Preconditions   string         `json:"preconditions" gorm:"default:null"`
	TestSteps       TestSteps      `json:"testSteps" gorm:"type:jsonb;default:'[]'"`
	ExpectedResults string         `json:"expectedResults" gorm:"default:null"`
	Priority        *int           `json:"priority" gorm:"default:null"`
	GeneratedByAI   bool           `json:"generatedByAi" gorm:"default:false"`
	RAGEnhanced     bool           `json:"ragEnhanced" gorm:"default:false"`
	Status          TestCaseStatus `json:"status" gorm:"type:varchar(20);default:'draft'"`
	Locked          bool           `json:"locked" gorm:"default:false"`
	CreatedBy       string         `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	UserStory  UserStory          `json:"userStory,omitempty" gorm:"foreignKey:UserStoryID;constraint:OnDelete:CASCADE"`
	Scripts    []AutomationScript `json:"scripts,omitempty" gorm:"foreignKey:TestCaseID;constraint:OnDelete:CASCADE"`
	Executions []TestExecution    `json:"executions,omitempty" gorm:"foreignKey:TestCaseID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for TestCase model
func (TestCase) TableName() string {
	return "test_cases"
}

func (t *TestCase) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
