package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AutomationScript represents an executable encoding of a test case's steps.
// LastExecutionStatus always mirrors the status of the newest linked
// test execution; the execution write and this update commit together.
type AutomationScript struct {
	ID                  string          `json:"id" gorm:"primaryKey;type:uuid"`
	TestCaseID          string          `json:"testCaseId" gorm:"type:uuid;not null;index"`
	Name                string          `json:"name" gorm:"not null"`
	ScriptContent       string          `json:"scriptContent" gorm:"type:text;not null"`
	Language            string          `json:"language" gorm:"default:null"`
	Framework           string          `json:"framework" gorm:"default:null"`
	SelfHealingEnabled  bool            `json:"selfHealingEnabled" gorm:"default:false"`
	LastExecutionStatus ExecutionStatus `json:"lastExecutionStatus" gorm:"type:varchar(20);default:'not_run'"`
	Locked              bool            `json:"locked" gorm:"default:false"`
	CreatedBy           string          `json:"createdBy" gorm:"type:uuid;not null"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	TestCase TestCase `json:"testCase,omitempty" gorm:"foreignKey:TestCaseID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for AutomationScript model
func (AutomationScript) TableName() string {
	return "automation_scripts"
}

func (s *AutomationScript) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
