package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExecutionStatus represents the outcome of a test execution
type ExecutionStatus string

const (
	ExecutionStatusNotRun  ExecutionStatus = "not_run"
	ExecutionStatusPassed  ExecutionStatus = "passed"
	ExecutionStatusFailed  ExecutionStatus = "failed"
	ExecutionStatusBlocked ExecutionStatus = "blocked"
	ExecutionStatusSkipped ExecutionStatus = "skipped"
)

// Valid reports whether s is one of the closed status set
func (s ExecutionStatus) Valid() bool {
	switch s {
	case ExecutionStatusNotRun, ExecutionStatusPassed, ExecutionStatusFailed,
		ExecutionStatusBlocked, ExecutionStatusSkipped:
		return true
	}
	return false
}

// TestExecution represents one recorded run of a test case.
// Executions are immutable once recorded.
type TestExecution struct {
	ID                 string          `json:"id" gorm:"primaryKey;type:uuid"`
	TestCaseID         string          `json:"testCaseId" gorm:"type:uuid;not null;index"`
	AutomationScriptID *string         `json:"automationScriptId" gorm:"type:uuid;default:null;index"`
	ExecutedBy         string          `json:"executedBy" gorm:"type:uuid;not null"`
	ExecutedAt         time.Time       `json:"executedAt" gorm:"autoCreateTime"`
	ExecutionTime      *int            `json:"executionTime" gorm:"default:null"` // Milliseconds
	Status             ExecutionStatus `json:"status" gorm:"type:varchar(20);default:'not_run'"`
	ExecutionDetails   JSONMap         `json:"executionDetails" gorm:"type:jsonb;default:'{}'"`
	CreatedAt          time.Time       `json:"createdAt"`

	// Relations
	TestCase         TestCase          `json:"testCase,omitempty" gorm:"foreignKey:TestCaseID;constraint:OnDelete:CASCADE"`
	AutomationScript *AutomationScript `json:"automationScript,omitempty" gorm:"foreignKey:AutomationScriptID"`
}

// TableName sets the table name for TestExecution model
func (TestExecution) TableName() string {
	return "test_executions"
}

func (e *TestExecution) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
