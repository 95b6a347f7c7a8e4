package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BugStatus represents the status of a bug
type BugStatus string

const (
	BugStatusOpen       BugStatus = "open"
	BugStatusInProgress BugStatus = "in_progress"
	BugStatusResolved   BugStatus = "resolved"
	BugStatusClosed     BugStatus = "closed"
	BugStatusRejected   BugStatus = "rejected"
)

// Reopening closed/rejected bugs is the only back-edge and is
// restricted to admin and qa_lead in the consistency checks.
var bugTransitions = map[BugStatus][]BugStatus{
	BugStatusOpen:       {BugStatusInProgress},
	BugStatusInProgress: {BugStatusResolved, BugStatusRejected},
	BugStatusResolved:   {BugStatusClosed},
	BugStatusClosed:     {BugStatusInProgress},
	BugStatusRejected:   {BugStatusInProgress},
}

// CanTransitionTo reports whether the status may move to target
func (s BugStatus) CanTransitionTo(target BugStatus) bool {
	for _, next := range bugTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the closed status set
func (s BugStatus) Valid() bool {
	_, ok := bugTransitions[s]
	return ok
}

// Reopening reports whether moving from s to target is the restricted back-edge
func (s BugStatus) Reopening(target BugStatus) bool {
	return (s == BugStatusClosed || s == BugStatusRejected) && target == BugStatusInProgress
}

// BugSeverity represents the severity of a bug
type BugSeverity string

const (
	BugSeverityCritical BugSeverity = "critical"
	BugSeverityHigh     BugSeverity = "high"
	BugSeverityMedium   BugSeverity = "medium"
	BugSeverityLow      BugSeverity = "low"
)

// Valid reports whether s is one of the closed severity set
func (s BugSeverity) Valid() bool {
	switch s {
	case BugSeverityCritical, BugSeverityHigh, BugSeverityMedium, BugSeverityLow:
		return true
	}
	return false
}

// Bug represents a defect record, optionally linked to the test case
// and execution that revealed it. The project reference is explicit
// because both links are optional.
type Bug struct {
	ID                string         `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID         string         `json:"projectId" gorm:"type:uuid;not null;index"`
	TestCaseID        *string        `json:"testCaseId" gorm:"type:uuid;default:null;index"`
	TestExecutionID   *string        `json:"testExecutionId" gorm:"type:uuid;default:null;index"`
	Title             string         `json:"title" gorm:"not null"`
	Description       string         `json:"description" gorm:"default:null"`
	Severity          BugSeverity    `json:"severity" gorm:"type:varchar(20);default:'medium'"`
	Status            BugStatus      `json:"status" gorm:"type:varchar(20);default:'open'"`
	ReproductionSteps string         `json:"reproductionSteps" gorm:"default:null"`
	EnvironmentInfo   JSONMap        `json:"environmentInfo" gorm:"type:jsonb;default:'{}'"`
	Screenshots       StringList     `json:"screenshots" gorm:"type:jsonb;default:'[]'"`
	VideoURL          string         `json:"videoUrl" gorm:"default:null"`
	AssignedTo        *string        `json:"assignedTo" gorm:"type:uuid;default:null"`
	ReportedBy        string         `json:"reportedBy" gorm:"type:uuid;not null"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Project       Project        `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	TestCase      *TestCase      `json:"testCase,omitempty" gorm:"foreignKey:TestCaseID"`
	TestExecution *TestExecution `json:"testExecution,omitempty" gorm:"foreignKey:TestExecutionID"`
}

// TableName sets the table name for Bug model
func (Bug) TableName() string {
	return "bugs"
}

func (b *Bug) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
