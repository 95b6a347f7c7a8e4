package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerationType classifies an automated generation attempt
type GenerationType string

const (
	GenerationTestCases          GenerationType = "test_cases"
	GenerationContentEnhancement GenerationType = "content_enhancement"
	GenerationPageScrape         GenerationType = "page_scrape"
)

// AIGenerationLog is an append-only provenance record of one automated
// generation attempt. A failed attempt is logged with Success=false and
// an error message; no entity write follows it.
type AIGenerationLog struct {
	ID             string         `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID      string         `json:"projectId" gorm:"type:uuid;not null;index"`
	GeneratedBy    string         `json:"generatedBy" gorm:"type:uuid;not null"`
	GenerationType GenerationType `json:"generationType" gorm:"type:varchar(40);not null"`
	ModelUsed      string         `json:"modelUsed" gorm:"default:null"`
	TokensUsed     *int           `json:"tokensUsed" gorm:"default:null"`
	ProcessingTime *int           `json:"processingTime" gorm:"default:null"` // Milliseconds
	Success        bool           `json:"success" gorm:"default:false"`
	ErrorMessage   string         `json:"errorMessage" gorm:"default:null"`
	InputData      JSONMap        `json:"inputData" gorm:"type:jsonb;default:'{}'"`
	OutputData     JSONMap        `json:"outputData" gorm:"type:jsonb;default:'{}'"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// TableName sets the table name for AIGenerationLog model
func (AIGenerationLog) TableName() string {
	return "ai_generation_logs"
}

func (l *AIGenerationLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
