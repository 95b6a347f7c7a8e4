package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScrapedPage stores the extracted content of one page of the application
// under test, used for RAG enhancement of generated test cases. Scraping
// itself happens in an external worker; the model only records the result.
type ScrapedPage struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID     string     `json:"projectId" gorm:"type:uuid;not null;index"`
	URL           string     `json:"url" gorm:"not null"`
	Title         string     `json:"title" gorm:"default:null"`
	ContentChunks StringList `json:"contentChunks" gorm:"type:jsonb;default:'[]'"`
	DOMElements   JSONMap    `json:"domElements" gorm:"type:jsonb;default:'{}'"`
	Screenshots   StringList `json:"screenshots" gorm:"type:jsonb;default:'[]'"`
	CreatedBy     string     `json:"createdBy" gorm:"type:uuid;not null"`
	ScrapedAt     time.Time  `json:"scrapedAt" gorm:"autoCreateTime"`
}

// TableName sets the table name for ScrapedPage model
func (ScrapedPage) TableName() string {
	return "scraped_pages"
}

func (p *ScrapedPage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
