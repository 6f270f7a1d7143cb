package models

import (
	"time"

	"github.com/google/uuid"
)

type ExtractionStatus string

const (
	StatusCompleted ExtractionStatus = "completed"
	StatusFailed    ExtractionStatus = "failed"
)

// Extraction is the audit record of one upload. It never stores the
// extracted text.
type Extraction struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Filename     string           `gorm:"type:text" json:"filename"`
	Format       string           `gorm:"type:text" json:"format"`
	SizeBytes    int64            `gorm:"not null" json:"size_bytes"`
	PageCount    int              `gorm:"not null" json:"page_count"`
	OCRPages     int              `gorm:"column:ocr_pages;not null" json:"ocr_pages"`
	Status       ExtractionStatus `gorm:"type:text;not null" json:"status"`
	ErrorMessage *string          `gorm:"type:text" json:"error_message,omitempty"`
	DurationMS   int64            `gorm:"column:duration_ms;not null" json:"duration_ms"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (Extraction) TableName() string {
	return "extractions"
}
