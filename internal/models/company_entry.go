package models

import (
	"time"

	"github.com/google/uuid"
)

type CompanyEntry struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UploadBatchID uuid.UUID `gorm:"index"`
	Date          time.Time `gorm:"column:entry_date;index"`
	Description   string
	Amount        float64 `gorm:"index"`
	Category      string
	Type          string
	RowHash       string `gorm:"uniqueIndex"`
	CreatedAt     time.Time
}
