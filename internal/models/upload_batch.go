package models

import (
	"time"

	"github.com/google/uuid"
)

// UploadBatch statuses.
const (
	BatchStatusProcessed = "processed"
	BatchStatusDuplicate = "duplicate"
	BatchStatusPartial   = "partial"
)

// Source kinds for uploaded files.
const (
	SourceBank    = "bank"
	SourceCompany = "company"
)

type UploadBatch struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Filename           string
	ContentFingerprint string `gorm:"index"`
	SourceKind         string `gorm:"index"`
	Status             string `gorm:"index"`
	TotalRows          int
	ImportedRows       int
	DuplicateRows      int
	IncompleteRows     int
	UploadedAt         time.Time
	CreatedAt          time.Time
}
