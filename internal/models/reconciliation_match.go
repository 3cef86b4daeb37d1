package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReconciliationMatch statuses. Confirmed and rejected are terminal;
// a decided match is never reopened, a new match is appended instead.
const (
	MatchStatusPending   = "pending"
	MatchStatusConfirmed = "confirmed"
	MatchStatusRejected  = "rejected"
)

type ReconciliationMatch struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransactionID  uuid.UUID `gorm:"index"`
	CompanyEntryID uuid.UUID `gorm:"index"`
	MatchScore     float64
	Status         string `gorm:"index"`
	AnomalyFlagged bool
	MatchDetails   datatypes.JSON
	CreatedAt      time.Time
	DecidedAt      *time.Time
}
