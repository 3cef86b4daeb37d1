package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchAuditLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	MatchID        uuid.UUID `gorm:"index"`
	Action         string
	PreviousStatus string
	NewStatus      string
	PerformedBy    string
	Reason         string
	CreatedAt      time.Time
}
