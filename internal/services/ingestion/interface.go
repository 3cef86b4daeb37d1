package ingestion

import (
	"context"
	"time"

	"ledger-reconciliation-backend/internal/models"

	"github.com/google/uuid"
)

// Stores the ingestion pipeline writes through. The concrete gorm
// repositories satisfy these; tests substitute mocks.
//
//go:generate mockgen -destination=mocks/mock_stores.go -package=mock_ingestion -source=interface.go
type BatchStore interface {
	FindOriginal(ctx context.Context, fingerprint string) (*models.UploadBatch, error)
	Reserve(ctx context.Context, batch *models.UploadBatch) (*models.UploadBatch, error)
	Finalize(ctx context.Context, id uuid.UUID, status string, total, imported, duplicates, incomplete int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TransactionStore interface {
	CreateIgnoreDuplicate(ctx context.Context, tx *models.Transaction) (bool, error)
}

type EntryStore interface {
	CreateIgnoreDuplicate(ctx context.Context, entry *models.CompanyEntry) (bool, error)
}

// DuplicateCheck is the duplicate detector's answer for one fingerprint.
type DuplicateCheck struct {
	IsDuplicate        bool
	OriginalUploadDate *time.Time
	Filename           string
}
