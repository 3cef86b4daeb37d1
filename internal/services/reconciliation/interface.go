package reconciliation

import (
	"context"
	"time"

	"ledger-reconciliation-backend/internal/models"

	"github.com/google/uuid"
)

// Stores and collaborators the workflow depends on. The concrete gorm
// repositories and the default matching engine satisfy these; tests
// substitute mocks.
//
//go:generate mockgen -destination=mocks/mock_stores.go -package=mock_reconciliation -source=interface.go
type MatchStore interface {
	CreatePendingLocked(ctx context.Context, match *models.ReconciliationMatch) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ReconciliationMatch, error)
	ListPending(ctx context.Context) ([]models.ReconciliationMatch, error)
	Decide(ctx context.Context, id uuid.UUID, newStatus string, decidedAt time.Time) (bool, error)
	StatusCounts(ctx context.Context) (map[string]int64, error)
	ConfirmedValue(ctx context.Context) (float64, error)
	CreateAuditLog(ctx context.Context, entry *models.MatchAuditLog) error
}

type TransactionSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListUnmatched(ctx context.Context) ([]models.Transaction, error)
	ListUnmatchedBetween(ctx context.Context, start, end time.Time) ([]models.Transaction, error)
}

type EntrySource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.CompanyEntry, error)
	ListOpen(ctx context.Context) ([]models.CompanyEntry, error)
}
