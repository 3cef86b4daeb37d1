package cleanup

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"ledger-reconciliation-backend/internal/apperrors"
	"ledger-reconciliation-backend/internal/config"

	"github.com/google/uuid"
)

// PurgeStore is implemented by every repository that can age out rows.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mock_cleanup -source=service.go
type PurgeStore interface {
	CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	ListIDsOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service guards the bulk deletion of aged financial data behind a
// three-step flow: Preview → Confirmation → Execution. A feature flag
// gates entry entirely; execution additionally requires the literal
// confirmation token issued by the confirmation step, so a stray call
// can never reach the irreversible delete.
type Service struct {
	enabled  bool
	tokenTTL time.Duration

	transactions PurgeStore
	entries      PurgeStore
	batches      PurgeStore

	previews      sync.Map // daysOld -> time.Time of last preview
	confirmations sync.Map // daysOld -> confirmation
}

type confirmation struct {
	token     string
	expiresAt time.Time
}

func NewService(transactions, entries, batches PurgeStore, cfg config.Config) *Service {
	return &Service{
		enabled:      cfg.CleanupEnabled,
		tokenTTL:     cfg.CleanupTokenTTL,
		transactions: transactions,
		entries:      entries,
		batches:      batches,
	}
}

type PreviewResult struct {
	DaysOld        int       `json:"days_old"`
	Cutoff         time.Time `json:"cutoff"`
	Transactions   int64     `json:"transactions"`
	CompanyEntries int64     `json:"company_entries"`
	UploadBatches  int64     `json:"upload_batches"`
	TotalRows      int64     `json:"total_rows"`
}

type ConfirmationResult struct {
	DaysOld           int         `json:"days_old"`
	Cutoff            time.Time   `json:"cutoff"`
	TransactionIDs    []uuid.UUID `json:"transaction_ids"`
	CompanyEntryIDs   []uuid.UUID `json:"company_entry_ids"`
	UploadBatchIDs    []uuid.UUID `json:"upload_batch_ids"`
	ConfirmationToken string      `json:"confirmation_token"`
	ExpiresAt         time.Time   `json:"expires_at"`
}

type ExecutionResult struct {
	DaysOld               int       `json:"days_old"`
	Cutoff                time.Time `json:"cutoff"`
	DeletedTransactions   int64     `json:"deleted_transactions"`
	DeletedCompanyEntries int64     `json:"deleted_company_entries"`
	DeletedUploadBatches  int64     `json:"deleted_upload_batches"`
}

// Preview reports how many rows the threshold would remove. Step one of
// the flow; nothing is deleted and no token is issued yet.
func (s *Service) Preview(ctx context.Context, daysOld int) (*PreviewResult, error) {
	cutoff, err := s.gate(daysOld)
	if err != nil {
		return nil, err
	}

	txCount, err := s.transactions.CountOlderThan(ctx, cutoff)
	if err != nil {
		return nil, apperrors.Connection("could not count transactions", err)
	}
	entryCount, err := s.entries.CountOlderThan(ctx, cutoff)
	if err != nil {
		return nil, apperrors.Connection("could not count company entries", err)
	}
	batchCount, err := s.batches.CountOlderThan(ctx, cutoff)
	if err != nil {
		return nil, apperrors.Connection("could not count upload batches", err)
	}

	s.previews.Store(daysOld, time.Now().UTC())
	return &PreviewResult{
		DaysOld:        daysOld,
		Cutoff:         cutoff,
		Transactions:   txCount,
		CompanyEntries: entryCount,
		UploadBatches:  batchCount,
		TotalRows:      txCount + entryCount + batchCount,
	}, nil
}

// Confirmation lists the full row identifiers the deletion would touch
// and issues the token the operator must type into the execution call.
// Requires a prior Preview for the same threshold.
func (s *Service) Confirmation(ctx context.Context, daysOld int) (*ConfirmationResult, error) {
	cutoff, err := s.gate(daysOld)
	if err != nil {
		return nil, err
	}
	if _, previewed := s.previews.Load(daysOld); !previewed {
		return nil, apperrors.Validation("confirmation requires a preview for the same threshold first",
			map[string]interface{}{"days_old": daysOld})
	}

	txIDs, err := s.transactions.ListIDsOlderThan(ctx, cutoff)
	if err != nil {
		return nil, apperrors.Connection("could not list transactions", err)
	}
	entryIDs, err := s.entries.ListIDsOlderThan(ctx, cutoff)
	if err != nil {
		return nil, apperrors.Connection("could not list company entries", err)
	}
	batchIDs, err := s.batches.ListIDsOlderThan(ctx, cutoff)
	if err != nil {
		return nil, apperrors.Connection("could not list upload batches", err)
	}

	token := fmt.Sprintf("DELETE-%s", strings.ToUpper(uuid.New().String()[:8]))
	expires := time.Now().UTC().Add(s.tokenTTL)
	s.confirmations.Store(daysOld, confirmation{token: token, expiresAt: expires})

	return &ConfirmationResult{
		DaysOld:           daysOld,
		Cutoff:            cutoff,
		TransactionIDs:    txIDs,
		CompanyEntryIDs:   entryIDs,
		UploadBatchIDs:    batchIDs,
		ConfirmationToken: token,
		ExpiresAt:         expires,
	}, nil
}

// Execute performs the irreversible delete. It re-derives the cutoff from
// the server-validated threshold and refuses anything but an exact,
// unexpired token from a prior Confirmation for the same threshold.
func (s *Service) Execute(ctx context.Context, daysOld int, force bool, token string) (*ExecutionResult, error) {
	cutoff, err := s.gate(daysOld)
	if err != nil {
		return nil, err
	}
	if !force {
		return nil, apperrors.Validation("execution requires force=true",
			map[string]interface{}{"days_old": daysOld})
	}

	val, ok := s.confirmations.Load(daysOld)
	if !ok {
		return nil, apperrors.Validation("execution requires a confirmation step for the same threshold first",
			map[string]interface{}{"days_old": daysOld})
	}
	conf := val.(confirmation)
	if time.Now().UTC().After(conf.expiresAt) {
		s.confirmations.Delete(daysOld)
		return nil, apperrors.Conflict("confirmation token expired; run the confirmation step again")
	}
	if token == "" || token != conf.token {
		return nil, apperrors.Validation("confirmation token does not match the one issued",
			map[string]interface{}{"days_old": daysOld})
	}

	// Single use: a second execution needs a fresh confirmation.
	s.confirmations.Delete(daysOld)
	s.previews.Delete(daysOld)

	txDeleted, err := s.transactions.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, apperrors.Connection("could not delete transactions", err)
	}
	entriesDeleted, err := s.entries.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, apperrors.Connection("could not delete company entries", err)
	}
	batchesDeleted, err := s.batches.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, apperrors.Connection("could not delete upload batches", err)
	}

	log.Printf("cleanup executed: days_old=%d deleted %d transactions, %d entries, %d batches",
		daysOld, txDeleted, entriesDeleted, batchesDeleted)

	return &ExecutionResult{
		DaysOld:               daysOld,
		Cutoff:                cutoff,
		DeletedTransactions:   txDeleted,
		DeletedCompanyEntries: entriesDeleted,
		DeletedUploadBatches:  batchesDeleted,
	}, nil
}

// gate enforces the feature flag and re-validates the operator-supplied
// threshold server-side.
func (s *Service) gate(daysOld int) (time.Time, error) {
	if !s.enabled {
		return time.Time{}, apperrors.Forbidden("data cleanup is disabled")
	}
	if daysOld < 1 {
		return time.Time{}, apperrors.Validation("days_old must be at least 1",
			map[string]interface{}{"days_old": daysOld})
	}
	return time.Now().UTC().AddDate(0, 0, -daysOld), nil
}
