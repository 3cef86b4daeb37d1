package ingestion

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"ledger-reconciliation-backend/internal/apperrors"
	"ledger-reconciliation-backend/internal/config"
	"ledger-reconciliation-backend/internal/models"

	"github.com/google/uuid"
)

// IngestionReport accounts for every row of an upload:
// TotalProcessed == Imported + DuplicatesFound + len(Incomplete).
type IngestionReport struct {
	BatchID         uuid.UUID         `json:"batch_id"`
	Status          string            `json:"status"`
	TotalProcessed  int               `json:"total_entries_processed"`
	Imported        int               `json:"items_imported"`
	DuplicatesFound int               `json:"duplicates_found"`
	Incomplete      []IncompleteEntry `json:"incomplete_items"`
	Message         string            `json:"message,omitempty"`
}

type Service struct {
	batches      BatchStore
	transactions TransactionStore
	entries      EntryStore

	maxBytes    int64
	bankExts    []string
	companyExts []string
}

func NewService(batches BatchStore, transactions TransactionStore, entries EntryStore, cfg config.Config) *Service {
	return &Service{
		batches:      batches,
		transactions: transactions,
		entries:      entries,
		maxBytes:     cfg.UploadMaxBytes,
		bankExts:     cfg.BankExtensions,
		companyExts:  cfg.CompanyExtensions,
	}
}

// CheckFingerprint is the duplicate detector: a read-only answer to
// "was byte-identical content already ingested?". It records nothing.
func (s *Service) CheckFingerprint(ctx context.Context, fingerprint string) (*DuplicateCheck, error) {
	original, err := s.batches.FindOriginal(ctx, fingerprint)
	if err != nil {
		return nil, apperrors.Connection("duplicate check failed", err)
	}
	if original == nil {
		return &DuplicateCheck{}, nil
	}
	uploadedAt := original.UploadedAt
	return &DuplicateCheck{
		IsDuplicate:        true,
		OriginalUploadDate: &uploadedAt,
		Filename:           original.Filename,
	}, nil
}

// Ingest drives one file through the pipeline: input gates, duplicate
// check, parse, per-row validation, persistence. Row-level failures never
// abort the batch; they are collected as incomplete entries and the batch
// completes with partial success.
func (s *Service) Ingest(ctx context.Context, filename string, content []byte, sourceKind string) (*IngestionReport, error) {
	if err := s.checkGates(filename, int64(len(content)), sourceKind); err != nil {
		return nil, err
	}

	batch := &models.UploadBatch{
		ID:                 uuid.New(),
		Filename:           filename,
		ContentFingerprint: Fingerprint(content),
		SourceKind:         sourceKind,
		Status:             models.BatchStatusProcessed,
		UploadedAt:         time.Now().UTC(),
		CreatedAt:          time.Now().UTC(),
	}

	existing, err := s.batches.Reserve(ctx, batch)
	if err != nil {
		return nil, apperrors.Connection("could not record upload batch", err)
	}
	if existing != nil {
		return nil, apperrors.DuplicateFile(existing.Filename, existing.UploadedAt.Format(time.RFC3339))
	}

	rows, err := s.parse(filename, content)
	if err != nil {
		// Release the fingerprint so a corrected re-upload of the same
		// bytes is not reported as a duplicate of a failed attempt.
		if delErr := s.batches.Delete(ctx, batch.ID); delErr != nil {
			log.Printf("could not release batch %s after parse failure: %v", batch.ID, delErr)
		}
		return nil, apperrors.Validation(err.Error(), map[string]interface{}{"filename": filename})
	}

	report := &IngestionReport{
		BatchID:    batch.ID,
		Incomplete: make([]IncompleteEntry, 0),
	}

	for _, row := range rows {
		report.TotalProcessed++

		entry, incomplete := ValidateRow(row)
		if incomplete != nil {
			report.Incomplete = append(report.Incomplete, *incomplete)
			continue
		}

		inserted, err := s.persistEntry(ctx, batch.ID, sourceKind, entry)
		if err != nil {
			// Storage went away mid-batch. Rows already committed stay
			// committed and will dedupe by row hash on the next attempt;
			// release the fingerprint so retrying the whole file works.
			if delErr := s.batches.Delete(ctx, batch.ID); delErr != nil {
				log.Printf("could not release batch %s after storage failure: %v", batch.ID, delErr)
			}
			return nil, apperrors.Connection(
				fmt.Sprintf("storage failure at row %d", row.RowNumber), err)
		}
		if inserted {
			report.Imported++
		} else {
			report.DuplicatesFound++
		}
	}

	if err := s.finalize(ctx, batch, report); err != nil {
		return nil, apperrors.Connection("could not finalize upload batch", err)
	}
	return report, nil
}

// Resubmit is the correction loop's second, narrower ingestion pass. Only
// rows the operator actually touched (Corrected set) are considered;
// untouched rows are dropped rather than resubmitted with stale invalid
// data. Rows that still fail come back as incomplete again so correction
// can be iterative.
func (s *Service) Resubmit(ctx context.Context, batchID uuid.UUID, entries []IncompleteEntry, sourceKind string) (*IngestionReport, error) {
	if sourceKind != models.SourceBank && sourceKind != models.SourceCompany {
		return nil, apperrors.Validation("unknown source kind", map[string]interface{}{"source_kind": sourceKind})
	}

	report := &IngestionReport{
		BatchID:    batchID,
		Status:     models.BatchStatusProcessed,
		Incomplete: make([]IncompleteEntry, 0),
	}

	corrected := make([]IncompleteEntry, 0, len(entries))
	for _, e := range entries {
		if e.Corrected {
			corrected = append(corrected, e)
		}
	}
	if len(corrected) == 0 {
		report.Message = "nothing to save: no corrected entries submitted"
		return report, nil
	}

	for _, e := range corrected {
		report.TotalProcessed++

		row := RawRow{
			RowNumber:   e.RowNumber,
			Date:        e.Date,
			Description: e.Description,
			Amount:      e.Amount,
			Category:    e.Category,
			Type:        e.Type,
		}
		entry, incomplete := ValidateRow(row)
		if incomplete != nil {
			report.Incomplete = append(report.Incomplete, *incomplete)
			continue
		}

		inserted, err := s.persistEntry(ctx, batchID, sourceKind, entry)
		if err != nil {
			return nil, apperrors.Connection(
				fmt.Sprintf("storage failure at row %d", e.RowNumber), err)
		}
		if inserted {
			report.Imported++
		} else {
			report.DuplicatesFound++
		}
	}

	if len(report.Incomplete) > 0 {
		report.Status = models.BatchStatusPartial
	}
	return report, nil
}

func (s *Service) checkGates(filename string, size int64, sourceKind string) error {
	if size > s.maxBytes {
		return apperrors.Validation("file exceeds the size limit", map[string]interface{}{
			"filename":  filename,
			"size":      size,
			"max_bytes": s.maxBytes,
		})
	}

	var allowed []string
	switch sourceKind {
	case models.SourceBank:
		allowed = s.bankExts
	case models.SourceCompany:
		allowed = s.companyExts
	default:
		return apperrors.Validation("unknown source kind", map[string]interface{}{"source_kind": sourceKind})
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return apperrors.Validation("file type is not accepted for this upload", map[string]interface{}{
		"filename":           filename,
		"extension":          ext,
		"allowed_extensions": allowed,
	})
}

func (s *Service) parse(filename string, content []byte) ([]RawRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ofx", ".qfx":
		return ParseOFX(content)
	default:
		return ParseCSV(content)
	}
}

func (s *Service) persistEntry(ctx context.Context, batchID uuid.UUID, sourceKind string, entry *ValidEntry) (bool, error) {
	rowHash := RowFingerprint(sourceKind, entry.Date, entry.Amount, entry.Description)
	now := time.Now().UTC()

	if sourceKind == models.SourceBank {
		return s.transactions.CreateIgnoreDuplicate(ctx, &models.Transaction{
			ID:            uuid.New(),
			UploadBatchID: batchID,
			Date:          entry.Date,
			Description:   entry.Description,
			Amount:        entry.Amount,
			Category:      entry.Category,
			Type:          entry.Type,
			RowHash:       rowHash,
			CreatedAt:     now,
		})
	}
	return s.entries.CreateIgnoreDuplicate(ctx, &models.CompanyEntry{
		ID:            uuid.New(),
		UploadBatchID: batchID,
		Date:          entry.Date,
		Description:   entry.Description,
		Amount:        entry.Amount,
		Category:      entry.Category,
		Type:          entry.Type,
		RowHash:       rowHash,
		CreatedAt:     now,
	})
}

func (s *Service) finalize(ctx context.Context, batch *models.UploadBatch, report *IngestionReport) error {
	status := models.BatchStatusProcessed
	if len(report.Incomplete) > 0 {
		status = models.BatchStatusPartial
	}
	report.Status = status
	return s.batches.Finalize(ctx, batch.ID, status,
		report.TotalProcessed, report.Imported, report.DuplicatesFound, len(report.Incomplete))
}
