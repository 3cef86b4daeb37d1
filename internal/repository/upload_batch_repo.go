package repository

import (
	"context"
	"errors"
	"time"

	"ledger-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UploadBatchRepository struct {
	db *gorm.DB
}

func NewUploadBatchRepository(db *gorm.DB) *UploadBatchRepository {
	return &UploadBatchRepository{db: db}
}

// FindOriginal returns the non-duplicate batch already recorded for the
// fingerprint, or nil if the content was never ingested. Read-only.
func (r *UploadBatchRepository) FindOriginal(ctx context.Context, fingerprint string) (*models.UploadBatch, error) {
	var batch models.UploadBatch
	err := r.db.WithContext(ctx).
		Where("content_fingerprint = ? AND status <> ?", fingerprint, models.BatchStatusDuplicate).
		First(&batch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// Reserve claims the fingerprint for a new ingestion run. The locked
// check catches a fingerprint that is already recorded; two uploads of
// the same new bytes racing past it are decided by the partial unique
// index on content_fingerprint. Either way the loser gets the winner's
// batch back and a duplicate-status record of its own attempt.
func (r *UploadBatchRepository) Reserve(ctx context.Context, batch *models.UploadBatch) (*models.UploadBatch, error) {
	var existing *models.UploadBatch

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found models.UploadBatch
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("content_fingerprint = ? AND status <> ?", batch.ContentFingerprint, models.BatchStatusDuplicate).
			First(&found).Error
		if err == nil {
			existing = &found
			return r.recordDuplicateAttempt(tx, batch)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(batch).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the first-insert race. Load the winner and record the
		// attempt in a fresh transaction; the aborted one rolled back.
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var found models.UploadBatch
			if err := tx.
				Where("content_fingerprint = ? AND status <> ?", batch.ContentFingerprint, models.BatchStatusDuplicate).
				First(&found).Error; err != nil {
				return err
			}
			existing = &found
			return r.recordDuplicateAttempt(tx, batch)
		})
	}
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *UploadBatchRepository) recordDuplicateAttempt(tx *gorm.DB, batch *models.UploadBatch) error {
	attempt := *batch
	attempt.ID = uuid.New()
	attempt.Status = models.BatchStatusDuplicate
	return tx.Create(&attempt).Error
}

// Finalize records the row totals and final status once ingestion completes.
func (r *UploadBatchRepository) Finalize(ctx context.Context, id uuid.UUID, status string, total, imported, duplicates, incomplete int) error {
	return r.db.WithContext(ctx).Model(&models.UploadBatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"total_rows":      total,
			"imported_rows":   imported,
			"duplicate_rows":  duplicates,
			"incomplete_rows": incomplete,
		}).Error
}

func (r *UploadBatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UploadBatch, error) {
	var batch models.UploadBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

// Delete removes a batch record. Used to release a fingerprint
// reservation when parsing fails structurally after the claim.
func (r *UploadBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.UploadBatch{}, "id = ?", id).Error
}

func (r *UploadBatchRepository) CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UploadBatch{}).
		Where("uploaded_at < ?", cutoff).
		Count(&count).Error
	return count, err
}

func (r *UploadBatchRepository) ListIDsOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.UploadBatch{}).
		Where("uploaded_at < ?", cutoff).
		Order("uploaded_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *UploadBatchRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("uploaded_at < ?", cutoff).
		Delete(&models.UploadBatch{})
	return res.RowsAffected, res.Error
}
