package repository

import (
	"context"
	"time"

	"ledger-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompanyEntryRepository struct {
	db *gorm.DB
}

func NewCompanyEntryRepository(db *gorm.DB) *CompanyEntryRepository {
	return &CompanyEntryRepository{db: db}
}

func (r *CompanyEntryRepository) CreateIgnoreDuplicate(ctx context.Context, entry *models.CompanyEntry) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "row_hash"}}, DoNothing: true}).
		Create(entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *CompanyEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CompanyEntry, error) {
	var entry models.CompanyEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListOpen returns company entries with no pending or confirmed match.
func (r *CompanyEntryRepository) ListOpen(ctx context.Context) ([]models.CompanyEntry, error) {
	var entries []models.CompanyEntry
	sub := r.db.Model(&models.ReconciliationMatch{}).
		Select("company_entry_id").
		Where("status IN ?", []string{models.MatchStatusPending, models.MatchStatusConfirmed})
	err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", sub).
		Order("entry_date ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *CompanyEntryRepository) CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CompanyEntry{}).
		Where("entry_date < ?", cutoff).
		Count(&count).Error
	return count, err
}

func (r *CompanyEntryRepository) ListIDsOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.CompanyEntry{}).
		Where("entry_date < ?", cutoff).
		Order("entry_date ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *CompanyEntryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("entry_date < ?", cutoff).
		Delete(&models.CompanyEntry{})
	return res.RowsAffected, res.Error
}
