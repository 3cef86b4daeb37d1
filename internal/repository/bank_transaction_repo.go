package repository

import (
	"context"
	"time"

	"ledger-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BankTransactionRepository struct {
	db *gorm.DB
}

func NewBankTransactionRepository(db *gorm.DB) *BankTransactionRepository {
	return &BankTransactionRepository{db: db}
}

// CreateIgnoreDuplicate inserts the transaction unless a row with the same
// RowHash already exists. Returns false when the row was a duplicate.
func (r *BankTransactionRepository) CreateIgnoreDuplicate(ctx context.Context, tx *models.Transaction) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "row_hash"}}, DoNothing: true}).
		Create(tx)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BankTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListUnmatched returns transactions with no outstanding pending match and
// no confirmed match. Rejected matches do not block re-matching.
func (r *BankTransactionRepository) ListUnmatched(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	sub := r.db.Model(&models.ReconciliationMatch{}).
		Select("transaction_id").
		Where("status IN ?", []string{models.MatchStatusPending, models.MatchStatusConfirmed})
	err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", sub).
		Order("transaction_date ASC, id ASC").
		Find(&txs).Error
	return txs, err
}

// ListUnmatchedBetween narrows ListUnmatched to a date window.
func (r *BankTransactionRepository) ListUnmatchedBetween(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	var txs []models.Transaction
	sub := r.db.Model(&models.ReconciliationMatch{}).
		Select("transaction_id").
		Where("status IN ?", []string{models.MatchStatusPending, models.MatchStatusConfirmed})
	err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", sub).
		Where("transaction_date >= ? AND transaction_date <= ?", start, end).
		Order("transaction_date ASC, id ASC").
		Find(&txs).Error
	return txs, err
}

func (r *BankTransactionRepository) CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("transaction_date < ?", cutoff).
		Count(&count).Error
	return count, err
}

func (r *BankTransactionRepository) ListIDsOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("transaction_date < ?", cutoff).
		Order("transaction_date ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *BankTransactionRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("transaction_date < ?", cutoff).
		Delete(&models.Transaction{})
	return res.RowsAffected, res.Error
}
