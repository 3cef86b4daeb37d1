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

type ReconciliationMatchRepository struct {
	db *gorm.DB
}

func NewReconciliationMatchRepository(db *gorm.DB) *ReconciliationMatchRepository {
	return &ReconciliationMatchRepository{db: db}
}

// CreatePendingLocked inserts the match only if neither side already has an
// outstanding pending match. The locked existence check handles the common
// case; when two transactions race past it for the same brand-new record,
// the partial unique indexes on pending matches decide, and the loser's
// unique violation maps to the same skipped result. Returns false when the
// match was skipped.
func (r *ReconciliationMatchRepository) CreatePendingLocked(ctx context.Context, match *models.ReconciliationMatch) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ReconciliationMatch
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ?", models.MatchStatusPending).
			Where("transaction_id = ? OR company_entry_id = ?", match.TransactionID, match.CompanyEntryID).
			First(&existing).Error
		if err == nil {
			return nil // already has an outstanding pending match
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(match).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	return created, err
}

func (r *ReconciliationMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReconciliationMatch, error) {
	var match models.ReconciliationMatch
	if err := r.db.WithContext(ctx).First(&match, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *ReconciliationMatchRepository) ListPending(ctx context.Context) ([]models.ReconciliationMatch, error) {
	var matches []models.ReconciliationMatch
	err := r.db.WithContext(ctx).
		Where("status = ?", models.MatchStatusPending).
		Order("created_at ASC, id ASC").
		Find(&matches).Error
	return matches, err
}

// Decide transitions the match out of pending with a conditional update.
// Only the first caller wins; a later caller sees false and should treat
// the match as already decided.
func (r *ReconciliationMatchRepository) Decide(ctx context.Context, id uuid.UUID, newStatus string, decidedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ReconciliationMatch{}).
		Where("id = ? AND status = ?", id, models.MatchStatusPending).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"decided_at": decidedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ReconciliationMatchRepository) StatusCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.ReconciliationMatch{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ConfirmedValue sums the bank-side amount over all confirmed matches.
func (r *ReconciliationMatchRepository) ConfirmedValue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.ReconciliationMatch{}).
		Joins("JOIN transactions ON transactions.id = reconciliation_matches.transaction_id").
		Where("reconciliation_matches.status = ?", models.MatchStatusConfirmed).
		Select("COALESCE(SUM(transactions.amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ReconciliationMatchRepository) CreateAuditLog(ctx context.Context, entry *models.MatchAuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
