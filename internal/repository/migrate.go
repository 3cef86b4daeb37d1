package repository

import (
	"ledger-reconciliation-backend/internal/models"

	"gorm.io/gorm"
)

// Partial unique indexes backing the check-then-insert paths. The locked
// existence checks in Reserve and CreatePendingLocked cannot see a row
// that neither transaction has inserted yet, so the database constraint
// is what actually decides the race.
var partialUniqueIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uidx_upload_batches_fingerprint
		ON upload_batches (content_fingerprint) WHERE status <> 'duplicate'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uidx_matches_pending_transaction
		ON reconciliation_matches (transaction_id) WHERE status = 'pending'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uidx_matches_pending_entry
		ON reconciliation_matches (company_entry_id) WHERE status = 'pending'`,
}

// Migrate runs the schema migration plus the partial unique indexes that
// gorm struct tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UploadBatch{},
		&models.Transaction{},
		&models.CompanyEntry{},
		&models.ReconciliationMatch{},
		&models.MatchAuditLog{},
	); err != nil {
		return err
	}
	for _, stmt := range partialUniqueIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
