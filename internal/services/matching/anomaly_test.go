package matching

import (
	"context"
	"testing"
	"time"

	"ledger-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZScoreDetector_Flag(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	detector := NewZScoreDetector()

	t.Run("flags the outlier only", func(t *testing.T) {
		var transactions []models.Transaction
		for i := 0; i < 20; i++ {
			transactions = append(transactions, tx(base.AddDate(0, 0, i), "REGULAR", 100.00))
		}
		outlier := tx(base, "SUSPICIOUS WIRE", 50000.00)
		transactions = append(transactions, outlier)

		flags, err := detector.Flag(context.Background(), transactions)
		require.NoError(t, err)
		require.Len(t, flags, 1)

		flag, ok := flags[outlier.ID]
		require.True(t, ok)
		assert.Greater(t, flag.Score, detector.Threshold)
		assert.Contains(t, flag.Reason, "standard deviations")
	})

	t.Run("uniform amounts are never anomalous", func(t *testing.T) {
		var transactions []models.Transaction
		for i := 0; i < 10; i++ {
			transactions = append(transactions, tx(base, "SAME", 250.00))
		}

		flags, err := detector.Flag(context.Background(), transactions)
		require.NoError(t, err)
		assert.Empty(t, flags)
	})

	t.Run("window too small to judge", func(t *testing.T) {
		transactions := []models.Transaction{
			tx(base, "A", 1.00),
			tx(base, "B", 99999.00),
		}

		flags, err := detector.Flag(context.Background(), transactions)
		require.NoError(t, err)
		assert.Empty(t, flags)
	})

	t.Run("negative amounts judged by magnitude", func(t *testing.T) {
		var transactions []models.Transaction
		for i := 0; i < 20; i++ {
			transactions = append(transactions, tx(base, "REGULAR", -100.00))
		}
		outlier := models.Transaction{ID: uuid.New(), Date: base, Description: "BIG DEBIT", Amount: -75000.00}
		transactions = append(transactions, outlier)

		flags, err := detector.Flag(context.Background(), transactions)
		require.NoError(t, err)
		_, ok := flags[outlier.ID]
		assert.True(t, ok)
	})
}
