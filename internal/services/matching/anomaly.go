package matching

import (
	"context"
	"fmt"
	"math"

	"ledger-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
)

// AnomalyFlag annotates a transaction the detector considers suspicious.
// Flagging never bypasses the confirm/reject gate; it only augments the
// pending match record.
type AnomalyFlag struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// AnomalyDetector is the external anomaly-detection collaborator.
//
//go:generate mockgen -destination=mocks/mock_detector.go -package=mock_matching -source=anomaly.go
type AnomalyDetector interface {
	Flag(ctx context.Context, transactions []models.Transaction) (map[uuid.UUID]AnomalyFlag, error)
}

// ZScoreDetector is the default detector: it flags transactions whose
// absolute amount deviates from the window's mean by more than Threshold
// standard deviations.
type ZScoreDetector struct {
	Threshold float64
}

func NewZScoreDetector() *ZScoreDetector {
	return &ZScoreDetector{Threshold: 3.0}
}

func (d *ZScoreDetector) Flag(ctx context.Context, transactions []models.Transaction) (map[uuid.UUID]AnomalyFlag, error) {
	flags := make(map[uuid.UUID]AnomalyFlag)
	if len(transactions) < 3 {
		return flags, nil // too small a window to call anything an outlier
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	amounts := make([]float64, len(transactions))
	for i, tx := range transactions {
		amounts[i] = math.Abs(tx.Amount)
	}

	mean, err := stats.Mean(amounts)
	if err != nil {
		return nil, fmt.Errorf("computing amount mean: %w", err)
	}
	stddev, err := stats.StandardDeviation(amounts)
	if err != nil {
		return nil, fmt.Errorf("computing amount stddev: %w", err)
	}
	if stddev == 0 {
		return flags, nil
	}

	for i, tx := range transactions {
		z := (amounts[i] - mean) / stddev
		if z > d.Threshold {
			flags[tx.ID] = AnomalyFlag{
				Score:  z,
				Reason: fmt.Sprintf("amount %.2f is %.1f standard deviations above the window mean %.2f", tx.Amount, z, mean),
			}
		}
	}
	return flags, nil
}
