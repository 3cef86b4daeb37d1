package reconciliation

import (
	"context"

	"ledger-reconciliation-backend/internal/apperrors"
	"ledger-reconciliation-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Report is a derived aggregate over the match table. It is recomputed on
// demand and never persisted.
type Report struct {
	Summary    ReportSummary    `json:"summary"`
	Financials ReportFinancials `json:"financials"`
}

type ReportSummary struct {
	TotalRecords       int64   `json:"total_records"`
	Confirmed          int64   `json:"confirmed"`
	Pending            int64   `json:"pending"`
	Rejected           int64   `json:"rejected"`
	ReconciliationRate float64 `json:"reconciliation_rate"`
}

type ReportFinancials struct {
	TotalReconciledValue decimal.Decimal `json:"total_reconciled_value"`
}

func (s *Service) Report(ctx context.Context) (*Report, error) {
	counts, err := s.matches.StatusCounts(ctx)
	if err != nil {
		return nil, apperrors.Connection("could not aggregate match statuses", err)
	}
	value, err := s.matches.ConfirmedValue(ctx)
	if err != nil {
		return nil, apperrors.Connection("could not sum reconciled value", err)
	}

	report := &Report{
		Summary: ReportSummary{
			Confirmed: counts[models.MatchStatusConfirmed],
			Pending:   counts[models.MatchStatusPending],
			Rejected:  counts[models.MatchStatusRejected],
		},
		Financials: ReportFinancials{
			TotalReconciledValue: decimal.NewFromFloat(value).Round(2),
		},
	}
	report.Summary.TotalRecords = report.Summary.Confirmed + report.Summary.Pending + report.Summary.Rejected
	if report.Summary.TotalRecords > 0 {
		report.Summary.ReconciliationRate = float64(report.Summary.Confirmed) / float64(report.Summary.TotalRecords)
	}
	return report, nil
}
