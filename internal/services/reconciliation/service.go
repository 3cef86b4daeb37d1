package reconciliation

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"ledger-reconciliation-backend/internal/apperrors"
	"ledger-reconciliation-backend/internal/models"
	"ledger-reconciliation-backend/internal/services/matching"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the reconciliation workflow: it turns matcher proposals into
// pending records and advances them through operator confirm/reject
// decisions. A decided match is terminal.
type Service struct {
	matches      MatchStore
	transactions TransactionSource
	entries      EntrySource
	matcher      matching.Matcher
	detector     matching.AnomalyDetector
	matchTimeout time.Duration
}

func NewService(
	matches MatchStore,
	transactions TransactionSource,
	entries EntrySource,
	matcher matching.Matcher,
	detector matching.AnomalyDetector,
	matchTimeout time.Duration,
) *Service {
	return &Service{
		matches:      matches,
		transactions: transactions,
		entries:      entries,
		matcher:      matcher,
		detector:     detector,
		matchTimeout: matchTimeout,
	}
}

// PendingRecord is one outstanding match with both sides attached for
// operator review.
type PendingRecord struct {
	ID              uuid.UUID            `json:"id"`
	MatchScore      float64              `json:"match_score"`
	AnomalyFlagged  bool                 `json:"anomaly_flagged"`
	BankTransaction *models.Transaction  `json:"bank_transaction"`
	CompanyEntry    *models.CompanyEntry `json:"company_entry"`
	CreatedAt       time.Time            `json:"created_at"`
}

// RunReport summarizes one reconciliation run.
type RunReport struct {
	CandidatesEvaluated int `json:"candidates_evaluated"`
	MatchesCreated      int `json:"matches_created"`
	Skipped             int `json:"skipped"`
	AnomaliesFlagged    int `json:"anomalies_flagged"`
}

func (s *Service) ListPending(ctx context.Context) ([]PendingRecord, error) {
	matches, err := s.matches.ListPending(ctx)
	if err != nil {
		return nil, apperrors.Connection("could not list pending matches", err)
	}

	records := make([]PendingRecord, 0, len(matches))
	for _, m := range matches {
		tx, err := s.transactions.GetByID(ctx, m.TransactionID)
		if err != nil {
			return nil, apperrors.Connection("could not load bank transaction", err)
		}
		entry, err := s.entries.GetByID(ctx, m.CompanyEntryID)
		if err != nil {
			return nil, apperrors.Connection("could not load company entry", err)
		}
		records = append(records, PendingRecord{
			ID:              m.ID,
			MatchScore:      m.MatchScore,
			AnomalyFlagged:  m.AnomalyFlagged,
			BankTransaction: tx,
			CompanyEntry:    entry,
			CreatedAt:       m.CreatedAt,
		})
	}
	return records, nil
}

// StartReconciliation runs the matcher over all not-yet-matched records.
// Re-running over unchanged data creates zero new pending matches: records
// with an outstanding pending match are excluded from the candidate set,
// and the locked insert catches anything a concurrent run slips in.
func (s *Service) StartReconciliation(ctx context.Context) (*RunReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.matchTimeout)
	defer cancel()

	transactions, err := s.transactions.ListUnmatched(ctx)
	if err != nil {
		return nil, apperrors.Connection("could not load unmatched transactions", err)
	}
	return s.run(ctx, transactions, nil)
}

// StartAnomalyAware is StartReconciliation narrowed to a date window, with
// an anomaly-detection pass over the candidates first. Flagged matches
// are annotated but follow the identical pending lifecycle.
func (s *Service) StartAnomalyAware(ctx context.Context, start, end time.Time) (*RunReport, error) {
	if end.Before(start) {
		return nil, apperrors.Validation("end_date must not precede start_date", map[string]interface{}{
			"start_date": start.Format("2006-01-02"),
			"end_date":   end.Format("2006-01-02"),
		})
	}

	ctx, cancel := context.WithTimeout(ctx, s.matchTimeout)
	defer cancel()

	transactions, err := s.transactions.ListUnmatchedBetween(ctx, start, end)
	if err != nil {
		return nil, apperrors.Connection("could not load unmatched transactions", err)
	}

	flags, err := s.detector.Flag(ctx, transactions)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Connection("anomaly detection timed out", err)
		}
		return nil, apperrors.Connection("anomaly detection failed", err)
	}
	return s.run(ctx, transactions, flags)
}

func (s *Service) run(ctx context.Context, transactions []models.Transaction, flags map[uuid.UUID]matching.AnomalyFlag) (*RunReport, error) {
	entries, err := s.entries.ListOpen(ctx)
	if err != nil {
		return nil, apperrors.Connection("could not load company entries", err)
	}

	proposals, err := s.matcher.Match(ctx, transactions, entries)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Connection("matching timed out", err)
		}
		return nil, apperrors.Connection("matcher failed", err)
	}

	report := &RunReport{CandidatesEvaluated: len(transactions)}
	now := time.Now().UTC()

	for _, p := range proposals {
		match := &models.ReconciliationMatch{
			ID:             uuid.New(),
			TransactionID:  p.Transaction.ID,
			CompanyEntryID: p.CompanyEntry.ID,
			MatchScore:     p.Score,
			Status:         models.MatchStatusPending,
			CreatedAt:      now,
		}

		details := p.Details
		if flag, flagged := flags[p.Transaction.ID]; flagged {
			match.AnomalyFlagged = true
			report.AnomaliesFlagged++
			if details == nil {
				details = make(map[string]interface{})
			}
			details["anomaly"] = flag
		}
		if details != nil {
			if raw, err := json.Marshal(details); err == nil {
				match.MatchDetails = raw
			}
		}

		created, err := s.matches.CreatePendingLocked(ctx, match)
		if err != nil {
			return nil, apperrors.Connection("could not create pending match", err)
		}
		if created {
			report.MatchesCreated++
		} else {
			report.Skipped++
		}
	}

	log.Printf("reconciliation run: %d candidates, %d matches created, %d skipped",
		report.CandidatesEvaluated, report.MatchesCreated, report.Skipped)
	return report, nil
}

// Confirm transitions pending→confirmed. The first caller wins; any later
// confirm or reject on the same match observes "already decided".
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, actor string) (*models.ReconciliationMatch, error) {
	return s.decide(ctx, id, models.MatchStatusConfirmed, actor)
}

// Reject transitions pending→rejected with the same guard as Confirm.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, actor string) (*models.ReconciliationMatch, error) {
	return s.decide(ctx, id, models.MatchStatusRejected, actor)
}

func (s *Service) decide(ctx context.Context, id uuid.UUID, newStatus, actor string) (*models.ReconciliationMatch, error) {
	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reconciliation match not found")
		}
		return nil, apperrors.Connection("could not load match", err)
	}

	decidedAt := time.Now().UTC()
	ok, err := s.matches.Decide(ctx, id, newStatus, decidedAt)
	if err != nil {
		return nil, apperrors.Connection("could not update match", err)
	}
	if !ok {
		return nil, apperrors.Conflict("match is already decided; refresh and review the current state")
	}

	audit := &models.MatchAuditLog{
		ID:             uuid.New(),
		MatchID:        id,
		Action:         newStatus,
		PreviousStatus: models.MatchStatusPending,
		NewStatus:      newStatus,
		PerformedBy:    actor,
		CreatedAt:      decidedAt,
	}
	if err := s.matches.CreateAuditLog(ctx, audit); err != nil {
		log.Printf("could not write audit log for match %s: %v", id, err)
	}

	match.Status = newStatus
	match.DecidedAt = &decidedAt
	return match, nil
}
