package matching

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"ledger-reconciliation-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Matcher proposes candidate matches between bank transactions and company
// entries. The reconciliation workflow treats implementations as black
// boxes returning a confidence score in [0,1].
//
//go:generate mockgen -destination=mocks/mock_matcher.go -package=mock_matching -source=engine.go
type Matcher interface {
	Match(ctx context.Context, transactions []models.Transaction, entries []models.CompanyEntry) ([]Proposal, error)
}

// Proposal pairs one bank transaction with at most one company entry.
type Proposal struct {
	Transaction  models.Transaction
	CompanyEntry models.CompanyEntry
	Score        float64
	Details      map[string]interface{}
}

// Engine is the default Matcher. Candidates must agree on amount; the
// confidence score then weighs description similarity, date proximity and
// an ambiguity penalty when several entries carry the same amount.
type Engine struct {
	MinScore float64
}

func NewEngine() *Engine {
	return &Engine{MinScore: 0.4}
}

// Match returns at most one proposal per transaction and uses each company
// entry at most once. Ties are broken by lowest absolute date difference,
// then lexicographic entry ID, so repeated runs over unchanged data
// produce identical proposals.
func (e *Engine) Match(ctx context.Context, transactions []models.Transaction, entries []models.CompanyEntry) ([]Proposal, error) {
	// Index entries by amount; amount agreement is a hard requirement.
	byAmount := make(map[string][]models.CompanyEntry)
	for _, entry := range entries {
		key := amountKey(entry.Amount)
		byAmount[key] = append(byAmount[key], entry)
	}

	ordered := make([]models.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	used := make(map[string]bool)
	var proposals []Proposal

	for _, tx := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates := byAmount[amountKey(tx.Amount)]
		available := candidates[:0:0]
		for _, c := range candidates {
			if !used[c.ID.String()] {
				available = append(available, c)
			}
		}
		if len(available) == 0 {
			continue
		}

		best, bestScore, details := e.pickBest(tx, available)
		if bestScore < e.MinScore {
			continue
		}

		used[best.ID.String()] = true
		proposals = append(proposals, Proposal{
			Transaction:  tx,
			CompanyEntry: best,
			Score:        bestScore,
			Details:      details,
		})
	}
	return proposals, nil
}

func (e *Engine) pickBest(tx models.Transaction, candidates []models.CompanyEntry) (models.CompanyEntry, float64, map[string]interface{}) {
	ambiguity := 1.0
	if len(candidates) > 1 {
		ambiguity = 0.8
	}

	type scored struct {
		entry     models.CompanyEntry
		nameScore float64
		dateScore float64
		final     float64
		dateDiff  time.Duration
	}

	best := scored{final: -1}
	for _, c := range candidates {
		nameScore := descriptionSimilarity(tx.Description, c.Description)
		dateScore := dateProximityScore(tx.Date, c.Date)
		final := 0.6*nameScore + 0.3*dateScore + 0.1*ambiguity
		diff := absDuration(tx.Date.Sub(c.Date))

		s := scored{entry: c, nameScore: nameScore, dateScore: dateScore, final: final, dateDiff: diff}
		if s.final > best.final {
			best = s
			continue
		}
		if s.final == best.final {
			if s.dateDiff < best.dateDiff ||
				(s.dateDiff == best.dateDiff && s.entry.ID.String() < best.entry.ID.String()) {
				best = s
			}
		}
	}

	details := map[string]interface{}{
		"amount_match":     true,
		"company_entry_id": best.entry.ID.String(),
		"transaction_desc": tx.Description,
		"entry_desc":       best.entry.Description,
		"name_score":       best.nameScore,
		"date_score":       best.dateScore,
		"ambiguity_score":  ambiguity,
		"final_score":      math.Min(best.final, 1),
		"candidate_count":  len(candidates),
	}
	return best.entry, math.Min(best.final, 1), details
}

func amountKey(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).String()
}

func descriptionSimilarity(a, b string) float64 {
	aTokens := strings.Fields(normalizeDescription(a))
	bTokens := strings.Fields(normalizeDescription(b))
	if len(bTokens) == 0 {
		return 0
	}

	total := 0.0
	for _, bt := range bTokens {
		best := 0.0
		for _, at := range aTokens {
			dist := levenshtein(bt, at)
			maxLen := math.Max(float64(len(bt)), float64(len(at)))
			sim := 1 - float64(dist)/maxLen
			if sim > best {
				best = sim
			}
		}
		total += best
	}
	return total / float64(len(bTokens))
}

func normalizeDescription(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.TrimSpace(s)
}

func dateProximityScore(txDate, entryDate time.Time) float64 {
	days := math.Abs(txDate.Sub(entryDate).Hours() / 24)
	switch {
	case days <= 3:
		return 1.0
	case days <= 7:
		return 0.8
	case days <= 15:
		return 0.6
	case days <= 30:
		return 0.4
	default:
		return 0.2
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		dp[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		dp[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			dp[i][j] = min(
				dp[i-1][j]+1,
				dp[i][j-1]+1,
				dp[i-1][j-1]+cost,
			)
		}
	}
	return dp[len(a)][len(b)]
}
